package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.ListenAddr != ":3000" {
		t.Errorf("default listen addr: want :3000, got %s", cfg.ListenAddr)
	}
	if !cfg.TrustProxy.Enabled {
		t.Error("proxy trust should default on; that's the whole point of this process")
	}
	if cfg.TrustProxy.ForwardedForHeader != "X-Forwarded-For" {
		t.Errorf("unexpected default forwarded-for header: %s", cfg.TrustProxy.ForwardedForHeader)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edgefront.yaml")
	doc := `
listen_addr: ":8080"
shutdown_grace: 5s
trust_proxy:
  enabled: false
  forwarded_for_header: X-Forwarded-For
  forwarded_proto_header: X-Forwarded-Proto
  forwarded_host_header: X-Forwarded-Host
cors:
  enabled: true
  allowed_origins: ["https://monitor.example.com"]
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("listen_addr not loaded: %s", cfg.ListenAddr)
	}
	if cfg.ShutdownGrace != 5*time.Second {
		t.Errorf("shutdown_grace not loaded: %s", cfg.ShutdownGrace)
	}
	if cfg.TrustProxy.Enabled {
		t.Error("trust_proxy.enabled not loaded")
	}
	// File fields left unset keep their defaults
	if cfg.ReadTimeout != 120*time.Second {
		t.Errorf("read_timeout default lost: %s", cfg.ReadTimeout)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file must be a startup error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("EDGEFRONT_PORT", "9999")
	t.Setenv("EDGEFRONT_TRUST_PROXY", "false")
	t.Setenv("EDGEFRONT_CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("EDGEFRONT_SHUTDOWN_GRACE", "3s")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ListenAddr != ":9999" {
		t.Errorf("EDGEFRONT_PORT not applied: %s", cfg.ListenAddr)
	}
	if cfg.TrustProxy.Enabled {
		t.Error("EDGEFRONT_TRUST_PROXY not applied")
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[0] != "https://a.example.com" {
		t.Errorf("EDGEFRONT_CORS_ORIGINS not applied: %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.ShutdownGrace != 3*time.Second {
		t.Errorf("EDGEFRONT_SHUTDOWN_GRACE not applied: %s", cfg.ShutdownGrace)
	}
}

func TestEnvMalformed(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"EDGEFRONT_READ_TIMEOUT", "banana"},
		{"EDGEFRONT_SHUTDOWN_GRACE", "5 parsecs"},
		{"EDGEFRONT_TRUST_PROXY", "maybe"},
		{"EDGEFRONT_CORS", "yes please"},
	}

	for _, test := range tests {
		t.Run(test.key, func(t *testing.T) {
			t.Setenv(test.key, test.value)

			_, err := Load("")
			if err == nil {
				t.Fatalf("%s=%q must be a fatal configuration error, not a silent default", test.key, test.value)
			}
			if !strings.Contains(err.Error(), test.key) {
				t.Errorf("error %q doesn't name the offending variable %s", err, test.key)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad port", func(c *Config) { c.ListenAddr = ":99999" }, "listen_addr"},
		{"no port", func(c *Config) { c.ListenAddr = "localhost" }, "listen_addr"},
		{"zero grace", func(c *Config) { c.ShutdownGrace = 0 }, "shutdown_grace"},
		{"negative timeout", func(c *Config) { c.ReadTimeout = -time.Second }, "read_timeout"},
		{"bad header name", func(c *Config) { c.TrustProxy.ForwardedForHeader = "X Forwarded For" }, "forwarded_for_header"},
		{"empty header name", func(c *Config) { c.TrustProxy.ForwardedProtoHeader = "" }, "forwarded_proto_header"},
		{"cors without origins", func(c *Config) { c.CORS.AllowedOrigins = nil }, "cors.allowed_origins"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("want validation error, got nil")
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("error %q doesn't mention %q", err, test.wantErr)
			}
		})
	}
}

func TestValidateCollectsAll(t *testing.T) {
	cfg := Default()
	cfg.ListenAddr = "bogus"
	cfg.ShutdownGrace = 0

	err := Validate(cfg)
	verr, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("want ValidationError, got %T", err)
	}
	if len(verr.Errors) != 2 {
		t.Errorf("want 2 field errors, got %d: %v", len(verr.Errors), verr)
	}
}
