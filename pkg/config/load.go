package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load builds the configuration: defaults, overlaid by the YAML file at
// path (if path is non-empty), overlaid by environment variables. The
// result is validated; a validation failure here is fatal to startup.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides applies EDGEFRONT_* environment variables, which
// take precedence over file values. The deployment that inspired this
// fed everything through env, so every field is reachable this way.
// A malformed value is a configuration error: fatal, never silently
// swapped for the default.
func applyEnvOverrides(cfg *Config) error {
	var errs []FieldError

	if v := os.Getenv("EDGEFRONT_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("EDGEFRONT_PORT"); v != "" {
		cfg.ListenAddr = ":" + v
	}

	errs = appendErr(errs, envDuration("EDGEFRONT_READ_TIMEOUT", &cfg.ReadTimeout))
	errs = appendErr(errs, envDuration("EDGEFRONT_WRITE_TIMEOUT", &cfg.WriteTimeout))
	errs = appendErr(errs, envDuration("EDGEFRONT_IDLE_TIMEOUT", &cfg.IdleTimeout))
	errs = appendErr(errs, envDuration("EDGEFRONT_SHUTDOWN_GRACE", &cfg.ShutdownGrace))

	errs = appendErr(errs, envBool("EDGEFRONT_TRUST_PROXY", &cfg.TrustProxy.Enabled))
	if v := os.Getenv("EDGEFRONT_FORWARDED_FOR_HEADER"); v != "" {
		cfg.TrustProxy.ForwardedForHeader = v
	}
	if v := os.Getenv("EDGEFRONT_FORWARDED_PROTO_HEADER"); v != "" {
		cfg.TrustProxy.ForwardedProtoHeader = v
	}
	if v := os.Getenv("EDGEFRONT_FORWARDED_HOST_HEADER"); v != "" {
		cfg.TrustProxy.ForwardedHostHeader = v
	}

	errs = appendErr(errs, envBool("EDGEFRONT_CORS", &cfg.CORS.Enabled))
	if v := os.Getenv("EDGEFRONT_CORS_ORIGINS"); v != "" {
		origins := []string{}
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORS.AllowedOrigins = origins
	}

	if len(errs) > 0 {
		return ValidationError{errs}
	}
	return nil
}

func appendErr(errs []FieldError, err *FieldError) []FieldError {
	if err != nil {
		errs = append(errs, *err)
	}
	return errs
}

func envDuration(key string, dst *time.Duration) *FieldError {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return &FieldError{key, fmt.Sprintf("%q is not a duration", v)}
	}
	*dst = d
	return nil
}

func envBool(key string, dst *bool) *FieldError {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return &FieldError{key, fmt.Sprintf("%q is not a boolean", v)}
	}
	*dst = b
	return nil
}
