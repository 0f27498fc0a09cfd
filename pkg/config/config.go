// Package config assembles the process-wide configuration: defaults,
// then an optional YAML file, then EDGEFRONT_* environment overrides,
// then command-line flags. The result is immutable after startup and
// passed by reference into every component.
package config

import (
	"time"

	"github.com/edgefront/edgefront/pkg/trust"
)

type Config struct {
	// ListenAddr is the bind address, all interfaces by default. The
	// port must match the container's declared exposed port.
	ListenAddr string `yaml:"listen_addr"`

	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`

	// ShutdownGrace bounds how long in-flight requests get to finish
	// after a termination signal before connections are force-closed.
	ShutdownGrace time.Duration `yaml:"shutdown_grace"`

	TrustProxy TrustProxy `yaml:"trust_proxy"`
	CORS       CORS       `yaml:"cors"`
}

type TrustProxy struct {
	Enabled              bool   `yaml:"enabled"`
	ForwardedForHeader   string `yaml:"forwarded_for_header"`
	ForwardedProtoHeader string `yaml:"forwarded_proto_header"`
	ForwardedHostHeader  string `yaml:"forwarded_host_header"`
}

type CORS struct {
	Enabled          bool     `yaml:"enabled"`
	AllowedOrigins   []string `yaml:"allowed_origins"`
	AllowCredentials bool     `yaml:"allow_credentials"`
}

func Default() *Config {
	return &Config{
		ListenAddr:    ":3000",
		ReadTimeout:   120 * time.Second,
		WriteTimeout:  120 * time.Second,
		IdleTimeout:   120 * time.Second,
		ShutdownGrace: 15 * time.Second,
		TrustProxy: TrustProxy{
			Enabled:              true,
			ForwardedForHeader:   trust.DefaultForwardedForHeader,
			ForwardedProtoHeader: trust.DefaultForwardedProtoHeader,
			ForwardedHostHeader:  trust.DefaultForwardedHostHeader,
		},
		CORS: CORS{
			Enabled:          true,
			AllowedOrigins:   []string{"*"},
			AllowCredentials: true,
		},
	}
}

// TrustConfig converts to the resolver's policy type.
func (c *Config) TrustConfig() trust.Config {
	return trust.Config{
		Enabled:              c.TrustProxy.Enabled,
		ForwardedForHeader:   c.TrustProxy.ForwardedForHeader,
		ForwardedProtoHeader: c.TrustProxy.ForwardedProtoHeader,
		ForwardedHostHeader:  c.TrustProxy.ForwardedHostHeader,
	}
}
