package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every invalid field so a bad deployment
// fails loudly, once, with the whole story.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "invalid configuration: " + e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "invalid configuration (%d errors):", len(e.Errors))
	for _, err := range e.Errors {
		sb.WriteString("\n  - " + err.Error())
	}
	return sb.String()
}

func Validate(cfg *Config) error {
	var errs []FieldError

	if err := validateListenAddr(cfg.ListenAddr); err != "" {
		errs = append(errs, FieldError{"listen_addr", err})
	}

	durations := []struct {
		field string
		d     time.Duration
	}{
		{"read_timeout", cfg.ReadTimeout},
		{"write_timeout", cfg.WriteTimeout},
		{"idle_timeout", cfg.IdleTimeout},
		{"shutdown_grace", cfg.ShutdownGrace},
	}
	for _, d := range durations {
		if d.d <= 0 {
			errs = append(errs, FieldError{d.field, "must be positive"})
		}
	}

	headerFields := []struct {
		field string
		name  string
	}{
		{"trust_proxy.forwarded_for_header", cfg.TrustProxy.ForwardedForHeader},
		{"trust_proxy.forwarded_proto_header", cfg.TrustProxy.ForwardedProtoHeader},
		{"trust_proxy.forwarded_host_header", cfg.TrustProxy.ForwardedHostHeader},
	}
	for _, h := range headerFields {
		if !validHeaderName(h.name) {
			errs = append(errs, FieldError{h.field, fmt.Sprintf("%q is not a valid header name", h.name)})
		}
	}

	if cfg.CORS.Enabled && len(cfg.CORS.AllowedOrigins) == 0 {
		errs = append(errs, FieldError{"cors.allowed_origins", "must not be empty when cors is enabled"})
	}

	if len(errs) > 0 {
		return ValidationError{errs}
	}
	return nil
}

func validateListenAddr(addr string) string {
	if addr == "" {
		return "must not be empty"
	}
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Sprintf("%q is not a host:port address", addr)
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Sprintf("port %q must be a number in 1-65535", port)
	}
	return ""
}

// validHeaderName checks RFC 7230 token syntax.
func validHeaderName(name string) bool {
	if name == "" {
		return false
	}
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.ContainsRune("!#$%&'*+-.^_`|~", c):
		default:
			return false
		}
	}
	return true
}
