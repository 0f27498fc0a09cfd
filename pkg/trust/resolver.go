// Package trust decides what to believe about the client on the far
// side of a reverse proxy. The proxy is inside the trust boundary, the
// end client is not: header values are trusted in origin but never in
// format, so anything malformed silently falls back to the transport
// facts rather than failing the request.
package trust

import (
	"net"
	"net/http"
	"strings"

	"github.com/edgefront/edgefront/pkg/codec"
	"github.com/edgefront/edgefront/pkg/utils"
)

// Conventional forwarding header names, as set by nginx, Envoy, ELBs etc.
const (
	DefaultForwardedForHeader   = "X-Forwarded-For"
	DefaultForwardedProtoHeader = "X-Forwarded-Proto"
	DefaultForwardedHostHeader  = "X-Forwarded-Host"
)

// Config is the trust policy. Built once at startup, immutable, read by
// every request without synchronisation.
type Config struct {
	Enabled              bool
	ForwardedForHeader   string
	ForwardedProtoHeader string
	ForwardedHostHeader  string
}

func DefaultConfig() Config {
	return Config{
		Enabled:              true,
		ForwardedForHeader:   DefaultForwardedForHeader,
		ForwardedProtoHeader: DefaultForwardedProtoHeader,
		ForwardedHostHeader:  DefaultForwardedHostHeader,
	}
}

// Resolution is the effective client identity for one request.
// ClientHost is always populated.
type Resolution struct {
	ClientHost string
	ClientPort string
	Scheme     string // "http" or "https"
	Host       string // virtual host override, "" if none
	FromHeader bool   // ClientHost came from a forwarding header
}

// Resolve derives the effective client address and scheme for a request
// arriving on remoteAddr with the given headers. transportScheme is the
// scheme the listener itself serves ("" means "http"); a forwarding
// header can only upgrade it. Pure function of its inputs; never
// errors, never panics on malformed header values.
func Resolve(remoteAddr net.Addr, transportScheme string, headers http.Header, cfg Config) Resolution {
	if transportScheme == "" {
		transportScheme = "http"
	}
	res := Resolution{
		Scheme: transportScheme,
	}
	res.ClientHost, res.ClientPort = utils.SplitNetAddr(remoteAddr)

	if !cfg.Enabled {
		return res
	}

	// Leftmost entry is the originating client by forwarding-chain
	// convention; each proxy appends its caller to the right.
	fors := codec.HeaderRepeatedOrCommaSeparated(headers, cfg.ForwardedForHeader)
	if len(fors) > 0 && utils.ValidIP(fors[0]) {
		// Spec says no port in x-forwarded-for, but some proxies send one
		res.ClientHost, res.ClientPort = utils.SplitHostMaybePort(fors[0])
		res.FromHeader = true
	}

	protos := codec.HeaderRepeatedOrCommaSeparated(headers, cfg.ForwardedProtoHeader)
	if len(protos) > 0 && strings.EqualFold(protos[0], "https") {
		// Only "https" upgrades the scheme; anything else (including
		// garbage) leaves the transport-observed one
		res.Scheme = "https"
	}

	hosts := codec.HeaderRepeatedOrCommaSeparated(headers, cfg.ForwardedHostHeader)
	if len(hosts) > 0 {
		res.Host = hosts[0]
	}

	return res
}
