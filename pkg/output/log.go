package output

import (
	"net"
	"time"

	"github.com/go-logr/logr"

	"github.com/edgefront/edgefront/pkg/state"
)

// Log is a Renderer that writes structured key/value lines via logr.
type Log struct {
	log logr.Logger
}

func NewLog(log logr.Logger) Renderer {
	return Log{log}
}

func (o Log) Listening(addr net.Addr) {
	o.log.Info("Listening", "addr", addr.String())
}

func (o Log) AccessLine(d *state.RequestData, status int, duration time.Duration) {
	kvs := []any{
		"request", d.TransportConnNo,
		"id", d.RequestID,
		"proto", "HTTP/" + d.HttpProtocolVersion,
		"scheme", d.ClientScheme,
		"method", d.HttpMethod,
		"host", d.HttpHost,
		"path", d.HttpPath,
		"status", status,
		"client", d.ClientHost,
		"client-from-header", d.ClientTrusted,
		"socket", d.TransportRemoteAddress.String(),
		"user-agent", d.HttpUserAgent,
		"duration", duration.String(),
	}
	if d.HttpQuery != "" {
		kvs = append(kvs, "query", d.HttpQuery)
	}
	if d.TransportLocalAddress != nil {
		kvs = append(kvs, "local", d.TransportLocalAddress.String())
	}
	if d.AuthJwtFound {
		kvs = append(kvs, "jwt-subject", d.AuthJwtSubject, "jwt-issuer", d.AuthJwtIssuer)
	}
	o.log.Info("Request", kvs...)
}

func (o Log) ShuttingDown(grace time.Duration) {
	o.log.Info("Shutting down", "grace", grace.String())
}
