package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/davecgh/go-spew/spew"
	"github.com/go-logr/logr"
	"github.com/mt-inside/go-usvc"

	"github.com/edgefront/edgefront/pkg/build"
	"github.com/edgefront/edgefront/pkg/codec"
	"github.com/edgefront/edgefront/pkg/config"
	"github.com/edgefront/edgefront/pkg/trust"
)

// Same trust resolution, different front door: behind API Gateway the
// "transport address" is whatever the gateway saw, and the forwarding
// headers arrive in the event map instead of on a socket.

func main() {
	lambda.Start(handleRequest)
}

func handleRequest(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	log := usvc.GetLogger(false)

	switch os.Getenv("EDGEFRONT_ENVELOPE") {
	case "dump":
		// Only useful from a direct invoke; spews the raw event
		spew.Dump(ctx)
		spew.Dump(input)
		return map[string]string{"by": build.NameAndVersion()}, nil
	default:
		return resolveAPIGw(log.WithName("apigw"), input)
	}
}

func resolveAPIGw(log logr.Logger, input map[string]interface{}) (interface{}, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}

	/* Headers: api-gw maps null for "none supplied", not an empty map */

	headers := http.Header{}
	if hm, ok := input["headers"].(map[string]interface{}); ok {
		for k, v := range hm {
			if s, ok := v.(string); ok {
				headers.Add(k, s)
			}
		}
	}

	/* Transport address as the gateway saw it */

	var remote net.Addr = &net.TCPAddr{}
	if rc, ok := input["requestContext"].(map[string]interface{}); ok {
		if identity, ok := rc["identity"].(map[string]interface{}); ok {
			if src, ok := identity["sourceIp"].(string); ok {
				remote = &net.TCPAddr{IP: net.ParseIP(src)}
			}
		}
	}

	// API Gateway only serves TLS, so the transport scheme is fixed
	res := trust.Resolve(remote, "https", headers, cfg.TrustConfig())
	log.Info("Resolved", "client", res.ClientHost, "scheme", res.Scheme, "from-header", res.FromHeader)

	body := map[string]string{
		"by":     build.NameAndVersion(),
		"at":     time.Now().Format(time.RFC3339Nano),
		"client": res.ClientHost,
		"scheme": res.Scheme,
	}
	if path, ok := input["path"].(string); ok {
		body["path"] = path
	}
	if ua := codec.HeaderFromMap(mapOrNil(input["headers"]), "User-Agent"); ua != "" {
		body["user-agent"] = ua
	}

	return body, nil
}

func mapOrNil(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}
