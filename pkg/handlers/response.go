package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/edgefront/edgefront/internal/ctxt"
	"github.com/edgefront/edgefront/pkg/build"
)

// NewDefaultHandler is what serves when no application handler is
// wired: a JSON receipt of the request as we resolved it. Useful for
// verifying the proxy chain from the outside.
func NewDefaultHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]string{
			"by": build.NameAndVersion(),
			"at": time.Now().Format(time.RFC3339Nano),
		}
		if d, ok := ctxt.ReqDataFromRequest(r); ok {
			body["client"] = d.ClientHost
			body["scheme"] = d.ClientScheme
			body["method"] = d.HttpMethod
			body["path"] = d.HttpPath
			body["host"] = d.EffectiveHost
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(body) // headers already sent; nothing useful to do on error
	})
}

// NewHealthHandler is the liveness probe: 200 while the process is up.
func NewHealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
}
