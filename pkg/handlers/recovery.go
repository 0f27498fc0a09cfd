package handlers

import (
	"net/http"
	"runtime/debug"

	"github.com/go-logr/logr"
)

// NewRecoveryMiddle turns a panicking handler into a 500 on that
// request only; the accept loop and sibling connections are unaffected.
func NewRecoveryMiddle(log logr.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error(nil, "panic in handler",
					"panic", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
