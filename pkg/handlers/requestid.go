package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/edgefront/edgefront/internal/ctxt"
)

const RequestIDHeader = "X-Request-ID"

// NewRequestIDMiddle tags every request with an ID for log correlation:
// the proxy's, if it sent one, else a fresh UUID. Echoed back in the
// response so the caller can quote it.
func NewRequestIDMiddle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		if d, ok := ctxt.ReqDataFromRequest(r); ok {
			d.RequestID = id
		}
		w.Header().Set(RequestIDHeader, id)

		next.ServeHTTP(w, r)
	})
}
