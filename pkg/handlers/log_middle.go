package handlers

import (
	"net/http"
	"time"

	"github.com/edgefront/edgefront/internal/ctxt"
	"github.com/edgefront/edgefront/pkg/metrics"
	"github.com/edgefront/edgefront/pkg/output"
)

type logMiddle struct {
	op   output.Renderer
	mtrx *metrics.Metrics
	next http.Handler
}

// NewLogMiddle emits the access line and feeds the request metrics.
// One line per request, after the handler has run, with the resolved
// (not transport) client identity.
func NewLogMiddle(op output.Renderer, mtrx *metrics.Metrics, next http.Handler) http.Handler {
	return &logMiddle{op, mtrx, next}
}

func (lm logMiddle) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sw := newStatusWriter(w)

	lm.mtrx.IncInFlight()
	lm.next.ServeHTTP(sw, r)
	lm.mtrx.DecInFlight()

	duration := time.Since(start)
	lm.mtrx.Observe(r.Method, sw.status, duration)

	if d, ok := ctxt.ReqDataFromRequest(r); ok {
		lm.op.AccessLine(d, sw.status, duration)
	}
}
