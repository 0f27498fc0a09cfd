package output

import (
	"net"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/mattn/go-isatty"

	"github.com/edgefront/edgefront/pkg/state"
)

// Renderer emits the per-request access line and the few daemon-level
// events. Two implementations: pretty for a terminal, key/value for
// anything collecting logs.
type Renderer interface {
	Listening(addr net.Addr)
	AccessLine(d *state.RequestData, status int, duration time.Duration)
	ShuttingDown(grace time.Duration)
}

// Auto picks the renderer for the environment: colours when stdout is a
// terminal, structured logging otherwise (the normal case in a
// container).
func Auto(log logr.Logger) Renderer {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		return NewTty(true)
	}
	return NewLog(log)
}
