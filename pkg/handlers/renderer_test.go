package handlers

import (
	"net"
	"time"

	"github.com/edgefront/edgefront/pkg/state"
)

// recordingRenderer is a test double for output.Renderer.
type recordingRenderer struct {
	lastData   *state.RequestData
	lastStatus int
}

func (r *recordingRenderer) Listening(net.Addr) {}

func (r *recordingRenderer) AccessLine(d *state.RequestData, status int, _ time.Duration) {
	r.lastData = d
	r.lastStatus = status
}

func (r *recordingRenderer) ShuttingDown(time.Duration) {}
