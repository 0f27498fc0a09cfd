package state

import (
	"net"
	"time"
)

// DaemonData is process-wide serving state, filled in once at startup
// and read-only thereafter.
type DaemonData struct {
	TransportListenTime    *time.Time
	TransportListenAddress net.Addr
}

func NewDaemonData() *DaemonData {
	return &DaemonData{}
}

// ServingScheme is what this process itself speaks. TLS terminates at
// the proxy in front of us, so it's always plaintext here.
func (d *DaemonData) ServingScheme() string {
	return "http"
}
