package extractor

import (
	"net"
	"time"

	"github.com/edgefront/edgefront/pkg/state"
)

func NetListener(l net.Listener, d *state.DaemonData) {
	now := time.Now()
	d.TransportListenTime = &now
	d.TransportListenAddress = l.Addr()
}

func NetConn(remote, local net.Addr, connNo uint64, d *state.RequestData) {
	d.TransportConnNo = connNo
	d.TransportRemoteAddress = remote
	d.TransportLocalAddress = local
}
