package output

import (
	"fmt"
	"net"
	"time"

	"github.com/logrusorgru/aurora/v3"

	"github.com/edgefront/edgefront/pkg/state"
)

type tty struct {
	au aurora.Aurora
}

func NewTty(color bool) Renderer {
	return tty{aurora.NewAurora(color)}
}

func getTimestamp() string {
	return time.Now().Format("15:04:05")
}

func (o tty) Listening(addr net.Addr) {
	fmt.Printf("%s listening on %s\n", o.au.BrightBlack(getTimestamp()), o.au.Cyan(addr.String()))
}

func (o tty) AccessLine(d *state.RequestData, status int, duration time.Duration) {
	client := d.ClientHost
	if d.ClientPort != "" {
		client = net.JoinHostPort(d.ClientHost, d.ClientPort)
	}

	fmt.Printf(
		"%s %s %s %s %s %s for %s",
		o.au.BrightBlack(getTimestamp()),
		o.au.Blue(d.ClientScheme),
		o.au.Green(d.HttpMethod),
		o.au.Red(d.HttpHost),
		o.au.Cyan(d.HttpPath),
		o.colorStatus(status),
		o.au.Cyan(client),
	)
	if d.ClientTrusted {
		// flag that the client came from the proxy headers, not the socket
		fmt.Printf(" (fwd, socket %s)", o.au.BrightBlack(d.TransportRemoteAddress.String()))
	}
	if d.AuthJwtFound {
		fmt.Printf(" as %s", o.au.Magenta(d.AuthJwtSubject))
	}
	fmt.Printf(" in %s\n", o.au.BrightBlack(duration.Round(time.Millisecond).String()))
}

func (o tty) ShuttingDown(grace time.Duration) {
	fmt.Printf("%s shutting down, draining for up to %s\n", o.au.BrightBlack(getTimestamp()), o.au.Cyan(grace.String()))
}

func (o tty) colorStatus(status int) aurora.Value {
	switch {
	case status >= 500:
		return o.au.Red(status)
	case status >= 400:
		return o.au.Yellow(status)
	default:
		return o.au.Green(status)
	}
}
