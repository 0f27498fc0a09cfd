package utils

import (
	"net"
	"strconv"
)

// HostFromHostMaybePort strips an optional :port suffix, returning the
// input unchanged when there is none.
func HostFromHostMaybePort(hostMaybePort string) (host string) {
	var err error
	host, _, err = net.SplitHostPort(hostMaybePort)
	if err != nil {
		host = hostMaybePort
	}
	return
}

func SplitHostMaybePort(hostMaybePort string) (host, port string) {
	var err error
	host, port, err = net.SplitHostPort(hostMaybePort)
	if err != nil {
		host = hostMaybePort
		port = ""
	}
	return
}

// SplitNetAddr splits a transport address into host and port strings.
// Non-TCP addresses (unix sockets, test fakes) fall back to parsing the
// string form; an unparseable address comes back whole as the host.
func SplitNetAddr(addr net.Addr) (host, port string) {
	switch a := addr.(type) {
	case *net.TCPAddr:
		return a.IP.String(), strconv.Itoa(a.Port)
	default:
		return SplitHostMaybePort(addr.String())
	}
}

// ValidIP reports whether s is a syntactically valid IPv4 or IPv6
// address, tolerating an optional :port suffix and the bracketed IPv6
// form some proxies emit.
func ValidIP(s string) bool {
	return net.ParseIP(HostFromHostMaybePort(s)) != nil
}
