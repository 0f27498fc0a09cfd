package trust

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"testing"
)

func tcpAddr(ip string, port int) *net.TCPAddr {
	return &net.TCPAddr{IP: net.ParseIP(ip), Port: port}
}

func headers(kv ...string) http.Header {
	h := http.Header{}
	for i := 0; i < len(kv); i += 2 {
		h.Add(kv[i], kv[i+1])
	}
	return h
}

func TestResolve(t *testing.T) {
	remote := tcpAddr("10.0.0.1", 54321)

	tests := []struct {
		name    string
		enabled bool
		headers http.Header
		want    Resolution
	}{
		{
			"trust off ignores headers",
			false,
			headers("X-Forwarded-For", "203.0.113.5", "X-Forwarded-Proto", "https"),
			Resolution{ClientHost: "10.0.0.1", ClientPort: "54321", Scheme: "http"},
		},
		{
			"trust off no headers",
			false,
			headers(),
			Resolution{ClientHost: "10.0.0.1", ClientPort: "54321", Scheme: "http"},
		},
		{
			"single address",
			true,
			headers("X-Forwarded-For", "203.0.113.5"),
			Resolution{ClientHost: "203.0.113.5", Scheme: "http", FromHeader: true},
		},
		{
			"leftmost of chain",
			true,
			headers("X-Forwarded-For", "203.0.113.5, 10.0.0.1"),
			Resolution{ClientHost: "203.0.113.5", Scheme: "http", FromHeader: true},
		},
		{
			"repeated header",
			true,
			headers("X-Forwarded-For", "203.0.113.5", "X-Forwarded-For", "10.0.0.1"),
			Resolution{ClientHost: "203.0.113.5", Scheme: "http", FromHeader: true},
		},
		{
			"malformed falls back",
			true,
			headers("X-Forwarded-For", "not-an-ip"),
			Resolution{ClientHost: "10.0.0.1", ClientPort: "54321", Scheme: "http"},
		},
		{
			"unknown sentinel falls back",
			true,
			headers("X-Forwarded-For", "unknown, 203.0.113.5"),
			Resolution{ClientHost: "10.0.0.1", ClientPort: "54321", Scheme: "http"},
		},
		{
			"absent falls back",
			true,
			headers(),
			Resolution{ClientHost: "10.0.0.1", ClientPort: "54321", Scheme: "http"},
		},
		{
			"entry with port",
			true,
			headers("X-Forwarded-For", "203.0.113.5:1234"),
			Resolution{ClientHost: "203.0.113.5", ClientPort: "1234", Scheme: "http", FromHeader: true},
		},
		{
			"ipv6 entry",
			true,
			headers("X-Forwarded-For", "2001:db8::1"),
			Resolution{ClientHost: "2001:db8::1", Scheme: "http", FromHeader: true},
		},
		{
			"proto https upgrades scheme",
			true,
			headers("X-Forwarded-Proto", "https"),
			Resolution{ClientHost: "10.0.0.1", ClientPort: "54321", Scheme: "https"},
		},
		{
			"proto https case-insensitive",
			true,
			headers("X-Forwarded-Proto", "HTTPS"),
			Resolution{ClientHost: "10.0.0.1", ClientPort: "54321", Scheme: "https"},
		},
		{
			"proto http leaves scheme",
			true,
			headers("X-Forwarded-Proto", "http"),
			Resolution{ClientHost: "10.0.0.1", ClientPort: "54321", Scheme: "http"},
		},
		{
			"proto garbage leaves scheme",
			true,
			headers("X-Forwarded-Proto", "gopher"),
			Resolution{ClientHost: "10.0.0.1", ClientPort: "54321", Scheme: "http"},
		},
		{
			"forwarded host",
			true,
			headers("X-Forwarded-Host", "api.example.com"),
			Resolution{ClientHost: "10.0.0.1", ClientPort: "54321", Scheme: "http", Host: "api.example.com"},
		},
		{
			"full proxy chain",
			true,
			headers(
				"X-Forwarded-For", "203.0.113.5, 10.0.0.1",
				"X-Forwarded-Proto", "https",
				"X-Forwarded-Host", "api.example.com",
			),
			Resolution{ClientHost: "203.0.113.5", Scheme: "https", Host: "api.example.com", FromHeader: true},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Enabled = test.enabled

			got := Resolve(remote, "http", test.headers, cfg)
			if got != test.want {
				t.Errorf("want %+v, got %+v", test.want, got)
			}
		})
	}
}

func TestResolveTransportScheme(t *testing.T) {
	cfg := DefaultConfig()
	remote := tcpAddr("10.0.0.1", 54321)

	tests := []struct {
		name      string
		transport string
		headers   http.Header
		want      string
	}{
		{"empty defaults to http", "", headers(), "http"},
		{"https transport kept", "https", headers(), "https"},
		{"header cannot downgrade", "https", headers("X-Forwarded-Proto", "http"), "https"},
		{"header upgrades http transport", "http", headers("X-Forwarded-Proto", "https"), "https"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Resolve(remote, test.transport, test.headers, cfg)
			if got.Scheme != test.want {
				t.Errorf("want scheme %q, got %q", test.want, got.Scheme)
			}
		})
	}
}

func TestResolveCustomHeaderNames(t *testing.T) {
	cfg := Config{
		Enabled:              true,
		ForwardedForHeader:   "X-Real-Client",
		ForwardedProtoHeader: "X-Real-Proto",
		ForwardedHostHeader:  "X-Real-Host",
	}

	h := headers(
		"X-Real-Client", "203.0.113.5",
		"X-Real-Proto", "https",
		"X-Forwarded-For", "198.51.100.99", // conventional name must be ignored now
	)

	got := Resolve(tcpAddr("10.0.0.1", 1), "http", h, cfg)
	if got.ClientHost != "203.0.113.5" || got.Scheme != "https" {
		t.Errorf("custom headers not honoured: %+v", got)
	}
}

func TestResolveIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	h := headers("X-Forwarded-For", "203.0.113.5, 10.0.0.1", "X-Forwarded-Proto", "https")
	remote := tcpAddr("10.0.0.1", 54321)

	first := Resolve(remote, "http", h, cfg)
	for i := 0; i < 10; i++ {
		if got := Resolve(remote, "http", h, cfg); got != first {
			t.Fatalf("resolution %d differs: %+v vs %+v", i, got, first)
		}
	}
}

// N concurrent resolutions with distinct inputs must not contaminate
// each other; Resolve shares nothing but the read-only config.
func TestResolveConcurrent(t *testing.T) {
	cfg := DefaultConfig()

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			client := fmt.Sprintf("203.0.113.%d", i%250+1)
			h := headers("X-Forwarded-For", client+", 10.0.0.1")
			remote := tcpAddr("10.0.0.1", 10000+i)

			for j := 0; j < 100; j++ {
				got := Resolve(remote, "http", h, cfg)
				if got.ClientHost != client {
					t.Errorf("cross-contamination: want %s, got %s", client, got.ClientHost)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}
