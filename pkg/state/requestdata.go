package state

import (
	"net"
	"net/http"
	"time"
)

// RequestData collects everything we know about one request: the raw
// transport facts, the HTTP head, and the client identity resolved from
// the forwarding headers. One instance per request, owned by that
// request's goroutine, never shared.
type RequestData struct {
	TransportConnNo        uint64
	TransportRemoteAddress net.Addr
	TransportLocalAddress  net.Addr

	HttpRequestTime     time.Time
	HttpProtocolVersion string
	HttpMethod          string
	HttpPath            string
	HttpQuery           string
	HttpHeaders         http.Header // shared with net/http's request; read-only
	HttpHost            string
	HttpUserAgent       string

	RequestID string

	// Resolved via the trust policy: the transport values unless proxy
	// headers are trusted and well-formed.
	ClientHost    string
	ClientPort    string
	ClientScheme  string
	EffectiveHost string
	ClientTrusted bool // true iff the client address came from a forwarding header

	// Peeked (never validated) from an Authorization bearer token, for
	// the access line only.
	AuthJwtSubject string
	AuthJwtIssuer  string
	AuthJwtFound   bool
}

func NewRequestData() *RequestData {
	return &RequestData{}
}
