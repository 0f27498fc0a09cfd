package extractor

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/edgefront/edgefront/pkg/codec"
	"github.com/edgefront/edgefront/pkg/state"
)

func HttpRequest(r *http.Request, d *state.RequestData) {
	d.HttpRequestTime = time.Now()
	d.HttpProtocolVersion = fmt.Sprintf("%d.%d", r.ProtoMajor, r.ProtoMinor)
	d.HttpMethod = r.Method

	// Store the unescaped (no %XX) forms; they're for rendering, not re-parsing
	d.HttpPath = r.URL.Path
	d.HttpQuery, _ = url.QueryUnescape(r.URL.RawQuery)

	d.HttpHeaders = r.Header // not cloned; we only read
	d.HttpHost = r.Host
	d.HttpUserAgent = codec.HeaderFromRequest(r, "User-Agent")

	d.AuthJwtSubject, d.AuthJwtIssuer, d.AuthJwtFound = codec.PeekJWT(r)
}
