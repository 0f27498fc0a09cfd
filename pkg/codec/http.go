package codec

import (
	"net/http"
	"strings"
)

func HeaderFromRequest(r *http.Request, key string) (value string) {
	hs := r.Header[http.CanonicalHeaderKey(key)]
	if len(hs) >= 1 { // len(nil) == 0
		value = hs[0]
	}
	return
}

func HeaderFromMap(headers map[string]interface{}, key string) (value string) {
	// Lambda event maps aren't canonicalised, so probe both forms
	if h, ok := headers[key]; ok {
		value, _ = h.(string)
		return
	}
	if h, ok := headers[strings.ToLower(key)]; ok {
		value, _ = h.(string)
	}
	return
}

// HeaderRepeatedOrCommaSeparated flattens a header that proxies
// variously repeat (one value per hop) or fold into one comma-separated
// value. Empty entries are dropped; entries come back trimmed, in wire
// order.
func HeaderRepeatedOrCommaSeparated(headers http.Header, key string) []string {
	var values []string
	for _, raw := range headers[http.CanonicalHeaderKey(key)] {
		for _, v := range strings.Split(raw, ",") {
			v = strings.TrimSpace(v)
			if v != "" {
				values = append(values, v)
			}
		}
	}
	return values
}
