package handlers

import (
	"net/http"
	"strings"

	"github.com/edgefront/edgefront/pkg/config"
)

type corsMiddle struct {
	cfg  config.CORS
	next http.Handler
}

// NewCORSMiddle answers preflights and stamps the CORS headers the
// browser-facing deployment needs. Methods and headers are wide open;
// the origin list is the only gate.
func NewCORSMiddle(cfg config.CORS, next http.Handler) http.Handler {
	return &corsMiddle{cfg, next}
}

func (cm corsMiddle) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !cm.cfg.Enabled {
		cm.next.ServeHTTP(w, r)
		return
	}

	origin := r.Header.Get("Origin")
	if origin != "" && cm.originAllowed(origin) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Vary", "Origin")
		if cm.cfg.AllowCredentials {
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
	} else if cm.originAllowed("*") {
		w.Header().Set("Access-Control-Allow-Origin", "*")
	}

	if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
			w.Header().Set("Access-Control-Allow-Headers", reqHeaders)
		}
		w.Header().Set("Access-Control-Max-Age", "3600")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	cm.next.ServeHTTP(w, r)
}

func (cm corsMiddle) originAllowed(origin string) bool {
	for _, allowed := range cm.cfg.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}
