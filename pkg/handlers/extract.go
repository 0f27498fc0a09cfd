package handlers

import (
	"net"
	"net/http"
	"strconv"

	"github.com/edgefront/edgefront/internal/ctxt"
	"github.com/edgefront/edgefront/pkg/extractor"
	"github.com/edgefront/edgefront/pkg/state"
	"github.com/edgefront/edgefront/pkg/trust"
	"github.com/edgefront/edgefront/pkg/utils"
)

type extractMiddle struct {
	trustCfg trust.Config
	daemon   *state.DaemonData
	next     http.Handler
}

// NewExtractMiddle builds the per-request state and resolves the
// effective client through the trust policy, before anything downstream
// looks at the request. Every handler below this one can rely on
// RequestData being in the context.
func NewExtractMiddle(trustCfg trust.Config, daemon *state.DaemonData, next http.Handler) http.Handler {
	return &extractMiddle{trustCfg, daemon, next}
}

func (em extractMiddle) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reqData := state.NewRequestData()

	/* Transport */

	if cd, ok := ctxt.ConnDataFromContext(r.Context()); ok {
		extractor.NetConn(cd.RemoteAddress, cd.LocalAddress, cd.ConnNo, reqData)
	} else {
		// No ConnContext hook (eg httptest); RemoteAddr string is all we have
		host, port := utils.SplitHostMaybePort(r.RemoteAddr)
		n, _ := strconv.Atoi(port)
		reqData.TransportRemoteAddress = &net.TCPAddr{IP: net.ParseIP(host), Port: n}
	}

	/* HTTP head */

	extractor.HttpRequest(r, reqData)

	/* Resolve the client through the trust policy */

	res := trust.Resolve(reqData.TransportRemoteAddress, em.daemon.ServingScheme(), r.Header, em.trustCfg)
	reqData.ClientHost = res.ClientHost
	reqData.ClientPort = res.ClientPort
	reqData.ClientScheme = res.Scheme
	reqData.ClientTrusted = res.FromHeader
	reqData.EffectiveHost = reqData.HttpHost
	if res.Host != "" {
		reqData.EffectiveHost = res.Host
	}

	em.next.ServeHTTP(w, r.WithContext(ctxt.ReqDataToContext(r.Context(), reqData)))
}
