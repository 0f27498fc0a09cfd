package ctxt

import (
	"context"
	"net"
	"net/http"

	"github.com/edgefront/edgefront/pkg/state"
)

type tCtxKey string

var reqDataKey = tCtxKey("reqData")
var connDataKey = tCtxKey("connData")

// ConnData is stashed by the server's ConnContext hook; one per
// connection, shared by all requests on it (keep-alive).
type ConnData struct {
	ConnNo        uint64
	RemoteAddress net.Addr
	LocalAddress  net.Addr
}

func ConnDataToContext(ctx context.Context, d *ConnData) context.Context {
	return context.WithValue(ctx, connDataKey, d)
}

func ConnDataFromContext(ctx context.Context) (*ConnData, bool) {
	d, ok := ctx.Value(connDataKey).(*ConnData)
	return d, ok
}

func ReqDataToContext(ctx context.Context, d *state.RequestData) context.Context {
	return context.WithValue(ctx, reqDataKey, d)
}

// ReqDataFromRequest gets the RequestData placed by the extract
// middleware. Handlers below that middleware can assume it's there.
func ReqDataFromRequest(r *http.Request) (*state.RequestData, bool) {
	d, ok := r.Context().Value(reqDataKey).(*state.RequestData)
	return d, ok
}
