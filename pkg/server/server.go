// Package server is the listening front end: it binds the socket,
// owns the middleware chain, and runs the process lifecycle from bind
// to graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/go-logr/logr"

	"github.com/edgefront/edgefront/internal/ctxt"
	"github.com/edgefront/edgefront/pkg/config"
	"github.com/edgefront/edgefront/pkg/extractor"
	"github.com/edgefront/edgefront/pkg/handlers"
	"github.com/edgefront/edgefront/pkg/metrics"
	"github.com/edgefront/edgefront/pkg/output"
	"github.com/edgefront/edgefront/pkg/state"
)

type Server struct {
	cfg    *config.Config
	log    logr.Logger
	op     output.Renderer
	mtrx   *metrics.Metrics
	daemon *state.DaemonData
	app    http.Handler

	connNo atomic.Uint64
	ready  chan struct{}
}

// New wires the middleware chain around app. A nil app gets the
// default receipt handler, which is all a front-end smoke test needs.
func New(cfg *config.Config, log logr.Logger, op output.Renderer, app http.Handler) *Server {
	if app == nil {
		app = handlers.NewDefaultHandler()
	}
	return &Server{
		cfg:    cfg,
		log:    log,
		op:     op,
		mtrx:   metrics.New(),
		daemon: state.NewDaemonData(),
		app:    app,
		ready:  make(chan struct{}),
	}
}

// Ready is closed once the socket is bound and the accept loop is up.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// BoundAddr is the actual listen address, useful when the configured
// port was 0. Valid only after Ready.
func (s *Server) BoundAddr() net.Addr {
	return s.daemon.TransportListenAddress
}

func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/healthz", handlers.NewHealthHandler())
	mux.Handle("/metrics", s.mtrx.Handler())
	mux.Handle("/", s.app)

	// Innermost to outermost: the extract layer must see the request
	// before anything that reads the resolved client.
	var h http.Handler = mux
	h = handlers.NewCORSMiddle(s.cfg.CORS, h)
	h = handlers.NewLogMiddle(s.op, s.mtrx, h)
	h = handlers.NewRequestIDMiddle(h)
	h = handlers.NewExtractMiddle(s.cfg.TrustConfig(), s.daemon, h)
	h = handlers.NewRecoveryMiddle(s.log, h)
	return h
}

// Run binds, serves, and blocks until ctx is cancelled, a SIGINT or
// SIGTERM arrives, or the server dies. A bind failure is returned
// immediately (fatal at startup, the caller exits non-zero); a shutdown
// via signal or ctx is a clean nil even when the grace period expires
// and stragglers are cut off.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", s.cfg.ListenAddr, err)
	}

	extractor.NetListener(ln, s.daemon)
	s.op.Listening(ln.Addr())

	srv := &http.Server{
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
		Handler:      s.handler(),
		ConnContext: func(ctx context.Context, c net.Conn) context.Context {
			return ctxt.ConnDataToContext(ctx, &ctxt.ConnData{
				ConnNo:        s.connNo.Add(1),
				RemoteAddress: c.RemoteAddr(),
				LocalAddress:  c.LocalAddr(),
			})
		},
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()
	close(s.ready)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		s.log.Info("context cancelled, shutting down")
	case sig := <-sigChan:
		s.log.Info("received signal, shutting down", "signal", sig.String())
	case err := <-errChan:
		return fmt.Errorf("server failed: %w", err)
	}

	return s.shutdown(srv)
}

// shutdown stops the accept loop, then drains in-flight requests for up
// to the grace period; whatever is still running after that gets its
// connection closed. Best effort, never an error.
func (s *Server) shutdown(srv *http.Server) error {
	s.op.ShuttingDown(s.cfg.ShutdownGrace)

	graceCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownGrace)
	defer cancel()

	if err := srv.Shutdown(graceCtx); err != nil {
		s.log.Info("grace period elapsed, closing remaining connections", "err", err.Error())
		_ = srv.Close()
	}
	return nil
}
