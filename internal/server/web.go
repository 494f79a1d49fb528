package server

import (
	"context"
	"net/http"
	"sync"

	cws "github.com/coder/websocket"
	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"

	"github.com/prewarm/prewarm/pkg/logger"
)

// Server is the daemon control surface: the JSON-RPC bridge at /rpc and
// the WebSocket event stream at /events, both guarded by the bearer secret.
type Server struct {
	addr     string
	log      logger.Logger
	rpc      *RPCServer
	notifier *Notifier
	server   *http.Server
	mu       sync.Mutex
}

// NewServer creates the control surface listening on addr.
func NewServer(l logger.Logger, rpc *RPCServer, notifier *Notifier, addr string) *Server {
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &Server{
		addr:     addr,
		log:      l,
		rpc:      rpc,
		notifier: notifier,
	}
}

// handleEvents upgrades the connection to a WebSocket and attaches a
// push-only jrpc2 server to it. The server stays registered with the
// notifier until the peer disconnects.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := cws.Accept(w, r, nil)
	if err != nil {
		s.log.Warning("event stream accept failed: %v", err)
		return
	}
	ch := &wsChannel{conn: conn, ctx: r.Context()}
	srv := jrpc2.NewServer(handler.Map{}, &jrpc2.ServerOptions{AllowPush: true})
	srv.Start(ch)
	s.notifier.Register(srv)
	defer s.notifier.Unregister(srv)
	_ = srv.Wait()
}

func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/rpc", requireToken(s.rpc.secret, s.rpc.bridge))
	mux.Handle("/events", requireToken(s.rpc.secret, http.HandlerFunc(s.handleEvents)))
	return mux
}

// Start begins serving and blocks until the server is shut down.
func (s *Server) Start() error {
	s.mu.Lock()
	s.server = &http.Server{
		Addr:    s.addr,
		Handler: s.handler(),
	}
	s.mu.Unlock()

	s.log.Info("control surface listening on %s", s.addr)
	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil // Expected during shutdown
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rpc.Close()
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
