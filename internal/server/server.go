package server

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"time"

	"firefront/internal/game"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow connections from any origin
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Server exposes the world over HTTP: the WebSocket endpoint for clients,
// a liveness probe, and the runtime counters.
type Server struct {
	world  *game.World
	logger *zap.SugaredLogger
	http   *http.Server
}

// New creates a server for the given world.
func New(addr string, world *game.World, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	s := &Server{world: world, logger: logger}

	router := mux.NewRouter()
	router.HandleFunc("/ws", s.handleWebSocket).Methods("GET")
	router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	router.Handle("/debug/vars", expvar.Handler()).Methods("GET")

	s.http = &http.Server{Addr: addr, Handler: router}
	return s
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.ListenAndServe()
	}()

	s.logger.Infof("Server listening on %s", s.http.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// handleWebSocket upgrades the connection and starts the client pumps.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warnf("WebSocket upgrade error: %v", err)
		return
	}

	client := game.NewClient(conn, s.world, s.logger)
	go client.ReadPump()
	go client.WritePump()
}

// handleHealth answers liveness probes.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
