package remote

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/msto63/devconsole/internal/console"
	"github.com/msto63/devconsole/pkg/core/config"
	"github.com/msto63/devconsole/pkg/core/health"
	"github.com/msto63/devconsole/pkg/core/logging"
	"github.com/msto63/devconsole/pkg/core/version"
)

// HealthPath is where ListenAndServe mounts the health report
const HealthPath = "/health"

// WebSocket upgrader with permissive settings for local development
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // the server only listens on loopback by default
	},
}

// Server exposes a console over WebSocket. Lines of all sessions are
// dispatched one at a time because the console is not safe for concurrent use.
type Server struct {
	console     *console.Console
	logger      *logging.Logger
	readTimeout time.Duration
	health      *health.Registry

	mutex    sync.Mutex
	cleared  bool
	exited   bool
	sessions int
}

// NewServer creates a server for c. The console's clear and exit hooks are
// taken over by the server.
func NewServer(c *console.Console, cfg config.RemoteConfig, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{
		console:     c,
		logger:      logger.WithField("component", "remote"),
		readTimeout: cfg.ReadTimeout.Duration,
		health:      health.NewRegistry("devconsole", version.Remote),
	}
	c.OnClear(func() { s.cleared = true })
	c.OnExit(func() { s.exited = true })

	s.health.Register("commands", s.checkCommands)
	s.health.Register("sessions", func(ctx context.Context) health.CheckResult {
		return health.CheckResult{
			Status:  health.StatusHealthy,
			Details: map[string]any{"open": s.Sessions()},
		}
	})
	return s
}

// Health returns the checks reported at HealthPath
func (s *Server) Health() *health.Registry {
	return s.health
}

// checkCommands reports degraded while command words collide
func (s *Server) checkCommands(ctx context.Context) health.CheckResult {
	s.mutex.Lock()
	n := len(s.console.Registry().Commands())
	collisions := s.console.Diagnostics()
	s.mutex.Unlock()

	result := health.CheckResult{
		Status:  health.StatusHealthy,
		Details: map[string]any{"registered": n},
	}
	if len(collisions) > 0 {
		result.Status = health.StatusDegraded
		result.Message = collisions[0]
		result.Details["collisions"] = len(collisions)
	}
	return result
}

// Sessions returns the number of open sessions
func (s *Server) Sessions() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.sessions
}

// ServeHTTP handles WebSocket upgrade and connections
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.ErrorWithErr("WebSocket upgrade failed", err)
		return
	}
	s.handleConnection(r.Context(), conn)
}

// handleConnection runs one session until the client leaves or sends exit
func (s *Server) handleConnection(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	session := uuid.NewString()
	log := s.logger.WithRequestID(session)
	log.Info("Remote session opened", logging.Fields{"remote": conn.RemoteAddr().String()})

	s.mutex.Lock()
	s.sessions++
	s.mutex.Unlock()
	defer func() {
		s.mutex.Lock()
		s.sessions--
		s.mutex.Unlock()
	}()

	if err := conn.WriteJSON(hello(session)); err != nil {
		log.WarnWithErr("WebSocket send error", err)
		return
	}

	s.extendDeadline(conn)
	conn.SetPongHandler(func(string) error {
		s.extendDeadline(conn)
		return nil
	})

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WarnWithErr("WebSocket read error", err)
			} else {
				log.Info("Remote session closed")
			}
			return
		}
		s.extendDeadline(conn)

		var resp Response
		switch req.Type {
		case TypePing:
			resp = Response{Type: TypePong}

		case TypeLine:
			resp = s.dispatch(ctx, req.Line)
			resp.Session = session

		default:
			resp = Response{Type: TypeError, Error: "Unknown message type: " + req.Type}
		}

		if err := conn.WriteJSON(resp); err != nil {
			log.WarnWithErr("WebSocket send error", err)
			return
		}
		if resp.Exit {
			log.Info("Remote session ended by exit")
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "exit"))
			return
		}
	}
}

// dispatch runs line on the console while holding the server lock
func (s *Server) dispatch(ctx context.Context, line string) Response {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.cleared, s.exited = false, false
	out := s.console.Process(line, console.DispatchOptions{Context: ctx})
	buffered, _ := s.console.TakeBufferedLine()

	return Response{
		Type:   TypeOutput,
		Output: out,
		Clear:  s.cleared,
		Exit:   s.exited,
		Buffer: buffered,
	}
}

func (s *Server) extendDeadline(conn *websocket.Conn) {
	if s.readTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(s.readTimeout))
	}
}

// ListenAndServe serves the console at cfg.Listen and cfg.Path until ctx is
// cancelled
func ListenAndServe(ctx context.Context, s *Server, cfg config.RemoteConfig) error {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, s)
	mux.Handle(HealthPath, s.health)

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Remote console listening", logging.Fields{"addr": cfg.Listen, "path": cfg.Path})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("Shutting down remote console")
		return srv.Shutdown(shutdownCtx)
	}
}
