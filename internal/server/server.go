package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rickgao/merchant-guide/internal/model"
	"github.com/rickgao/merchant-guide/internal/session"
	"github.com/rickgao/merchant-guide/internal/writer"
)

// Config holds server settings.
type Config struct {
	Addr            string
	ReadLimit       int64
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	SkipBlankLines  bool
}

// Reply is the JSON message sent for every evaluated line.
type Reply struct {
	Seq   int64  `json:"seq"`
	Kind  string `json:"kind"`
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// Server accepts websocket connections and runs one session per connection.
type Server struct {
	cfg        Config
	sessionCfg session.Config
	sink       writer.Sink // optional; receives every answer
	logger     *slog.Logger
	upgrader   websocket.Upgrader
	httpServer *http.Server

	active atomic.Int64
	total  atomic.Int64

	// Hijacked connections are invisible to http.Server.Shutdown, so the
	// server tracks its websocket handlers itself.
	mu       sync.Mutex
	conns    map[*websocket.Conn]struct{}
	closing  bool
	handlers sync.WaitGroup
}

// New creates a Server. sink may be nil.
func New(cfg Config, sessionCfg session.Config, sink writer.Sink, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:        cfg,
		sessionCfg: sessionCfg,
		sink:       sink,
		logger:     logger,
		conns:      make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.httpServer = &http.Server{
		Addr:    cfg.Addr,
		Handler: s.Handler(),
	}
	return s
}

// Handler returns the HTTP handler serving /ws and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// ListenAndServe blocks until the server stops. It returns nil after Shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting server", "addr", s.cfg.Addr)
	if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server. It asks every open session to
// close and waits for their handlers to return, bounded by ctx and
// ShutdownTimeout. Sessions still open at the deadline are closed forcibly
// and the deadline error is returned once their handlers have exited.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server", "active_sessions", s.active.Load())
	httpErr := s.httpServer.Shutdown(ctx)

	s.mu.Lock()
	s.closing = true
	conns := make([]*websocket.Conn, 0, len(s.conns))
	for conn := range s.conns {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for _, conn := range conns {
		if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)); err != nil {
			s.logger.Debug("close frame failed", "error", err)
		}
	}

	waitCtx := ctx
	if s.cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
		defer cancel()
	}

	done := make(chan struct{})
	go func() {
		s.handlers.Wait()
		close(done)
	}()

	select {
	case <-done:
		return httpErr
	case <-waitCtx.Done():
	}

	s.logger.Warn("sessions did not close in time", "active_sessions", s.active.Load())
	for _, conn := range conns {
		conn.Close()
	}
	<-done
	return waitCtx.Err()
}

// track registers a session connection. It reports false once Shutdown
// has started.
func (s *Server) track(conn *websocket.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.conns[conn] = struct{}{}
	s.handlers.Add(1)
	return true
}

func (s *Server) untrack(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
	s.handlers.Done()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := struct {
		Status         string `json:"status"`
		ActiveSessions int64  `json:"active_sessions"`
		TotalSessions  int64  `json:"total_sessions"`
	}{
		Status:         "healthy",
		ActiveSessions: s.active.Load(),
		TotalSessions:  s.total.Load(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	if !s.track(conn) {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		return
	}
	defer s.untrack(conn)

	if s.cfg.ReadLimit > 0 {
		conn.SetReadLimit(s.cfg.ReadLimit)
	}

	sess := session.New(s.sessionCfg, s.logger)
	s.active.Add(1)
	s.total.Add(1)
	defer s.active.Add(-1)

	logger := s.logger.With("session", sess.ID().String(), "remote", r.RemoteAddr)
	logger.Info("session opened")

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("read failed", "error", err)
			}
			break
		}
		if msgType != websocket.TextMessage {
			continue
		}

		for _, line := range strings.Split(string(data), "\n") {
			if s.cfg.SkipBlankLines && strings.TrimSpace(line) == "" {
				continue
			}
			answer := sess.Evaluate(line)
			if s.sink != nil {
				if err := s.sink.Write(r.Context(), answer); err != nil {
					logger.Warn("sink write failed", "seq", answer.Seq, "error", err)
				}
			}
			if err := s.reply(conn, answer); err != nil {
				logger.Debug("write failed", "error", err)
				return
			}
		}
	}

	stats := sess.Stats()
	logger.Info("session closed",
		"lines", stats.Lines,
		"answers", stats.Answers,
		"errors", stats.Errors,
	)
}

func (s *Server) reply(conn *websocket.Conn, a model.Answer) error {
	if s.cfg.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	}
	return conn.WriteJSON(Reply{
		Seq:   a.Seq,
		Kind:  a.Kind,
		Text:  a.Text,
		Error: a.ErrorString(),
	})
}
