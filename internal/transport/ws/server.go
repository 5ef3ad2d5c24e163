package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"shapenav/internal/nav"
	"shapenav/internal/shape"
)

const (
	DefaultFPS        = 60
	DefaultFrameEvery = 2 // frames sent at half the tick rate
)

type Options struct {
	Config nav.Config
	Faces  *shape.Registry
	FPS    int
	// FrameEvery sends one frame message per this many ticks.
	FrameEvery int
	Logger     *log.Logger
}

// Server upgrades /ws requests to navigation sessions. Each connection gets
// its own Navigator and Loop.
type Server struct {
	opts     Options
	upgrader websocket.Upgrader
	mux      *http.ServeMux
	logger   *log.Logger

	nextID   atomic.Uint64
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewServer(opts Options) (*Server, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if opts.Faces == nil {
		opts.Faces = shape.DefaultRegistry()
	}
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	if opts.FrameEvery <= 0 {
		opts.FrameEvery = DefaultFrameEvery
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	s := &Server{
		opts: opts,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		mux:      http.NewServeMux(),
		logger:   opts.Logger,
		sessions: make(map[string]*Session),
	}
	s.mux.HandleFunc("/ws", s.HandleWS)
	s.mux.HandleFunc("/healthz", s.handleHealth)
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Sessions returns the number of open connections.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"sessions": s.Sessions(),
	})
}

// HandleWS runs one session until the client disconnects or the request
// context ends.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("[ws] upgrade error: %v", err)
		return
	}

	id := fmt.Sprintf("s-%d", s.nextID.Add(1))
	width, height := viewportFromQuery(r)

	sess, err := newSession(id, NewSafeWriter(conn), s.opts, width, height)
	if err != nil {
		s.logger.Printf("[ws] %s: %v", id, err)
		conn.Close()
		return
	}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
	}()

	s.logger.Printf("[ws] %s connected from %s", id, conn.RemoteAddr())
	err = sess.run(r.Context())
	s.logger.Printf("[ws] %s closed: %v", id, err)
}

func viewportFromQuery(r *http.Request) (int, int) {
	w, errW := strconv.Atoi(r.URL.Query().Get("w"))
	h, errH := strconv.Atoi(r.URL.Query().Get("h"))
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 1280, 720
	}
	return w, h
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Printf("[ws] listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
