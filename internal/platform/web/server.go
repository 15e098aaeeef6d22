// Package web serves the celebration page over HTTP and bridges its event
// layer to a mini-game session over a websocket. Every connection hosts its
// own session; nothing is shared between visitors.
package web

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/celebration/internal/config"
	"github.com/vovakirdan/celebration/internal/diag"
	"github.com/vovakirdan/celebration/internal/minigame"
	"github.com/vovakirdan/celebration/internal/sched"
)

//go:embed static/index.html
var indexHTML []byte

// Config holds configuration for the web server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// Game configures every hosted session.
	Game config.MinigameConfig

	// Seed fixes the RNG seed of every session; 0 picks one per connection.
	Seed int64

	PingInterval time.Duration
	PongWait     time.Duration
	WriteWait    time.Duration
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:      ":8080",
		Game:         config.DefaultMinigameConfig(),
		PingInterval: 25 * time.Second,
		PongWait:     60 * time.Second,
		WriteWait:    10 * time.Second,
	}
}

// Server serves the page and its websocket endpoint.
type Server struct {
	config   Config
	recorder diag.Recorder
	logger   *log.Logger
	upgrader websocket.Upgrader
	http     *http.Server
}

// NewServer creates a web server. Session lifecycle events of every
// connection go to recorder.
func NewServer(cfg Config, recorder diag.Recorder, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "web",
		})
	}
	if recorder == nil {
		recorder = diag.Discard
	}

	s := &Server{
		config:   cfg,
		recorder: recorder,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	s.http = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP routes of the page.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /ws", s.handleWS)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

// handleWS upgrades the request and runs a fresh session until the page
// goes away. Missing or non-positive w/h give a disabled session.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	seed := s.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	clock := sched.New(time.Now())

	var area *minigame.Area
	var playArea minigame.PlayArea
	if width, height, ok := parseDims(r); ok {
		area = minigame.NewArea(width, height)
		playArea = area
	}

	session := minigame.NewSession(s.config.Game, clock, playArea, minigame.Options{
		ID:       uuid.NewString(),
		Seed:     seed,
		Recorder: s.recorder,
	})

	logger := s.logger.With("session", session.ID(), "remote", r.RemoteAddr)
	logger.Info("connection opened")

	c := &connection{
		conn:    conn,
		session: session,
		clock:   clock,
		area:    area,
		config:  s.config,
		logger:  logger,
	}
	c.run(r.Context())

	logger.Info("connection closed")
}

func parseDims(r *http.Request) (int, int, bool) {
	q := r.URL.Query()
	w, errW := strconv.Atoi(q.Get("w"))
	h, errH := strconv.Atoi(q.Get("h"))
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// Serve listens until ctx is cancelled, then shuts the server down.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("web: listen %s: %w", s.config.Address, err)
	}
	s.logger.Info("starting web server", "address", ln.Addr().String())

	// Open websockets end with the server context.
	s.http.BaseContext = func(net.Listener) context.Context { return ctx }

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
