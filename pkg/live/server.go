package live

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/reconcile"
)

// DefaultReadLimit is the default maximum size of one client message.
const DefaultReadLimit = 1 << 20

// ServerConfig configures a Server.
type ServerConfig struct {
	// Engine is shared by all sessions. Default: reconcile.New with Logger
	// and Metrics.
	Engine *reconcile.Engine

	// Logger receives server and session logs. Default: slog.Default().
	Logger *slog.Logger

	// Metrics records the live session gauge. Optional.
	Metrics *reconcile.Metrics

	// Gatherer backs GET /metrics. The route is omitted when nil.
	Gatherer prometheus.Gatherer

	// ReadLimit is the maximum size of one client message in bytes.
	ReadLimit int64

	// CheckOrigin validates the websocket Origin header. Default: same host.
	CheckOrigin func(r *http.Request) bool
}

// Server manages live sessions.
type Server struct {
	config   ServerConfig
	engine   *reconcile.Engine
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu       sync.RWMutex
	sessions map[*websocket.Conn]*Session
	nextID   atomic.Uint64
}

// NewServer creates a Server.
func NewServer(config ServerConfig) *Server {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.ReadLimit <= 0 {
		config.ReadLimit = DefaultReadLimit
	}
	engine := config.Engine
	if engine == nil {
		engine = reconcile.New(
			reconcile.WithLogger(config.Logger),
			reconcile.WithMetrics(config.Metrics),
		)
	}
	return &Server{
		config: config,
		engine: engine,
		logger: config.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     config.CheckOrigin,
		},
		sessions: make(map[*websocket.Conn]*Session),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Post("/diff", s.handleDiff)
	r.Get("/live", s.HandleWebSocket)
	if s.config.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// HandleWebSocket upgrades the request and serves one session until the
// client disconnects.
func (s *Server) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	enc := Encoding(req.URL.Query().Get("encoding"))
	switch enc {
	case "":
		enc = EncodingJSON
	case EncodingJSON, EncodingBinary:
	default:
		http.Error(w, "unknown encoding "+strconv.Quote(string(enc)), http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(s.config.ReadLimit)

	id := "s" + strconv.FormatUint(s.nextID.Add(1), 10)
	session := NewSession(id, s.engine, s.logger)

	s.mu.Lock()
	s.sessions[conn] = session
	s.mu.Unlock()
	s.config.Metrics.SessionOpened()
	s.logger.Info("session opened", "session", id, "remote", req.RemoteAddr, "encoding", enc)

	err = session.serve(req.Context(), conn, enc)

	s.mu.Lock()
	delete(s.sessions, conn)
	s.mu.Unlock()
	conn.Close()
	s.config.Metrics.SessionClosed()
	s.logger.Info("session closed", "session", id, "error", err)
}

func (s *Server) handleDiff(w http.ResponseWriter, req *http.Request) {
	var body DiffRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, req.Body, s.config.ReadLimit))
	if err := dec.Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(errors.New("E402").Wrap(err)))
		return
	}

	session := NewSession("diff", s.engine, s.logger)
	if msg := session.Handle(req.Context(), ClientMessage{Type: TypeRender, HTML: body.Old}); msg.Error != nil {
		writeJSON(w, http.StatusUnprocessableEntity, msg.Error)
		return
	}
	msg := session.Handle(req.Context(), ClientMessage{Type: TypeRender, HTML: body.New})
	if msg.Error != nil {
		writeJSON(w, http.StatusUnprocessableEntity, msg.Error)
		return
	}
	writeJSON(w, http.StatusOK, DiffResponse{
		Entries: msg.Entries,
		Records: msg.Records,
		HTML:    msg.HTML,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// SessionCount returns the number of open sessions.
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close closes all session connections.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for conn := range s.sessions {
		conn.Close()
		delete(s.sessions, conn)
	}
}

