package inspect

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/attrmerge/pkg/stream"
	"github.com/vango-dev/attrmerge/pkg/tree"
)

// ServerConfig configures the inspector server.
type ServerConfig struct {
	// Addr is the listen address (default: ":7070").
	Addr string

	// Logger is the structured logger (default: slog.Default()).
	Logger *slog.Logger

	// Metrics records patch and client activity. Optional.
	Metrics *Metrics

	// TraceOptions configure the tracing middleware.
	TraceOptions []TraceOption

	// WriteTimeout bounds each WebSocket write (default: 10s).
	WriteTimeout time.Duration
}

// ServerOption configures the inspector server.
type ServerOption func(*ServerConfig)

// WithAddr sets the listen address.
func WithAddr(addr string) ServerOption {
	return func(c *ServerConfig) { c.Addr = addr }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(c *ServerConfig) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(m *Metrics) ServerOption {
	return func(c *ServerConfig) { c.Metrics = m }
}

// WithTracing passes options to the tracing middleware.
func WithTracing(opts ...TraceOption) ServerOption {
	return func(c *ServerConfig) { c.TraceOptions = opts }
}

// Server exposes a finalized tree over HTTP: resolved snapshots as JSON and
// a WebSocket stream of live attribute patches. Broadcast satisfies
// rebind.Sink, so a Binder can feed connected clients directly.
type Server struct {
	config ServerConfig
	logger *slog.Logger
	root   *tree.Node

	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	seq     uint64
}

// NewServer creates an inspector over the given finalized tree.
func NewServer(root *tree.Node, opts ...ServerOption) *Server {
	config := ServerConfig{
		Addr:         ":7070",
		Logger:       slog.Default(),
		WriteTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(&config)
	}

	return &Server{
		config: config,
		logger: config.Logger.With("component", "inspect"),
		root:   root,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Handler returns the inspector's HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(Tracing(s.config.TraceOptions...))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/snapshot", s.handleSnapshot)
	r.Get("/live", s.handleLive)

	return r
}

// ListenAndServe serves the inspector until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.config.Addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("inspector listening", "addr", s.config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.closeClients()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// nodeView is the JSON shape of one tree node in the snapshot dump.
type nodeView struct {
	ID       string            `json:"id"`
	Kind     string            `json:"kind"`
	Tag      string            `json:"tag,omitempty"`
	Name     string            `json:"name,omitempty"`
	Boundary string            `json:"boundary,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Class    string            `json:"class,omitempty"`
	Style    string            `json:"style,omitempty"`
	Handlers []string          `json:"handlers,omitempty"`
	Dynamic  int               `json:"dynamic,omitempty"`
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	var views []nodeView
	tree.Walk(s.root, func(n *tree.Node) {
		v := nodeView{
			ID:   n.ID,
			Kind: n.Kind.String(),
			Tag:  n.Tag,
			Name: n.Name,
		}
		if n.Kind != tree.KindElement {
			v.Boundary = n.Boundary.String()
		}
		if snap := n.Snapshot(); snap != nil {
			v.Attrs = snap.Attrs
			v.Class = snap.ClassAttr()
			v.Style = snap.StyleAttr()
			for event := range snap.Handlers {
				v.Handlers = append(v.Handlers, event)
			}
			v.Dynamic = len(snap.Dynamic)
		}
		views = append(views, v)
	})

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(views); err != nil {
		s.logger.Error("snapshot encode error", "error", err)
	}
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade error", "error", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()
	if s.config.Metrics != nil {
		s.config.Metrics.ClientConnected()
	}
	s.logger.Info("inspector client connected", "remote", conn.RemoteAddr())

	// Read loop only detects closure; the stream is one-way.
	go func() {
		defer s.dropClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err,
					websocket.CloseGoingAway,
					websocket.CloseAbnormalClosure,
					websocket.CloseNormalClosure) {
					s.logger.Error("read error", "error", err)
				}
				return
			}
		}
	}()
}

// Broadcast frames a patch and sends it to every connected client. It has
// the rebind.Sink signature.
func (s *Server) Broadcast(p stream.Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	frame := &stream.Frame{Seq: s.seq, Patches: []stream.Patch{p}}
	data, err := frame.Encode()
	if err != nil {
		s.logger.Error("frame encode error", "error", err)
		return
	}

	for conn := range s.clients {
		conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.logger.Error("write error", "error", err, "remote", conn.RemoteAddr())
			conn.Close()
			delete(s.clients, conn)
			if s.config.Metrics != nil {
				s.config.Metrics.ClientDisconnected()
			}
		}
	}
	if s.config.Metrics != nil {
		s.config.Metrics.RecordPatch()
	}
}

func (s *Server) dropClient(conn *websocket.Conn) {
	conn.Close()
	s.mu.Lock()
	_, present := s.clients[conn]
	delete(s.clients, conn)
	s.mu.Unlock()
	if present && s.config.Metrics != nil {
		s.config.Metrics.ClientDisconnected()
	}
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		conn.Close()
		delete(s.clients, conn)
	}
}
