// Package server exposes the diagram pipeline over HTTP.
//
// # Routes
//
//	POST /v1/diagrams?format=json|yaml|dot|svg   body: diagram text
//	POST /v1/diagrams/handles                    body: diagram text
//	GET  /healthz
//	GET  /version
//	GET  /metrics                                when a metrics handler is set
//
// Diagram routes can be rate limited; refused requests get 429 with a
// Retry-After header.
//
// Requests are independent: each runs its own pipeline and shares only the
// artifact cache.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	uerrors "github.com/matzehuels/umlgraph/pkg/errors"
	"github.com/matzehuels/umlgraph/pkg/pipeline"
)

// Config configures a Server.
type Config struct {
	Addr         string
	MaxBodyBytes int
	// DefaultFormat applies when a request has no format parameter.
	DefaultFormat string
	// TTL is how long rendered artifacts stay cached. Zero uses the
	// pipeline default.
	TTL time.Duration
	// Metrics, if set, is mounted at /metrics.
	Metrics http.Handler
	// ShutdownTimeout bounds graceful shutdown. Zero means 10s.
	ShutdownTimeout time.Duration

	// RateLimit caps diagram requests per second across all clients. Zero
	// disables limiting. Burst defaults to 1 when limiting is on.
	RateLimit float64
	Burst     int
}

// Server is the HTTP API.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server that runs diagrams through runner.
func New(cfg Config, runner *pipeline.Runner, logger *log.Logger) *Server {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = uerrors.DefaultMaxSourceBytes
	}
	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = pipeline.DefaultFormat
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{cfg: cfg, runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(s.recoverer)
	r.Use(instrument)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	if s.cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.cfg.Metrics)
	}

	r.Route("/v1/diagrams", func(r chi.Router) {
		if s.cfg.RateLimit > 0 {
			r.Use(rateLimit(rate.NewLimiter(rate.Limit(s.cfg.RateLimit), max(s.cfg.Burst, 1))))
		}
		r.Use(bodyLimit(int64(s.cfg.MaxBodyBytes)))
		r.Post("/", s.handleDiagram)
		r.Post("/handles", s.handleHandles)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
