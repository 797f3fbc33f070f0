// Package httpserver wires the conversion service: routes, middleware and
// listener lifecycle.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/mdhtml/internal/config"
	"git.home.luguber.info/inful/mdhtml/internal/convert"
	derrors "git.home.luguber.info/inful/mdhtml/internal/errors"
	"git.home.luguber.info/inful/mdhtml/internal/logfields"
	"git.home.luguber.info/inful/mdhtml/internal/metrics"
	"git.home.luguber.info/inful/mdhtml/internal/server/handlers"
	smw "git.home.luguber.info/inful/mdhtml/internal/server/middleware"
)

const shutdownTimeout = 10 * time.Second

// Server serves POST /convert, GET /healthz and, when enabled, GET /metrics.
type Server struct {
	cfg      config.ServerConfig
	logger   *slog.Logger
	handler  http.Handler

	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
}

// New constructs the server. When cfg.Metrics is set, a Prometheus registry
// is created, the converter records into it and /metrics serves it.
func New(cfg config.ServerConfig, conv *convert.Converter, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	mux := http.NewServeMux()
	if cfg.Metrics {
		reg := prom.NewRegistry()
		pr := metrics.NewPrometheusRecorder(reg)
		recorder = pr
		conv = conv.WithRecorder(pr)
		mux.Handle("/metrics", metrics.HTTPHandler(reg))
	}

	convertHandlers := handlers.NewConvertHandlers(conv.WithLogger(logger), cfg.MaxBodyBytes, logger)
	monitoringHandlers := handlers.NewMonitoringHandlers(time.Now(), logger)
	mux.HandleFunc("/convert", convertHandlers.HandleConvert)
	mux.HandleFunc("/healthz", monitoringHandlers.HandleHealthCheck)

	chain := smw.Chain(logger, derrors.NewHTTPErrorAdapter(logger), recorder, "/convert", "/healthz", "/metrics")
	return &Server{cfg: cfg, logger: logger, handler: chain(mux)}
}

// Handler returns the fully wrapped handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Start binds the configured address and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return derrors.Wrap(err, derrors.CategoryIO, derrors.SeverityFatal, "http startup failed").
			WithContext("addr", s.cfg.Addr)
	}
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	s.mu.Lock()
	s.listener, s.srv = ln, srv
	s.mu.Unlock()

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", logfields.Error(err))
		}
	}()
	s.logger.Info("HTTP server started", logfields.Addr(ln.Addr().String()))
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	s.logger.Info("HTTP server stopped")
	return nil
}

// Run starts the server and blocks until ctx is canceled, then shuts down.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return s.Stop(shutdownCtx)
}
