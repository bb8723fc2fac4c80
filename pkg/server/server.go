// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	"github.com/odin-ai/odin-monitor/pkg/logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	// HealthPath always reports healthy while the process is serving.
	HealthPath = "/api/health"
	// ReadyPath reports 503 until Start is called and after Shutdown.
	ReadyPath = "/ready"
	// MetricsPath exposes the default prometheus registry.
	MetricsPath = "/metrics"
)

// Option configures a Server.
type Option func(*Server)

// WithName sets the server name reported in logs.
func WithName(name string) Option {
	return func(s *Server) {
		s.config.Name = name
	}
}

// WithVersion sets the server version reported in logs.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.config.Version = version
	}
}

// WithHandler adds handlers to the server. Patterns follow http.ServeMux
// syntax, including method prefixes such as "GET /api/status".
func WithHandler(handlers map[string]http.HandlerFunc) Option {
	return func(s *Server) {
		if s.config.Handlers == nil {
			s.config.Handlers = make(map[string]http.HandlerFunc, len(handlers))
		}
		for pattern, h := range handlers {
			s.config.Handlers[pattern] = h
		}
	}
}

// WithConfig replaces the server configuration. Handlers already added with
// WithHandler are carried over when the new config has none.
func WithConfig(cfg *Config) Option {
	return func(s *Server) {
		if cfg == nil {
			return
		}
		if cfg.Handlers == nil {
			cfg.Handlers = s.config.Handlers
		}
		s.config = cfg
	}
}

// WithLogger sets the logger used for lifecycle and request logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Server represents the HTTP server
type Server struct {
	config      *Config
	httpServer  *http.Server
	rateLimiter *rate.Limiter
	logger      *slog.Logger
	mu          sync.RWMutex
	ready       bool
	notReady    string
}

// New creates a new server instance.
func New(opts ...Option) *Server {
	s := &Server{
		config:   NewConfig(),
		logger:   slog.Default(),
		notReady: ReasonNotStarted,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.rateLimiter = rate.NewLimiter(s.config.RateLimit, s.config.RateLimitBurst)

	s.httpServer = &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s.setupRoutes(),
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
		ErrorLog:          logging.NewLogLogger(s.logger, slog.LevelError),
	}

	return s
}

// Handler returns the fully wired root handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// System endpoints (no rate limiting)
	mux.HandleFunc(HealthPath, s.handleHealth)
	mux.HandleFunc(ReadyPath, s.handleReady)
	mux.Handle(MetricsPath, promhttp.Handler())

	patterns := make([]string, 0, len(s.config.Handlers))
	for pattern := range s.config.Handlers {
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)

	for _, pattern := range patterns {
		mux.HandleFunc(pattern, s.withMiddleware(s.config.Handlers[pattern]))
		s.logger.Debug("route registered", "pattern", pattern)
	}

	return mux
}

// setReady records whether the server accepts traffic. reason is reported
// by the readiness endpoint while not ready.
func (s *Server) setReady(ready bool, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
	s.notReady = reason
}

func (s *Server) readiness() (bool, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready, s.notReady
}

// Start serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.setReady(true, "")

	s.logger.Info("server listening",
		"name", s.config.Name,
		"version", s.config.Version,
		"address", s.httpServer.Addr,
	)

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errChan:
		s.setReady(false, fmt.Sprintf("%s: %v", ReasonListenFailed, err))
		return err
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.setReady(false, ReasonShuttingDown)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down server", "timeout", s.config.ShutdownTimeout)
	return s.httpServer.Shutdown(shutdownCtx)
}

// Run starts the server and blocks until SIGINT/SIGTERM or ctx cancellation.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.logger.Info("server config",
		"address", s.httpServer.Addr,
		"rateLimit", float64(s.config.RateLimit),
		"rateLimitBurst", s.config.RateLimitBurst,
		"readTimeout", s.config.ReadTimeout,
		"writeTimeout", s.config.WriteTimeout,
		"idleTimeout", s.config.IdleTimeout,
		"shutdownTimeout", s.config.ShutdownTimeout,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Start(gctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	s.logger.Info("server stopped gracefully")
	return nil
}
