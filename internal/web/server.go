// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"contact-splitter/internal/config"
	"contact-splitter/internal/metrics"

	// Import formatters to register them
	_ "contact-splitter/internal/formatters/csv"
	_ "contact-splitter/internal/formatters/json"
	_ "contact-splitter/internal/formatters/text"
	_ "contact-splitter/internal/formatters/yaml"
)

// Options configures a WebServer. Zero values select defaults.
type Options struct {
	Server config.ServerConfig
	// Gatherer backs GET /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
	// Metrics records endpoint latency. May be nil.
	Metrics *metrics.Metrics
	Workers int
	Logger  *slog.Logger
}

// WebServer represents the web server instance
type WebServer struct {
	opts     Options
	handler  *Handler
	router   chi.Router
	server   *http.Server
	listener net.Listener
	log      *slog.Logger
}

// NewWebServer creates a new web server instance
func NewWebServer(service Service, opts Options) *WebServer {
	defaults := config.Default().Server
	if opts.Server.Addr == "" {
		opts.Server.Addr = defaults.Addr
	}
	if opts.Server.ReadTimeout <= 0 {
		opts.Server.ReadTimeout = defaults.ReadTimeout
	}
	if opts.Server.WriteTimeout <= 0 {
		opts.Server.WriteTimeout = defaults.WriteTimeout
	}
	if opts.Server.ShutdownTimeout <= 0 {
		opts.Server.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	logger := opts.Logger.With("component", "web")

	ws := &WebServer{
		opts:    opts,
		handler: NewHandler(service, opts.Workers, logger),
		log:     logger,
	}
	ws.router = ws.setupRoutes()
	return ws
}

// Handler returns the HTTP handler serving all routes
func (ws *WebServer) Handler() http.Handler {
	return ws.router
}

// setupRoutes configures the router and its middleware chain
func (ws *WebServer) setupRoutes() chi.Router {
	r := chi.NewRouter()
	r.Use(Recovery(ws.log))
	r.Use(RequestID)
	r.Use(Logger(ws.log))
	r.Use(Latency(ws.opts.Metrics))
	r.Use(ContentTypeJSON)

	r.Get("/health", ws.handler.HandleHealth)
	r.Get("/formats", ws.handler.HandleFormats)
	ws.handler.Register(r)

	if ws.opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(ws.opts.Gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

// createSecureServer creates an HTTP server with timeouts
func (ws *WebServer) createSecureServer() *http.Server {
	return &http.Server{
		Addr:              ws.opts.Server.Addr,
		Handler:           ws.router,
		ReadHeaderTimeout: ws.opts.Server.ReadTimeout,
		ReadTimeout:       ws.opts.Server.ReadTimeout,
		WriteTimeout:      ws.opts.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          slog.NewLogLogger(ws.log.Handler(), slog.LevelWarn),
	}
}

// Listen binds the configured address. It is separate from Serve so callers
// can learn the bound address before serving.
func (ws *WebServer) Listen() (net.Addr, error) {
	listener, err := net.Listen("tcp", ws.opts.Server.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", ws.opts.Server.Addr, err)
	}
	ws.listener = listener
	ws.server = ws.createSecureServer()
	return listener.Addr(), nil
}

// Serve serves requests until ctx is canceled, then shuts down gracefully.
// Listen is called first when it has not been.
func (ws *WebServer) Serve(ctx context.Context) error {
	if ws.listener == nil {
		if _, err := ws.Listen(); err != nil {
			return err
		}
	}

	ws.log.Info("contact-splitter API started", slog.String("addr", ws.listener.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- ws.server.Serve(ws.listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ws.opts.Server.ShutdownTimeout)
	defer cancel()

	ws.log.Info("shutting down API server")
	if err := ws.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop closes the server immediately
func (ws *WebServer) Stop() error {
	if ws.server != nil {
		return ws.server.Close()
	}
	return nil
}
