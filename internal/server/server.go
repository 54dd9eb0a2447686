// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package server exposes the cipher service as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/time/rate"

	"github.com/AleutianAI/AleutianEnigma/internal/cipher"
	"github.com/AleutianAI/AleutianEnigma/pkg/logging"
)

// DefaultPort is the port used when Config.Port is zero.
const DefaultPort = 12310

// Config configures the HTTP service.
type Config struct {
	// Host to bind. Empty binds all interfaces.
	Host string

	// Port to listen on. Default: DefaultPort
	Port int

	// RateLimit is the sustained requests per second accepted on /v1.
	// Zero disables limiting.
	RateLimit float64

	// Burst is the token bucket size. Default: 2 * RateLimit, at least 1
	Burst int

	// ServiceName labels server spans. Default: "enigma-server"
	ServiceName string

	// ShutdownTimeout bounds graceful shutdown. Default: 5s
	ShutdownTimeout time.Duration

	// Logger receives request logs. Default: logging.Nop()
	Logger *logging.Logger
}

// Server serves the cipher API.
type Server struct {
	config   Config
	cipher   *cipher.Service
	registry *prometheus.Registry
	router   *gin.Engine
	logger   *logging.Logger
}

// New builds a Server. reg is served on /metrics; nil serves the default
// Prometheus gatherer.
func New(config Config, svc *cipher.Service, reg *prometheus.Registry) *Server {
	if config.Port == 0 {
		config.Port = DefaultPort
	}
	if config.ServiceName == "" {
		config.ServiceName = "enigma-server"
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = 5 * time.Second
	}
	if config.Burst <= 0 {
		config.Burst = max(1, int(2*config.RateLimit))
	}
	if config.Logger == nil {
		config.Logger = logging.Nop()
	}

	s := &Server{
		config:   config,
		cipher:   svc,
		registry: reg,
		logger:   config.Logger,
	}
	s.router = s.setupRouter()
	return s
}

// Router returns the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

func (s *Server) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(s.config.ServiceName))
	router.Use(RequestLogger(s.logger))

	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if s.registry != nil {
		gatherer = s.registry
	}

	router.GET("/health", HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := router.Group("/v1")
	if s.config.RateLimit > 0 {
		v1.Use(RateLimit(rate.NewLimiter(rate.Limit(s.config.RateLimit), s.config.Burst)))
	}
	{
		v1.GET("/rotors", ListRotors)
		v1.POST("/transform", HandleTransform(s.cipher))
		v1.POST("/roundtrip", HandleRoundTrip(s.cipher))
	}

	return router
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
