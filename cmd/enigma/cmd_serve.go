// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/AleutianAI/AleutianEnigma/internal/server"
	"github.com/AleutianAI/AleutianEnigma/pkg/ux"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		host          string
		port          int
		rateLimit     float64
		burst         int
		traceExporter string
		otlpEndpoint  string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON HTTP API",
		Long: `Serves the cipher over HTTP:

  GET  /health          liveness
  GET  /metrics         Prometheus metrics
  GET  /v1/rotors       rotor catalog
  POST /v1/transform    {"text","rotors","position","plugboard"}
  POST /v1/roundtrip    encrypt, then decrypt with the same settings`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Server
			if cmd.Flags().Changed("host") {
				cfg.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("rate-limit") {
				cfg.RateLimit = rateLimit
			}
			if cmd.Flags().Changed("burst") {
				cfg.Burst = burst
			}
			if cmd.Flags().Changed("trace-exporter") {
				cfg.TraceExporter = traceExporter
			}
			if cmd.Flags().Changed("otlp-endpoint") {
				cfg.OTLPEndpoint = otlpEndpoint
			}

			shutdown, err := initTracing(cmd.Context(), tracingConfig{
				Exporter:     cfg.TraceExporter,
				OTLPEndpoint: cfg.OTLPEndpoint,
				OTLPInsecure: cfg.OTLPInsecure,
			}, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					a.logger.Error("failed to shut down tracing", "error", err)
				}
			}()
			a.tracer = otel.Tracer("github.com/AleutianAI/AleutianEnigma/internal/cipher")

			a.registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			srv := server.New(server.Config{
				Host:        cfg.Host,
				Port:        cfg.Port,
				RateLimit:   cfg.RateLimit,
				Burst:       cfg.Burst,
				ServiceName: serviceName + "-server",
				Logger:      a.logger,
			}, a.service(), a.registry)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ux.Success(cmd.OutOrStdout(), "Serving on "+srv.Addr())
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "Interface to bind (default from config: all)")
	cmd.Flags().IntVar(&port, "port", server.DefaultPort, "Port to listen on")
	cmd.Flags().Float64Var(&rateLimit, "rate-limit", 0, "Requests per second on /v1, 0 disables (default from config)")
	cmd.Flags().IntVar(&burst, "burst", 0, "Rate limiter burst (default from config)")
	cmd.Flags().StringVar(&traceExporter, "trace-exporter", "", "Span exporter: none, stdout, or otlp (default from config)")
	cmd.Flags().StringVar(&otlpEndpoint, "otlp-endpoint", "", "OTLP gRPC collector host:port (default from config)")
	return cmd
}
