// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package cipher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "enigma"
	metricsSubsystem = "cipher"
)

// Metrics holds the Prometheus collectors for cipher sessions.
//
// All operations are thread-safe via Prometheus's internal locking.
type Metrics struct {
	// SessionsTotal counts sessions by outcome (success, rejected).
	SessionsTotal *prometheus.CounterVec

	// SymbolsTotal counts processed characters by kind (enciphered, pass_through).
	SymbolsTotal *prometheus.CounterVec

	// ValidationFailuresTotal counts rejected configurations by reason (ErrorCode).
	ValidationFailuresTotal *prometheus.CounterVec

	// SessionDurationSeconds measures the time to validate and transform one text.
	SessionDurationSeconds prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SessionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "sessions_total",
			Help:      "Cipher sessions by outcome",
		}, []string{"outcome"}),

		SymbolsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "symbols_total",
			Help:      "Characters processed by kind",
		}, []string{"kind"}),

		ValidationFailuresTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "validation_failures_total",
			Help:      "Rejected machine configurations by reason",
		}, []string{"reason"}),

		SessionDurationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "session_duration_seconds",
			Help:      "Time to validate and transform one text",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		}),
	}
}

const (
	outcomeSuccess  = "success"
	outcomeRejected = "rejected"

	kindEnciphered  = "enciphered"
	kindPassThrough = "pass_through"
)

func (m *Metrics) recordSuccess(enciphered, passThrough int, seconds float64) {
	if m == nil {
		return
	}
	m.SessionsTotal.WithLabelValues(outcomeSuccess).Inc()
	m.SymbolsTotal.WithLabelValues(kindEnciphered).Add(float64(enciphered))
	m.SymbolsTotal.WithLabelValues(kindPassThrough).Add(float64(passThrough))
	m.SessionDurationSeconds.Observe(seconds)
}

func (m *Metrics) recordRejected(code ErrorCode) {
	if m == nil {
		return
	}
	m.SessionsTotal.WithLabelValues(outcomeRejected).Inc()
	m.ValidationFailuresTotal.WithLabelValues(string(code)).Inc()
}
