// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package cipher runs enigma sessions on behalf of the CLI and HTTP service.
//
// A Service validates a request, builds a fresh machine, transforms the text,
// and reports the session through logs, Prometheus metrics, and an
// OpenTelemetry span. Plaintext and plugboard pairs never leave the session:
// logs and spans carry only counts, rotor labels, and positions.
//
// A Service is safe for concurrent use because every call gets its own
// enigma.Machine.
package cipher

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AleutianAI/AleutianEnigma/pkg/enigma"
	"github.com/AleutianAI/AleutianEnigma/pkg/logging"
)

const tracerName = "github.com/AleutianAI/AleutianEnigma/internal/cipher"

// =============================================================================
// Types
// =============================================================================

// Options configures a Service. Zero fields get working defaults: a no-op
// logger, unregistered metrics, and the global tracer.
type Options struct {
	Logger  *logging.Logger
	Metrics *Metrics
	Tracer  trace.Tracer
}

// Request is one text to transform with its machine settings.
type Request struct {
	// Text is the message. Letters are enciphered, everything else passes through.
	Text string

	// Rotors holds three selectors (id, Roman name, or wiring).
	// Empty selects rotors I, II, III.
	Rotors []string

	// Position is the 1-based starting dial of each rotor.
	Position enigma.Position

	// Plugboard is the pair spec, e.g. "PICTURES".
	Plugboard string
}

// Result is the outcome of one session.
type Result struct {
	SessionID     string
	Output        string
	Enciphered    int
	PassThrough   int
	Rotors        []string
	FinalPosition enigma.Position
}

// RoundTripResult pairs an encryption with the decryption of its output.
type RoundTripResult struct {
	Encrypted *Result
	Decrypted *Result

	// Match reports whether the decryption equals the upper-cased input.
	Match bool
}

// Service runs cipher sessions.
type Service struct {
	logger  *logging.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

// New creates a Service.
func New(opts Options) *Service {
	s := &Service{
		logger:  opts.Logger,
		metrics: opts.Metrics,
		tracer:  opts.Tracer,
	}
	if s.logger == nil {
		s.logger = logging.Nop()
	}
	if s.metrics == nil {
		s.metrics = NewMetrics(nil)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	return s
}

// =============================================================================
// Operations
// =============================================================================

// Settings resolves the request's rotor selectors and returns the machine
// settings it describes. It does not validate positions or the plugboard.
func (r Request) Settings() (enigma.Settings, error) {
	settings := enigma.Settings{
		Position:  r.Position,
		Plugboard: r.Plugboard,
	}
	if len(r.Rotors) == 0 {
		return settings, nil
	}
	sel, err := enigma.ParseSelection(r.Rotors)
	if err != nil {
		return settings, err
	}
	settings.Rotors = sel
	return settings, nil
}

// Transform validates req and transforms its text with a fresh machine.
//
// All validation happens before any character is processed, so a failed
// call returns no partial output.
func (s *Service) Transform(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sessionID := uuid.New().String()
	_, span := s.tracer.Start(ctx, "cipher.transform",
		trace.WithAttributes(
			attribute.String("enigma.session_id", sessionID),
			attribute.Int("enigma.text_runes", utf8.RuneCountInString(req.Text)),
		),
	)
	defer span.End()

	logger := s.logger.With("session_id", sessionID)
	start := time.Now()

	machine, err := s.build(req)
	if err != nil {
		code := Code(err)
		s.metrics.recordRejected(code)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(code))
		logger.Warn("session rejected", "reason", string(code), "error", err.Error())
		return nil, err
	}

	session := machine.Session()
	labels := session.Rotors.Labels()
	span.SetAttributes(
		attribute.StringSlice("enigma.rotors", labels),
		attribute.IntSlice("enigma.position", session.Position[:]),
		attribute.Int("enigma.plugboard_pairs", len(session.Plugboard.Pairs())),
	)
	logger.Debug("session started",
		"rotors", strings.Join(labels, ","),
		"position", fmt.Sprint(session.Position),
		"plugboard_pairs", len(session.Plugboard.Pairs()),
	)

	output := machine.Transform(req.Text)
	enciphered := machine.Processed()
	passThrough := utf8.RuneCountInString(req.Text) - enciphered
	elapsed := time.Since(start)

	s.metrics.recordSuccess(enciphered, passThrough, elapsed.Seconds())
	span.SetAttributes(
		attribute.Int("enigma.enciphered", enciphered),
		attribute.Int("enigma.pass_through", passThrough),
	)
	span.SetStatus(codes.Ok, "")
	logger.Info("session finished",
		"enciphered", enciphered,
		"pass_through", passThrough,
		"duration_ms", elapsed.Milliseconds(),
	)

	return &Result{
		SessionID:     sessionID,
		Output:        output,
		Enciphered:    enciphered,
		PassThrough:   passThrough,
		Rotors:        labels,
		FinalPosition: machine.Offsets(),
	}, nil
}

// RoundTrip encrypts req.Text and then decrypts the ciphertext with the same
// settings. Reciprocity means the decryption should equal the upper-cased
// input.
func (s *Service) RoundTrip(ctx context.Context, req Request) (*RoundTripResult, error) {
	encrypted, err := s.Transform(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("encrypt: %w", err)
	}

	back := req
	back.Text = encrypted.Output
	decrypted, err := s.Transform(ctx, back)
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}

	return &RoundTripResult{
		Encrypted: encrypted,
		Decrypted: decrypted,
		Match:     decrypted.Output == UpperASCII(req.Text),
	}, nil
}

func (s *Service) build(req Request) (*enigma.Machine, error) {
	settings, err := req.Settings()
	if err != nil {
		return nil, err
	}
	return enigma.NewMachine(settings)
}

// UpperASCII upper-cases a-z only, matching what the machine does to
// letters. Other characters, including non-ASCII letters, are unchanged.
func UpperASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' {
			return r - 'a' + 'A'
		}
		return r
	}, s)
}
