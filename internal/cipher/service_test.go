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
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/AleutianAI/AleutianEnigma/pkg/enigma"
	"github.com/AleutianAI/AleutianEnigma/pkg/logging"
)

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

type fixture struct {
	svc      *Service
	metrics  *Metrics
	recorder *tracetest.SpanRecorder
	logs     *logging.BufferedExporter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	logs := logging.NewBufferedExporter()
	logger := logging.New(logging.Config{
		Level:    logging.LevelDebug,
		Output:   io.Discard,
		Exporter: logs,
	})

	metrics := NewMetrics(prometheus.NewRegistry())

	return &fixture{
		svc: New(Options{
			Logger:  logger,
			Metrics: metrics,
			Tracer:  tp.Tracer("test"),
		}),
		metrics:  metrics,
		recorder: recorder,
		logs:     logs,
	}
}

// -----------------------------------------------------------------------------
// Transform Tests
// -----------------------------------------------------------------------------

func TestService_Transform(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want string
	}{
		{
			name: "default rotors",
			req:  Request{Text: "HELLO, WORLD! 123", Position: enigma.Position{1, 1, 1}},
			want: "FGNTZ, QWDBR! 123",
		},
		{
			name: "explicit ids with plugboard",
			req: Request{
				Text:      "HELLO WORLD",
				Rotors:    []string{"1", "2", "3"},
				Position:  enigma.Position{1, 1, 1},
				Plugboard: "PICTURES",
			},
			want: "FPNCZ QWOBU",
		},
		{
			name: "roman names",
			req: Request{
				Text:      "ATTACK AT DAWN",
				Rotors:    []string{"IV", "VII", "IX"},
				Position:  enigma.Position{5, 17, 23},
				Plugboard: "poland",
			},
			want: "SGHPEY IN BYYG",
		},
		{
			name: "wiring selectors",
			req: Request{
				Text:     "H",
				Rotors:   []string{"EGZWVONAHDCLFQMSIPJBYUKXTR", "FOBHMDKEXQNRAULPGSJVTYICZW", "ZJXESIUQLHAVRMDOYGTNFWPBKC"},
				Position: enigma.Position{1, 1, 1},
			},
			want: "F",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			res, err := f.svc.Transform(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Output)
		})
	}
}

func TestService_Transform_Counts(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Transform(context.Background(), Request{
		Text:     "HELLO, WORLD! 123",
		Position: enigma.Position{1, 1, 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 10, res.Enciphered)
	assert.Equal(t, 7, res.PassThrough)
	assert.Equal(t, []string{"I", "II", "III"}, res.Rotors)
	assert.Equal(t, enigma.Position{11, 1, 1}, res.FinalPosition)

	_, err = uuid.Parse(res.SessionID)
	assert.NoError(t, err, "session id should be a uuid")
}

func TestService_Transform_DistinctSessionIDs(t *testing.T) {
	f := newFixture(t)
	req := Request{Text: "A", Position: enigma.Position{1, 1, 1}}

	a, err := f.svc.Transform(context.Background(), req)
	require.NoError(t, err)
	b, err := f.svc.Transform(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, a.SessionID, b.SessionID)
	assert.Equal(t, a.Output, b.Output, "each session starts from the configured position")
}

func TestService_Transform_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		req      Request
		sentinel error
		code     ErrorCode
	}{
		{
			name:     "duplicate rotor",
			req:      Request{Rotors: []string{"1", "1", "3"}, Position: enigma.Position{1, 1, 1}},
			sentinel: enigma.ErrDuplicateRotor,
			code:     CodeDuplicateRotor,
		},
		{
			name:     "position low",
			req:      Request{Position: enigma.Position{0, 1, 1}},
			sentinel: enigma.ErrPositionOutOfRange,
			code:     CodePositionOutOfRange,
		},
		{
			name:     "position high",
			req:      Request{Position: enigma.Position{1, 1, 27}},
			sentinel: enigma.ErrPositionOutOfRange,
			code:     CodePositionOutOfRange,
		},
		{
			name:     "odd plugboard",
			req:      Request{Position: enigma.Position{1, 1, 1}, Plugboard: "ABC"},
			sentinel: enigma.ErrOddPlugboardLength,
			code:     CodeOddPlugboardLength,
		},
		{
			name:     "repeated plugboard letter",
			req:      Request{Position: enigma.Position{1, 1, 1}, Plugboard: "AA"},
			sentinel: enigma.ErrDuplicatePlugboardSymbol,
			code:     CodeDuplicatePlugboardSymbol,
		},
		{
			name:     "digit in plugboard",
			req:      Request{Position: enigma.Position{1, 1, 1}, Plugboard: "A1"},
			sentinel: enigma.ErrInvalidPlugboardSymbol,
			code:     CodeInvalidPlugboardSymbol,
		},
		{
			name:     "unknown rotor",
			req:      Request{Rotors: []string{"1", "2", "10"}, Position: enigma.Position{1, 1, 1}},
			sentinel: enigma.ErrUnknownRotor,
			code:     CodeUnknownRotor,
		},
		{
			name:     "two rotors",
			req:      Request{Rotors: []string{"1", "2"}, Position: enigma.Position{1, 1, 1}},
			sentinel: enigma.ErrUnknownRotor,
			code:     CodeUnknownRotor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			res, err := f.svc.Transform(context.Background(), Request{
				Text:      "HELLO",
				Rotors:    tt.req.Rotors,
				Position:  tt.req.Position,
				Plugboard: tt.req.Plugboard,
			})
			require.Error(t, err)
			assert.Nil(t, res, "no partial output on rejection")
			assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)
			assert.Equal(t, tt.code, Code(err))

			assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SessionsTotal.WithLabelValues(outcomeRejected)))
			assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ValidationFailuresTotal.WithLabelValues(string(tt.code))))
			assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.SessionsTotal.WithLabelValues(outcomeSuccess)))
		})
	}
}

func TestService_Transform_CanceledContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.Transform(ctx, Request{Text: "A", Position: enigma.Position{1, 1, 1}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.recorder.Ended())
}

func TestService_Concurrent(t *testing.T) {
	f := newFixture(t)
	req := Request{
		Text:      "ATTACK AT DAWN",
		Rotors:    []string{"4", "7", "9"},
		Position:  enigma.Position{5, 17, 23},
		Plugboard: "POLAND",
	}

	var wg sync.WaitGroup
	outputs := make([]string, 32)
	for i := range outputs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := f.svc.Transform(context.Background(), req)
			if err == nil {
				outputs[i] = res.Output
			}
		}(i)
	}
	wg.Wait()

	for _, out := range outputs {
		assert.Equal(t, "SGHPEY IN BYYG", out)
	}
	assert.Equal(t, 32.0, testutil.ToFloat64(f.metrics.SessionsTotal.WithLabelValues(outcomeSuccess)))
}

// -----------------------------------------------------------------------------
// RoundTrip Tests
// -----------------------------------------------------------------------------

func TestService_RoundTrip(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.RoundTrip(context.Background(), Request{
		Text:      "The quick brown fox jumps over the lazy dog.",
		Rotors:    []string{"2", "5", "8"},
		Position:  enigma.Position{3, 9, 14},
		Plugboard: "QWERTYUIOP",
	})
	require.NoError(t, err)

	assert.Equal(t, "HTU FQDYZ NGTFQ BPL SEFFG TKVK MAC DOPK YZM.", res.Encrypted.Output)
	assert.Equal(t, "THE QUICK BROWN FOX JUMPS OVER THE LAZY DOG.", res.Decrypted.Output)
	assert.True(t, res.Match)
	assert.NotEqual(t, res.Encrypted.SessionID, res.Decrypted.SessionID)
}

func TestService_RoundTrip_Rejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.RoundTrip(context.Background(), Request{Text: "A", Position: enigma.Position{1, 27, 1}})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "encrypt: "))

	var posErr *enigma.PositionError
	require.True(t, errors.As(err, &posErr))
	assert.Equal(t, enigma.SlotSecond, posErr.Slot)
}

// -----------------------------------------------------------------------------
// Observability Tests
// -----------------------------------------------------------------------------

func TestService_Metrics(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Transform(context.Background(), Request{Text: "HELLO, WORLD!", Position: enigma.Position{1, 1, 1}})
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SessionsTotal.WithLabelValues(outcomeSuccess)))
	assert.Equal(t, 10.0, testutil.ToFloat64(f.metrics.SymbolsTotal.WithLabelValues(kindEnciphered)))
	assert.Equal(t, 3.0, testutil.ToFloat64(f.metrics.SymbolsTotal.WithLabelValues(kindPassThrough)))
	assert.Equal(t, 1, testutil.CollectAndCount(f.metrics.SessionDurationSeconds))
}

func TestNewMetrics_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.SessionsTotal.WithLabelValues(outcomeSuccess).Inc()
	m.SymbolsTotal.WithLabelValues(kindEnciphered).Inc()
	m.ValidationFailuresTotal.WithLabelValues(string(CodeInternal)).Inc()
	m.SessionDurationSeconds.Observe(0.001)

	families, err := reg.Gather()
	require.NoError(t, err)

	var names []string
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.ElementsMatch(t, []string{
		"enigma_cipher_sessions_total",
		"enigma_cipher_symbols_total",
		"enigma_cipher_validation_failures_total",
		"enigma_cipher_session_duration_seconds",
	}, names)
}

func TestService_Span(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Transform(context.Background(), Request{
		Text:     "SECRET",
		Rotors:   []string{"4", "7", "9"},
		Position: enigma.Position{5, 17, 23},
	})
	require.NoError(t, err)

	spans := f.recorder.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "cipher.transform", span.Name())
	assert.Equal(t, codes.Ok, span.Status().Code)

	attrs := map[string]string{}
	for _, kv := range span.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "6", attrs["enigma.enciphered"])
	assert.Contains(t, attrs["enigma.rotors"], "VII")
	for _, v := range attrs {
		assert.NotContains(t, v, "SECRET", "plaintext must not reach span attributes")
	}
}

func TestService_Span_Error(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Transform(context.Background(), Request{Text: "A", Position: enigma.Position{1, 1, 1}, Plugboard: "ABC"})
	require.Error(t, err)

	spans := f.recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, string(CodeOddPlugboardLength), spans[0].Status().Description)
	require.NotEmpty(t, spans[0].Events(), "error should be recorded as a span event")
}

func TestService_Logs(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Transform(context.Background(), Request{
		Text:      "TOPSECRET",
		Position:  enigma.Position{1, 1, 1},
		Plugboard: "QWERTY",
	})
	require.NoError(t, err)

	entries := f.logs.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "session started", entries[0].Message)
	assert.Equal(t, "session finished", entries[1].Message)

	for _, e := range entries {
		assert.Equal(t, res.SessionID, e.Attrs["session_id"])
		for _, v := range e.Attrs {
			s, ok := v.(string)
			if !ok {
				continue
			}
			assert.NotContains(t, s, "TOPSECRET")
			assert.NotContains(t, s, "QW")
		}
	}
	assert.EqualValues(t, 3, entries[0].Attrs["plugboard_pairs"])
	assert.EqualValues(t, 9, entries[1].Attrs["enciphered"])
}

func TestNew_Defaults(t *testing.T) {
	svc := New(Options{})
	res, err := svc.Transform(context.Background(), Request{Text: "H", Position: enigma.Position{1, 1, 1}})
	require.NoError(t, err)
	assert.Equal(t, "F", res.Output)
}

// -----------------------------------------------------------------------------
// Error Classification Tests
// -----------------------------------------------------------------------------

func TestCode(t *testing.T) {
	assert.Equal(t, CodeInternal, Code(errors.New("boom")))
	assert.Equal(t, CodeInternal, Code(nil))
	assert.Equal(t, CodeInvalidWiring, Code(enigma.ErrInvalidWiring))
	assert.Equal(t, CodePositionOutOfRange, Code(&enigma.PositionError{Slot: enigma.SlotFirst, Value: 0}))

	assert.True(t, IsConfigError(enigma.ErrDuplicateRotor))
	assert.False(t, IsConfigError(errors.New("boom")))
	assert.False(t, IsConfigError(nil))
}

func TestUpperASCII(t *testing.T) {
	assert.Equal(t, "HELLO, WORLD!", UpperASCII("Hello, world!"))
	assert.Equal(t, "GRüßE", UpperASCII("Grüße"))
}
