// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// =============================================================================
// Level Tests
// =============================================================================

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevel_toSlogLevel(t *testing.T) {
	tests := []struct {
		level Level
		want  slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{Level(-1), slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := tt.level.toSlogLevel(); got != tt.want {
			t.Errorf("%v.toSlogLevel() = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{" warn ", LevelWarn, false},
		{"Error", LevelError, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// =============================================================================
// Logger Tests
// =============================================================================

func TestNew_WritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Output: &buf, Service: "enigma"})
	defer logger.Close()

	logger.Info("session finished", "symbols", 42)

	out := buf.String()
	for _, want := range []string{"session finished", "symbols=42", "service=enigma"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Output: &buf, JSON: true})
	logger.Warn("rate limited", "client", "127.0.0.1")

	if !strings.Contains(buf.String(), `"msg":"rate limited"`) {
		t.Errorf("expected JSON output, got %q", buf.String())
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Output: &buf, Level: LevelWarn})

	logger.Debug("hidden debug")
	logger.Info("hidden info")
	logger.Warn("shown warn")
	logger.Error("shown error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below Warn should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown warn") || !strings.Contains(out, "shown error") {
		t.Errorf("messages at or above Warn missing: %q", out)
	}
}

func TestNew_QuietDiscardsConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Output: &buf, Quiet: true})
	logger.Error("nothing")
	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote %q", buf.String())
	}
}

func TestNew_WithLogDir(t *testing.T) {
	tmpDir := t.TempDir()
	logger := New(Config{LogDir: tmpDir, Quiet: true})
	logger.Info("to file", "session_id", "abc")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	files, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 log file, got %d", len(files))
	}
	if !strings.HasPrefix(files[0].Name(), "enigma_") {
		t.Errorf("log file %q should default to the enigma service name", files[0].Name())
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, files[0].Name()))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), `"session_id":"abc"`) {
		t.Errorf("file log should be JSON, got %q", data)
	}
}

func TestNew_ConsoleAndFile(t *testing.T) {
	var buf bytes.Buffer
	tmpDir := t.TempDir()
	logger := New(Config{LogDir: tmpDir, Output: &buf, Service: "svc"})
	defer logger.Close()

	if _, ok := logger.slog.Handler().(*multiHandler); !ok {
		t.Errorf("expected multiHandler, got %T", logger.slog.Handler())
	}
	logger.Info("both")
	if !strings.Contains(buf.String(), "both") {
		t.Error("console output missing")
	}
}

func TestLogger_WithAttrsReachExporter(t *testing.T) {
	exporter := NewBufferedExporter()
	logger := New(Config{Quiet: true, Service: "enigma", Exporter: exporter})

	child := logger.With("session_id", "s-1")
	child.Info("session finished", "symbols", 5)
	logger.Debug("below level")

	entries := exporter.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Message != "session finished" || e.Service != "enigma" || e.Level != LevelInfo {
		t.Errorf("unexpected entry %+v", e)
	}
	if e.Attrs["session_id"] != "s-1" || e.Attrs["symbols"] != 5 {
		t.Errorf("unexpected attrs %v", e.Attrs)
	}
}

type failingExporter struct {
	BufferedExporter
}

func (e *failingExporter) Flush(context.Context) error { return errors.New("flush failed") }

func TestLogger_Close_ExporterError(t *testing.T) {
	logger := New(Config{Quiet: true, Exporter: &failingExporter{}})
	err := logger.Close()
	if err == nil || !strings.Contains(err.Error(), "flush exporter") {
		t.Errorf("Close() error = %v, want flush exporter error", err)
	}
}

func TestLogger_ConcurrentUse(t *testing.T) {
	exporter := NewBufferedExporter()
	logger := New(Config{Quiet: true, Exporter: exporter})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			logger.With("worker", i).Info("line")
		}(i)
	}
	wg.Wait()

	if got := len(exporter.Entries()); got != 20 {
		t.Errorf("expected 20 entries, got %d", got)
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Error("dropped")
	if err := logger.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

// =============================================================================
// Helper Tests
// =============================================================================

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandPath("~/.enigma/logs"); got != filepath.Join(home, ".enigma/logs") {
		t.Errorf("expandPath() = %q", got)
	}
	if got := expandPath("/var/log"); got != "/var/log" {
		t.Errorf("expandPath() = %q", got)
	}
}

func TestArgsToMap(t *testing.T) {
	got := argsToMap([]any{"a", 1, "b", "two", 3, "ignored", "dangling"})
	if len(got) != 2 || got["a"] != 1 || got["b"] != "two" {
		t.Errorf("argsToMap() = %v", got)
	}
}
