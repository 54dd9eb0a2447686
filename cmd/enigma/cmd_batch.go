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
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/AleutianEnigma/internal/cipher"
	"github.com/AleutianAI/AleutianEnigma/pkg/enigma"
	"github.com/AleutianAI/AleutianEnigma/pkg/ux"
)

// maxLineBytes bounds a single batch message.
const maxLineBytes = 1 << 20

func newBatchCmd(a *app) *cobra.Command {
	var (
		machine machineFlags
		workers int
		format  string
	)
	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Transform every line of FILE as its own message",
		Long: `Reads FILE (or stdin when FILE is "-") and transforms each line with a
fresh machine at the configured starting position. Lines are processed
concurrently and written in input order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.Output.Format
			}
			if err := checkFormat(format); err != nil {
				return err
			}

			lines, err := readLines(cmd, args[0])
			if err != nil {
				return err
			}

			// Reject bad settings before any line is processed.
			base, err := machine.request(cmd, a, "")
			if err != nil {
				return err
			}
			settings, err := base.Settings()
			if err != nil {
				return err
			}
			if _, err := enigma.Validate(settings); err != nil {
				return err
			}

			progress := ux.NewProgress(cmd.ErrOrStderr(), "Enciphering", len(lines))
			progress.Start()
			out, err := transformLines(cmd, a.service(), base, lines, workers, progress)
			progress.Stop()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, line := range out {
				encoded, err := encodeOutput(line, format)
				if err != nil {
					return err
				}
				ux.Raw(w, encoded)
			}
			return nil
		},
	}
	machine.register(cmd)
	cmd.Flags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "Lines processed concurrently")
	cmd.Flags().StringVar(&format, "format", "", "Output format: text, hex, or base64 (default from config)")
	return cmd
}

func readLines(cmd *cobra.Command, path string) ([]string, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}

// transformLines runs one session per line, at most workers at a time.
// Results keep input order.
func transformLines(cmd *cobra.Command, svc *cipher.Service, base cipher.Request, lines []string, workers int, progress *ux.Progress) ([]string, error) {
	if workers < 1 {
		workers = 1
	}
	out := make([]string, len(lines))

	g, gCtx := errgroup.WithContext(cmd.Context())
	g.SetLimit(workers)
	for i, line := range lines {
		g.Go(func() error {
			req := base
			req.Text = line
			res, err := svc.Transform(gCtx, req)
			if err != nil {
				return fmt.Errorf("line %d: %w", i+1, err)
			}
			out[i] = res.Output
			progress.Increment()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
