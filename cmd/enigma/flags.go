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
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/AleutianEnigma/internal/cipher"
)

// machineFlags are the per-session settings shared by the cipher commands.
// Unset flags fall back to the config file.
type machineFlags struct {
	rotors    []string
	position  []int
	plugboard string
}

func (f *machineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.rotors, "rotors", "r", nil,
		"Three rotors by id, Roman name, or wiring (e.g. I,II,III or 4,7,9)")
	cmd.Flags().IntSliceVarP(&f.position, "position", "p", nil,
		"Starting position of each rotor, 1-26 (e.g. 1,1,1)")
	cmd.Flags().StringVar(&f.plugboard, "plugboard", "",
		"Plugboard pairs as one string (e.g. PICTURES swaps P/I, C/T, U/R, E/S)")
}

// request merges flags over the config defaults.
func (f *machineFlags) request(cmd *cobra.Command, a *app, text string) (cipher.Request, error) {
	rotors := a.cfg.Machine.Rotors
	if cmd.Flags().Changed("rotors") {
		rotors = f.rotors
	}
	plugboard := a.cfg.Machine.Plugboard
	if cmd.Flags().Changed("plugboard") {
		plugboard = f.plugboard
	}

	pos := a.cfg.Machine.StartPosition()
	if cmd.Flags().Changed("position") {
		if len(f.position) != len(pos) {
			return cipher.Request{}, fmt.Errorf("--position: want 3 values, got %d", len(f.position))
		}
		copy(pos[:], f.position)
	}

	return cipher.Request{
		Text:      text,
		Rotors:    rotors,
		Position:  pos,
		Plugboard: plugboard,
	}, nil
}

// inputFlags select where the message comes from.
type inputFlags struct {
	text string
	file string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.text, "text", "t", "", "Text to process")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "File to process")
}

var errNoInput = errors.New("no input text provided. Use --text, --file, an argument, or pipe to stdin")

// read returns the message from --text, --file, positional args, or stdin,
// in that order. A single trailing newline is dropped.
func (f *inputFlags) read(cmd *cobra.Command, args []string) (string, error) {
	var text string
	switch {
	case f.text != "":
		text = f.text
	case f.file != "":
		data, err := os.ReadFile(f.file)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", f.file, err)
		}
		text = string(data)
	case len(args) > 0:
		text = strings.Join(args, " ")
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}

	text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
	if text == "" {
		return "", errNoInput
	}
	return text, nil
}
