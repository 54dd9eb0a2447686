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
	"strings"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/AleutianEnigma/internal/cipher"
	"github.com/AleutianAI/AleutianEnigma/pkg/ux"
)

type cipherCmd struct {
	app     *app
	machine machineFlags
	input   inputFlags
	format  string
}

func newEncryptCmd(a *app) *cobra.Command {
	c := &cipherCmd{app: a}
	cmd := &cobra.Command{
		Use:   "encrypt [text]",
		Short: "Encrypt a message",
		Long: `Encrypt a message with the configured machine.

INPUT METHODS:
  enigma encrypt --text "Hello World"      # Direct text
  enigma encrypt --file input.txt          # From file
  echo "Hello" | enigma encrypt            # From stdin

Letters are upper-cased and enciphered. Everything else (digits, spaces,
punctuation) is copied through unchanged and does not advance the rotors.`,
		Example: `  enigma encrypt --rotors 4,7,9 --position 5,17,23 --plugboard POLAND "ATTACK AT DAWN"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, args, false)
		},
	}
	c.register(cmd)
	return cmd
}

func newDecryptCmd(a *app) *cobra.Command {
	c := &cipherCmd{app: a}
	cmd := &cobra.Command{
		Use:   "decrypt [ciphertext]",
		Short: "Decrypt a message",
		Long: `Decrypt a message. The machine is reciprocal, so this is the same
transform as encrypt; with --format hex or base64 the input is decoded first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, args, true)
		},
	}
	c.register(cmd)
	return cmd
}

func (c *cipherCmd) register(cmd *cobra.Command) {
	c.machine.register(cmd)
	c.input.register(cmd)
	cmd.Flags().StringVar(&c.format, "format", "", "Ciphertext format: text, hex, or base64 (default from config)")
}

func (c *cipherCmd) formatName() string {
	if c.format != "" {
		return c.format
	}
	return c.app.cfg.Output.Format
}

func (c *cipherCmd) run(cmd *cobra.Command, args []string, decrypt bool) error {
	format := c.formatName()
	if err := checkFormat(format); err != nil {
		return err
	}

	text, err := c.input.read(cmd, args)
	if err != nil {
		return err
	}
	if decrypt {
		if text, err = decodeInput(text, format); err != nil {
			return err
		}
	}

	req, err := c.machine.request(cmd, c.app, text)
	if err != nil {
		return err
	}
	res, err := c.app.service().Transform(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := res.Output
	label := "Decrypted message"
	if !decrypt {
		label = "Encrypted message"
		if out, err = encodeOutput(out, format); err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	switch ux.GetPersonality() {
	case ux.PersonalityMachine:
		ux.Raw(w, out)
	case ux.PersonalityFull:
		ux.Settings(w, "Machine", settingsRows(req, res))
		ux.Result(w, label, out)
	default:
		ux.Result(w, label, out)
	}
	return nil
}

func settingsRows(req cipher.Request, res *cipher.Result) [][2]string {
	plugboard := req.Plugboard
	if plugboard == "" {
		plugboard = "(none)"
	}
	return [][2]string{
		{"Rotors", strings.Join(res.Rotors, " ")},
		{"Position", joinInts(req.Position[:])},
		{"Plugboard", plugboard},
		{"Final", joinInts(res.FinalPosition[:])},
	}
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ",")
}

func newRoundTripCmd(a *app) *cobra.Command {
	var (
		machine machineFlags
		input   inputFlags
	)
	cmd := &cobra.Command{
		Use:   "roundtrip [text]",
		Short: "Encrypt a message, then decrypt the result with the same settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := input.read(cmd, args)
			if err != nil {
				return err
			}
			req, err := machine.request(cmd, a, text)
			if err != nil {
				return err
			}
			res, err := a.service().RoundTrip(cmd.Context(), req)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			ux.Result(w, "Encrypted message", res.Encrypted.Output)
			ux.Result(w, "Decrypted message", res.Decrypted.Output)
			if !res.Match {
				ux.Warning(w, "decrypted text does not match the input")
				return errors.New("round trip mismatch")
			}
			return nil
		},
	}
	machine.register(cmd)
	input.register(cmd)
	return cmd
}
