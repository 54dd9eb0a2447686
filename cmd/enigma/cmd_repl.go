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
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/AleutianEnigma/internal/cipher"
	"github.com/AleutianAI/AleutianEnigma/pkg/enigma"
	"github.com/AleutianAI/AleutianEnigma/pkg/ux"
)

func newReplCmd(a *app) *cobra.Command {
	var plugboard string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive loop: enter a message, three positions, and three rotors",
		Long: `Prompts for a message, the starting position of each rotor, and the
id of each rotor, then prints the encrypted message and its decryption.
Every message goes through the plugboard from --plugboard or the config
file. Repeats until end of input or "quit".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &repl{
				app:       a,
				in:        bufio.NewScanner(cmd.InOrStdin()),
				out:       cmd.OutOrStdout(),
				plugboard: a.cfg.Machine.Plugboard,
			}
			if cmd.Flags().Changed("plugboard") {
				r.plugboard = plugboard
			}
			return r.loop(cmd)
		},
	}
	cmd.Flags().StringVar(&plugboard, "plugboard", "",
		"Plugboard pairs for every message (e.g. PICTURES)")
	return cmd
}

type repl struct {
	app       *app
	in        *bufio.Scanner
	out       io.Writer
	plugboard string
}

// errQuit ends the loop without error.
var errQuit = errors.New("quit")

func (r *repl) prompt(label string) (string, error) {
	if ux.IsInteractive() {
		fmt.Fprintf(r.out, "%s ", ux.Styles.Label.Render(label+":"))
	}
	if !r.in.Scan() {
		if err := r.in.Err(); err != nil {
			return "", err
		}
		return "", errQuit
	}
	line := strings.TrimSpace(r.in.Text())
	if strings.EqualFold(line, "quit") || strings.EqualFold(line, "exit") {
		return "", errQuit
	}
	return line, nil
}

func (r *repl) loop(cmd *cobra.Command) error {
	for {
		req, err := r.readRequest()
		var numErr *strconv.NumError
		switch {
		case errors.Is(err, errQuit):
			return nil
		case errors.As(err, &numErr):
			ux.Error(r.out, fmt.Sprintf("not a number: %q", numErr.Num))
			continue
		case err != nil:
			return err
		}

		res, err := r.app.service().RoundTrip(cmd.Context(), req)
		if err != nil {
			ux.Error(r.out, err.Error())
			continue
		}
		ux.Result(r.out, "Encrypted message", res.Encrypted.Output)
		ux.Result(r.out, "Decrypted message", res.Decrypted.Output)
	}
}

func (r *repl) readRequest() (cipher.Request, error) {
	req := cipher.Request{Plugboard: r.plugboard}

	msg, err := r.prompt("Message")
	if err != nil {
		return req, err
	}
	req.Text = msg

	for i := range req.Position {
		line, err := r.prompt(fmt.Sprintf("Position %d", i+1))
		if err != nil {
			return req, err
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			return req, err
		}
		req.Position[i] = n
	}

	req.Rotors = make([]string, len(req.Position))
	for i := range req.Rotors {
		line, err := r.prompt(fmt.Sprintf("Rotor %d (1-%d)", i+1, len(enigma.Catalog())))
		if err != nil {
			return req, err
		}
		req.Rotors[i] = line
	}
	return req, nil
}
