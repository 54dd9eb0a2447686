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
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/AleutianAI/AleutianEnigma/cmd/enigma/config"
	"github.com/AleutianAI/AleutianEnigma/internal/cipher"
	"github.com/AleutianAI/AleutianEnigma/pkg/logging"
	"github.com/AleutianAI/AleutianEnigma/pkg/ux"
)

// app carries state shared by every subcommand, filled in by the root
// PersistentPreRunE.
type app struct {
	// persistent flags
	configPath       string
	personalityLevel string // UX personality level (full/standard/minimal/machine)
	logLevel         string

	cfg      config.EnigmaConfig
	logger   *logging.Logger
	registry *prometheus.Registry
	tracer   trace.Tracer
	svc      *cipher.Service
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "enigma",
		Short: "Encipher and decipher text with a three-rotor Enigma-style machine",
		Long: `enigma drives a three-rotor cipher machine with a fixed reflector and an
optional plugboard. The operation is reciprocal: running the ciphertext
through a machine with the same settings gives back the plaintext.

Session defaults come from ~/.enigma/enigma.yaml (created on first run) and
are overridden by flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "",
		"Config file (default: ~/.enigma/enigma.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.personalityLevel, "personality", "",
		"Output style: full, standard, minimal, or machine (scripting)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"Log level: debug, info, warn, error (overrides the config file)")

	rootCmd.AddCommand(
		newEncryptCmd(a),
		newDecryptCmd(a),
		newRoundTripCmd(a),
		newRotorsCmd(a),
		newReplCmd(a),
		newBatchCmd(a),
		newServeCmd(a),
	)
	return rootCmd
}

// execute runs root and then releases the logger. Cobra skips post-run
// hooks when a command fails, so the close cannot live in one.
func execute(a *app, root *cobra.Command) error {
	err := root.Execute()
	if cerr := a.close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func (a *app) close() error {
	if a.logger == nil {
		return nil
	}
	err := a.logger.Close()
	a.logger = nil
	return err
}

func (a *app) init(cmd *cobra.Command) error {
	if err := a.loadConfig(cmd); err != nil {
		return err
	}

	personality := a.personalityLevel
	if personality == "" {
		personality = a.cfg.Output.Personality
	}
	ux.InitPersonality(personality)

	levelName := a.cfg.Logging.Level
	if a.logLevel != "" {
		levelName = a.logLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return err
	}
	a.logger = logging.New(logging.Config{
		Level:   level,
		LogDir:  a.cfg.Logging.Dir,
		Service: "enigma",
		JSON:    a.cfg.Logging.JSON,
		Output:  cmd.ErrOrStderr(),
	})

	a.registry = prometheus.NewRegistry()
	return nil
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	if a.configPath != "" {
		cfg, err := config.LoadFile(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
		return nil
	}

	path, err := config.DefaultPath()
	if err != nil {
		return err
	}
	cfg, created, err := config.LoadOrCreate(path)
	if err != nil {
		return err
	}
	if created {
		ux.Success(cmd.ErrOrStderr(), fmt.Sprintf("First run detected, created the config at %s", path))
	}
	a.cfg = cfg
	return nil
}

// service returns the cipher service, building it on first use so that
// serve can install a tracer beforehand.
func (a *app) service() *cipher.Service {
	if a.svc == nil {
		a.svc = cipher.New(cipher.Options{
			Logger:  a.logger,
			Metrics: cipher.NewMetrics(a.registry),
			Tracer:  a.tracer,
		})
	}
	return a.svc
}
