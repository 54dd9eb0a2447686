// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/AleutianAI/AleutianEnigma/pkg/enigma"
	"github.com/AleutianAI/AleutianEnigma/pkg/logging"
)

// EnigmaConfig is the on-disk CLI configuration.
type EnigmaConfig struct {
	// Machine: session defaults used when flags are not given
	Machine MachineConfig `yaml:"machine"`

	// Output: how results are rendered
	Output OutputConfig `yaml:"output"`

	// Logging: level and optional JSON file output
	Logging LoggingConfig `yaml:"logging"`

	// Server: settings for `enigma serve`
	Server ServerConfig `yaml:"server"`
}

type MachineConfig struct {
	Rotors    []string `yaml:"rotors" validate:"len=3,dive,required"` // e.g. ["I", "II", "III"]
	Position  []int    `yaml:"position" validate:"len=3"`             // e.g. [1, 1, 1]
	Plugboard string   `yaml:"plugboard"`                             // e.g. "PICTURES"
}

type OutputConfig struct {
	// Format is text, hex, or base64.
	Format string `yaml:"format" validate:"oneof=text hex base64"`

	// Personality is full, standard, minimal, or machine. Empty auto-detects.
	Personality string `yaml:"personality" validate:"omitempty,oneof=full standard minimal machine"`
}

type LoggingConfig struct {
	Level string `yaml:"level" validate:"loglevel"`
	Dir   string `yaml:"dir"`
	JSON  bool   `yaml:"json"`
}

type ServerConfig struct {
	Host          string  `yaml:"host"`
	Port          int     `yaml:"port" validate:"gte=1,lte=65535"`
	RateLimit     float64 `yaml:"rate_limit" validate:"gte=0"` // requests per second, 0 disables
	Burst         int     `yaml:"burst" validate:"gte=0"`
	TraceExporter string  `yaml:"trace_exporter" validate:"oneof=none stdout otlp"`
	OTLPEndpoint  string  `yaml:"otlp_endpoint" validate:"required_if=TraceExporter otlp"` // collector host:port
	OTLPInsecure  bool    `yaml:"otlp_insecure"`
}

// DefaultConfig is written on first run.
func DefaultConfig() EnigmaConfig {
	return EnigmaConfig{
		Machine: MachineConfig{
			Rotors:    []string{"I", "II", "III"},
			Position:  []int{1, 1, 1},
			Plugboard: "",
		},
		Output: OutputConfig{
			Format: "text",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
		Server: ServerConfig{
			Port:          12310,
			RateLimit:     50,
			Burst:         100,
			TraceExporter: "none",
			OTLPEndpoint:  "localhost:4317",
			OTLPInsecure:  true,
		},
	}
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("loglevel", validateLogLevel)
}

func validateLogLevel(fl validator.FieldLevel) bool {
	_, err := logging.ParseLevel(fl.Field().String())
	return err == nil
}

// Validate checks field shapes. Cipher semantics such as rotor distinctness
// and plugboard pairing are left to the enigma package so its error
// taxonomy reaches the user unchanged.
func (c EnigmaConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// StartPosition returns the configured starting position.
func (m MachineConfig) StartPosition() enigma.Position {
	var p enigma.Position
	copy(p[:], m.Position)
	return p
}
