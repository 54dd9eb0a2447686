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
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath is ~/.enigma/enigma.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user's home directory: %w", err)
	}
	return filepath.Join(home, ".enigma", "enigma.yaml"), nil
}

// LoadOrCreate reads path, writing DefaultConfig there first if it does not
// exist. created reports whether the file was written.
func LoadOrCreate(path string) (cfg EnigmaConfig, created bool, err error) {
	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		if err := createDefault(path); err != nil {
			return EnigmaConfig{}, false, err
		}
		created = true
	}
	cfg, err = LoadFile(path)
	return cfg, created, err
}

// LoadFile reads and validates an explicit config file. Keys missing from
// the file keep their DefaultConfig values.
func LoadFile(path string) (EnigmaConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EnigmaConfig{}, fmt.Errorf("failed to read the config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return EnigmaConfig{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return EnigmaConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create the config directory: %w", err)
	}
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
