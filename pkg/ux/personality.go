// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ux

import (
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// PersonalityLevel defines the richness of CLI output.
type PersonalityLevel string

const (
	// PersonalityFull enables colors, icons, boxes and the settings banner
	PersonalityFull PersonalityLevel = "full"

	// PersonalityStandard enables colors, icons and boxes
	PersonalityStandard PersonalityLevel = "standard"

	// PersonalityMinimal uses icons and no boxes
	PersonalityMinimal PersonalityLevel = "minimal"

	// PersonalityMachine outputs plain text suitable for scripting and pipes
	PersonalityMachine PersonalityLevel = "machine"
)

// PersonalityEnv overrides the detected personality level.
const PersonalityEnv = "ENIGMA_PERSONALITY"

var (
	currentLevel  = PersonalityStandard
	personalityMu sync.RWMutex
)

// GetPersonality returns the current level.
func GetPersonality() PersonalityLevel {
	personalityMu.RLock()
	defer personalityMu.RUnlock()
	return currentLevel
}

// SetPersonality updates the current level.
func SetPersonality(level PersonalityLevel) {
	personalityMu.Lock()
	defer personalityMu.Unlock()
	currentLevel = level
}

// ParsePersonalityLevel converts a string to a PersonalityLevel.
// Unknown values map to PersonalityStandard.
func ParsePersonalityLevel(s string) PersonalityLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full", "f":
		return PersonalityFull
	case "standard", "std", "s":
		return PersonalityStandard
	case "minimal", "min", "m":
		return PersonalityMinimal
	case "machine", "quiet", "q":
		return PersonalityMachine
	default:
		return PersonalityStandard
	}
}

// InitPersonality picks a level from, in order: the explicit flag value,
// $ENIGMA_PERSONALITY, and whether stdout is a terminal.
func InitPersonality(flagValue string) {
	switch {
	case flagValue != "":
		SetPersonality(ParsePersonalityLevel(flagValue))
	case os.Getenv(PersonalityEnv) != "":
		SetPersonality(ParsePersonalityLevel(os.Getenv(PersonalityEnv)))
	case !IsTerminal(os.Stdout):
		SetPersonality(PersonalityMachine)
	default:
		SetPersonality(PersonalityStandard)
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsInteractive reports whether prompts should be shown.
func IsInteractive() bool {
	return GetPersonality() != PersonalityMachine && IsTerminal(os.Stdin)
}
