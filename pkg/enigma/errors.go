// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package enigma

import (
	"errors"
	"fmt"
)

// Sentinel errors for machine configuration.
//
// Every validation failure wraps exactly one of these, so callers can
// branch with errors.Is regardless of the extra context attached.
var (
	// ErrDuplicateRotor is returned when the rotor selection contains fewer
	// than three distinct wirings.
	ErrDuplicateRotor = errors.New("rotor selection must contain 3 distinct rotors")

	// ErrPositionOutOfRange is returned when a starting position is not in [1, 26].
	// The concrete error is a *PositionError naming the slot.
	ErrPositionOutOfRange = errors.New("rotor position out of range")

	// ErrOddPlugboardLength is returned when the plugboard spec has an odd
	// number of symbols after spaces are removed.
	ErrOddPlugboardLength = errors.New("odd number of plugboard symbols")

	// ErrInvalidPlugboardSymbol is returned when the plugboard spec contains
	// a character outside the alphabet.
	ErrInvalidPlugboardSymbol = errors.New("plugboard symbol not in alphabet")

	// ErrDuplicatePlugboardSymbol is returned when a symbol appears more than
	// once in the plugboard spec.
	ErrDuplicatePlugboardSymbol = errors.New("duplicate plugboard symbol")

	// ErrUnknownRotor is returned when a rotor selector matches no catalog entry.
	ErrUnknownRotor = errors.New("unknown rotor")

	// ErrInvalidSymbol is returned by IndexOf for characters outside the alphabet.
	ErrInvalidSymbol = errors.New("symbol not in alphabet")

	// ErrInvalidWiring is returned when a rotor wiring is not a permutation
	// of the alphabet.
	ErrInvalidWiring = errors.New("invalid rotor wiring")

	// ErrInvalidReflector is returned when a reflector wiring is not an
	// involution without fixed points.
	ErrInvalidReflector = errors.New("invalid reflector wiring")
)

// Slot names a physical rotor slot.
type Slot int

const (
	SlotFirst Slot = iota
	SlotSecond
	SlotThird
)

// String returns "first", "second" or "third".
func (s Slot) String() string {
	switch s {
	case SlotFirst:
		return "first"
	case SlotSecond:
		return "second"
	case SlotThird:
		return "third"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// PositionError reports a starting position outside [1, 26].
type PositionError struct {
	Slot  Slot
	Value int
}

// Error implements the error interface.
func (e *PositionError) Error() string {
	return fmt.Sprintf("%s rotor position is not within range of 1..%d (%d)", e.Slot, Size, e.Value)
}

// Unwrap returns ErrPositionOutOfRange for errors.Is support.
func (e *PositionError) Unwrap() error {
	return ErrPositionOutOfRange
}

// PlugboardError reports a malformed plugboard spec.
type PlugboardError struct {
	// Symbol is the offending character, or 0 for length errors.
	Symbol rune

	// Length is the spec length after spaces were removed.
	Length int

	// Err is one of the plugboard sentinel errors.
	Err error
}

// Error implements the error interface.
func (e *PlugboardError) Error() string {
	if e.Symbol == 0 {
		return fmt.Sprintf("plugboard: %v (%d)", e.Err, e.Length)
	}
	return fmt.Sprintf("plugboard: %v (%q)", e.Err, e.Symbol)
}

// Unwrap returns the underlying sentinel error.
func (e *PlugboardError) Unwrap() error {
	return e.Err
}
