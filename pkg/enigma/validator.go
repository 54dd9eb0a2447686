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

import "fmt"

// Position is the 1-based starting dial of rotors 1, 2 and 3.
type Position [3]int

// Selection is the ordered triple of rotors in slots 1, 2 and 3.
type Selection [3]Rotor

// IsZero reports whether no rotor has been chosen.
func (s Selection) IsZero() bool {
	return s[0].IsZero() && s[1].IsZero() && s[2].IsZero()
}

// Labels returns the rotor labels in slot order.
func (s Selection) Labels() []string {
	return []string{s[0].Label(), s[1].Label(), s[2].Label()}
}

// DefaultSelection returns catalog rotors I, II and III.
func DefaultSelection() Selection {
	return Selection{catalog[0], catalog[1], catalog[2]}
}

// Settings is the unvalidated configuration of one cipher session.
type Settings struct {
	// Position is the starting dial of each rotor, each in [1, 26].
	Position Position

	// Rotors is the rotor selection. The zero value means DefaultSelection.
	Rotors Selection

	// Plugboard is the pair spec, e.g. "PICTURES". Empty means no cables.
	Plugboard string
}

// Session is a validated configuration, ready to drive a Machine.
type Session struct {
	Position  Position
	Rotors    Selection
	Plugboard Plugboard
}

// Validate checks s and builds its plugboard.
//
// Checks run in this order, stopping at the first failure:
//  1. the three rotors have distinct wirings (ErrDuplicateRotor)
//  2. each position is in [1, 26] (*PositionError, ErrPositionOutOfRange)
//  3. the plugboard spec is well-formed (*PlugboardError)
//
// On success the position and selection are returned unchanged.
func Validate(s Settings) (*Session, error) {
	rotors := s.Rotors
	if rotors.IsZero() {
		rotors = DefaultSelection()
	}

	distinct := make(map[string]struct{}, len(rotors))
	for slot, r := range rotors {
		if r.IsZero() {
			return nil, fmt.Errorf("%s rotor: %w: not set", Slot(slot), ErrUnknownRotor)
		}
		distinct[r.wiring] = struct{}{}
	}
	if len(distinct) < len(rotors) {
		return nil, fmt.Errorf("%w (got %d)", ErrDuplicateRotor, len(distinct))
	}

	for slot, p := range s.Position {
		if p < 1 || p > Size {
			return nil, &PositionError{Slot: Slot(slot), Value: p}
		}
	}

	pb, err := NewPlugboard(s.Plugboard)
	if err != nil {
		return nil, err
	}

	return &Session{
		Position:  s.Position,
		Rotors:    rotors,
		Plugboard: pb,
	}, nil
}
