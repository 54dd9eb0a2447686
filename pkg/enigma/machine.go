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

import "strings"

// Machine is a configured cipher machine carrying live rotor offsets.
//
// A Machine is not safe for concurrent use. Create one per session, or use
// Transform for one-shot calls.
type Machine struct {
	session   Session
	reflector Reflector

	// offsets are 0-based; offsets[0] is the fast rotor.
	offsets   [3]int
	processed int
}

// NewMachine validates s and returns a machine at its starting position.
func NewMachine(s Settings) (*Machine, error) {
	session, err := Validate(s)
	if err != nil {
		return nil, err
	}
	return NewMachineFromSession(session), nil
}

// NewMachineFromSession returns a machine for an already validated session.
func NewMachineFromSession(session *Session) *Machine {
	m := &Machine{
		session:   *session,
		reflector: DefaultReflector,
	}
	m.Reset()
	return m
}

// Reset returns the rotors to the session's starting position.
func (m *Machine) Reset() {
	for i, p := range m.session.Position {
		m.offsets[i] = p - 1
	}
	m.processed = 0
}

// Session returns the validated configuration the machine was built from.
func (m *Machine) Session() Session {
	return m.session
}

// Offsets returns the current 1-based dial positions.
func (m *Machine) Offsets() Position {
	return Position{m.offsets[0] + 1, m.offsets[1] + 1, m.offsets[2] + 1}
}

// Processed returns the number of alphabet symbols enciphered since the
// last Reset.
func (m *Machine) Processed() int {
	return m.processed
}

// Transform enciphers text. Letters are upper-cased and substituted;
// every other character is copied through without stepping the rotors.
func (m *Machine) Transform(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		b.WriteRune(m.Encipher(r))
	}
	return b.String()
}

// Encipher processes a single keystroke.
//
// Alphabet letters (either case) are substituted and the rotors step once.
// Any other rune is returned as-is and the rotors do not move.
func (m *Machine) Encipher(r rune) rune {
	r, ok := normalize(r)
	if !ok {
		return r
	}
	out := m.substitute(int(r - 'A'))
	m.Step()
	return SymbolAt(out)
}

// substitute runs one symbol index through the circuit at the current
// offsets without stepping.
func (m *Machine) substitute(sym int) int {
	rotors := &m.session.Rotors
	pb := &m.session.Plugboard

	sym = pb.Apply(sym)

	// Forward: add the offset, then read the wiring.
	for i := 0; i < len(rotors); i++ {
		sym = rotors[i].forward(mod(sym + m.offsets[i]))
	}

	sym = m.reflector.Reflect(sym)

	// Reverse: find the symbol in the wiring, then subtract the offset.
	// This is the exact inverse of the forward step at a fixed offset.
	for i := len(rotors) - 1; i >= 0; i-- {
		sym = mod(rotors[i].reverse(sym) - m.offsets[i])
	}

	return pb.Apply(sym)
}

// Step advances the rotors by one keystroke with odometer carry.
// The third rotor wraps silently.
func (m *Machine) Step() {
	m.processed++
	for i := range m.offsets {
		m.offsets[i]++
		if m.offsets[i] < Size {
			return
		}
		m.offsets[i] = 0
	}
}

// Transform validates s and enciphers text with a fresh machine.
//
// Running Transform on its own output with the same settings returns the
// upper-cased input.
func Transform(text string, s Settings) (string, error) {
	m, err := NewMachine(s)
	if err != nil {
		return "", err
	}
	return m.Transform(text), nil
}
