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
	"fmt"
	"strings"
)

// Reflector is a fixed involution over the alphabet with no fixed points.
type Reflector struct {
	table [Size]int
}

// reflectorWiring pairs each letter with the one thirteen places away:
// A<->N, B<->O, ... M<->Z.
const reflectorWiring = "NOPQRSTUVWXYZABCDEFGHIJKLM"

// DefaultReflector is the reflector installed in every machine.
var DefaultReflector = mustReflector(reflectorWiring)

func mustReflector(wiring string) Reflector {
	r, err := NewReflector(wiring)
	if err != nil {
		panic(fmt.Sprintf("enigma: reflector: %v", err))
	}
	return r
}

// NewReflector builds a reflector from a 26-letter wiring, where the letter
// at position i is the partner of Alphabet[i].
//
// The wiring must be an involution (r[r[x]] == x) with no fixed point
// (r[x] != x); otherwise the error wraps ErrInvalidReflector.
func NewReflector(wiring string) (Reflector, error) {
	wiring = strings.ToUpper(wiring)
	if len(wiring) != Size {
		return Reflector{}, fmt.Errorf("%w: want %d symbols, got %d", ErrInvalidReflector, Size, len(wiring))
	}

	var r Reflector
	for i := 0; i < Size; i++ {
		idx, err := IndexOf(rune(wiring[i]))
		if err != nil {
			return Reflector{}, fmt.Errorf("%w: %v", ErrInvalidReflector, err)
		}
		r.table[i] = idx
	}
	for i := 0; i < Size; i++ {
		if r.table[i] == i {
			return Reflector{}, fmt.Errorf("%w: %c maps to itself", ErrInvalidReflector, SymbolAt(i))
		}
		if r.table[r.table[i]] != i {
			return Reflector{}, fmt.Errorf("%w: %c -> %c is not mirrored",
				ErrInvalidReflector, SymbolAt(i), SymbolAt(r.table[i]))
		}
	}
	return r, nil
}

// Reflect returns the partner of symbol index i.
func (r Reflector) Reflect(i int) int {
	return r.table[i]
}

// Wiring returns the reflector as a 26-letter string.
func (r Reflector) Wiring() string {
	var b strings.Builder
	b.Grow(Size)
	for _, idx := range r.table {
		b.WriteRune(SymbolAt(idx))
	}
	return b.String()
}
