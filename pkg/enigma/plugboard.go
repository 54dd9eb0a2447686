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
	"strings"
)

// Plugboard swaps configured letter pairs before and after the rotor stack.
//
// It is a partial involution: if A is wired to B then B is wired to A, and
// letters without a cable pass through unchanged. The zero Plugboard is
// the identity.
type Plugboard struct {
	// partner holds index+1 of the wired partner; 0 means unwired.
	partner [Size]int
	pairs   []string
}

// NewPlugboard builds a plugboard from a pair string such as "PICTURES"
// (P<->I, C<->T, U<->R, E<->S).
//
// The spec is upper-cased and spaces are removed before checking. Errors
// are *PlugboardError values wrapping ErrOddPlugboardLength,
// ErrInvalidPlugboardSymbol or ErrDuplicatePlugboardSymbol.
func NewPlugboard(spec string) (Plugboard, error) {
	spec = strings.ToUpper(strings.ReplaceAll(spec, " ", ""))

	var pb Plugboard
	if spec == "" {
		return pb, nil
	}
	if len(spec)%2 != 0 {
		return Plugboard{}, &PlugboardError{Length: len(spec), Err: ErrOddPlugboardLength}
	}

	var seen [Size]bool
	for _, r := range spec {
		if !Contains(r) {
			return Plugboard{}, &PlugboardError{Symbol: r, Length: len(spec), Err: ErrInvalidPlugboardSymbol}
		}
		idx := int(r - 'A')
		if seen[idx] {
			return Plugboard{}, &PlugboardError{Symbol: r, Length: len(spec), Err: ErrDuplicatePlugboardSymbol}
		}
		seen[idx] = true
	}

	for i := 0; i < len(spec); i += 2 {
		a, b := int(spec[i]-'A'), int(spec[i+1]-'A')
		pb.partner[a] = b + 1
		pb.partner[b] = a + 1
		pb.pairs = append(pb.pairs, spec[i:i+2])
	}
	return pb, nil
}

// Apply returns the partner of symbol index i, or i when unwired.
func (p Plugboard) Apply(i int) int {
	if to := p.partner[i]; to != 0 {
		return to - 1
	}
	return i
}

// Pairs returns the wired pairs in spec order, e.g. ["PI", "CT"].
func (p Plugboard) Pairs() []string {
	out := make([]string, len(p.pairs))
	copy(out, p.pairs)
	return out
}

// String renders the pairs separated by spaces.
func (p Plugboard) String() string {
	return strings.Join(p.pairs, " ")
}
