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

// Alphabet is the ordered symbol set the machine operates on.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Size is the number of symbols in Alphabet.
const Size = len(Alphabet)

// IndexOf returns the 0-based position of r in Alphabet.
//
// Lower-case letters are not accepted here; callers normalise case first.
func IndexOf(r rune) (int, error) {
	if r < 'A' || r > 'Z' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSymbol, r)
	}
	return int(r - 'A'), nil
}

// SymbolAt returns the symbol at position i, wrapping i modulo Size.
//
// Negative positions wrap from the end, so SymbolAt(-1) is 'Z'.
func SymbolAt(i int) rune {
	return rune(Alphabet[mod(i)])
}

// Contains reports whether r is an upper-case member of Alphabet.
func Contains(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// normalize upper-cases an ASCII letter and reports whether the result
// belongs to the alphabet.
func normalize(r rune) (rune, bool) {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	return r, Contains(r)
}

// mod is a non-negative modulo over the alphabet size.
func mod(i int) int {
	i %= Size
	if i < 0 {
		i += Size
	}
	return i
}
