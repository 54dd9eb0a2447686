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
	"strconv"
	"strings"
)

// Rotor is a fixed permutation of the alphabet.
//
// The zero Rotor is not usable; obtain rotors from the catalog or NewRotor.
// Rotors are immutable values and safe to share between machines.
type Rotor struct {
	// ID is the catalog number (1-9), or 0 for a custom wiring.
	ID int

	// Name is the Roman numeral of a catalog rotor, or the caller-supplied
	// name of a custom one.
	Name string

	wiring  string
	inverse [Size]int
}

// catalogWirings are the nine stock rotors, in id order.
var catalogWirings = [...]string{
	"EGZWVONAHDCLFQMSIPJBYUKXTR",
	"FOBHMDKEXQNRAULPGSJVTYICZW",
	"ZJXESIUQLHAVRMDOYGTNFWPBKC",
	"RMDJXFUWGISLHVTCQNKYPBEZOA",
	"SGLCPQWZHKXAREONTFBVIYJUDM",
	"HVSICLTYKQUBXDWAJZOMFGPREN",
	"RZWQHFMVDBKICJLNTUXAGYPSOE",
	"LFKIJODBEGAMQPXVUHYSTCZRWN",
	"KOAEGVDHXPQZMLFTYWJNBRCIUS",
}

var romanNames = [...]string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX"}

// catalog is built once at package init and never mutated.
var catalog = buildCatalog()

func buildCatalog() []Rotor {
	rotors := make([]Rotor, len(catalogWirings))
	for i, w := range catalogWirings {
		r, err := NewRotor(romanNames[i], w)
		if err != nil {
			panic(fmt.Sprintf("enigma: catalog rotor %d: %v", i+1, err))
		}
		r.ID = i + 1
		rotors[i] = r
	}
	return rotors
}

// NewRotor builds a rotor from a 26-letter wiring.
//
// The wiring is upper-cased and must contain every alphabet symbol exactly
// once; otherwise the error wraps ErrInvalidWiring. The inverse permutation
// is computed here so the reverse pass never scans the wiring.
func NewRotor(name, wiring string) (Rotor, error) {
	wiring = strings.ToUpper(wiring)
	if len(wiring) != Size {
		return Rotor{}, fmt.Errorf("%w: want %d symbols, got %d", ErrInvalidWiring, Size, len(wiring))
	}

	r := Rotor{Name: name, wiring: wiring}
	var seen [Size]bool
	for pos := 0; pos < Size; pos++ {
		idx, err := IndexOf(rune(wiring[pos]))
		if err != nil {
			return Rotor{}, fmt.Errorf("%w: %v", ErrInvalidWiring, err)
		}
		if seen[idx] {
			return Rotor{}, fmt.Errorf("%w: %q appears more than once", ErrInvalidWiring, wiring[pos])
		}
		seen[idx] = true
		r.inverse[idx] = pos
	}
	return r, nil
}

// Wiring returns the 26-letter permutation string.
func (r Rotor) Wiring() string {
	return r.wiring
}

// Label is the name used in logs and listings.
func (r Rotor) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return "custom"
}

// IsZero reports whether r is the zero Rotor.
func (r Rotor) IsZero() bool {
	return r.wiring == ""
}

// forward maps a wiring position to the symbol index wired there.
func (r Rotor) forward(pos int) int {
	return int(r.wiring[pos] - 'A')
}

// reverse maps a symbol index to its position in the wiring.
func (r Rotor) reverse(sym int) int {
	return r.inverse[sym]
}

// Catalog returns the stock rotors in id order.
//
// The returned slice is a copy.
func Catalog() []Rotor {
	out := make([]Rotor, len(catalog))
	copy(out, catalog)
	return out
}

// RotorByID returns catalog rotor id (1-9).
func RotorByID(id int) (Rotor, error) {
	if id < 1 || id > len(catalog) {
		return Rotor{}, fmt.Errorf("%w: id %d (want 1..%d)", ErrUnknownRotor, id, len(catalog))
	}
	return catalog[id-1], nil
}

// RotorByName returns the catalog rotor with the given Roman numeral name.
// Matching is case-insensitive.
func RotorByName(name string) (Rotor, error) {
	for _, r := range catalog {
		if strings.EqualFold(r.Name, name) {
			return r, nil
		}
	}
	return Rotor{}, fmt.Errorf("%w: %q", ErrUnknownRotor, name)
}

// ParseRotor resolves a rotor selector.
//
// Accepted forms:
//   - catalog id: "3"
//   - catalog id with prefix: "rotor3"
//   - Roman numeral name: "III"
//   - a 26-letter wiring; a catalog wiring resolves to that entry, any other
//     permutation becomes a custom rotor
func ParseRotor(selector string) (Rotor, error) {
	s := strings.TrimSpace(selector)
	if s == "" {
		return Rotor{}, fmt.Errorf("%w: empty selector", ErrUnknownRotor)
	}

	if len(s) == Size {
		upper := strings.ToUpper(s)
		for _, r := range catalog {
			if r.wiring == upper {
				return r, nil
			}
		}
		return NewRotor("", upper)
	}

	lower := strings.ToLower(s)
	if id, err := strconv.Atoi(strings.TrimPrefix(lower, "rotor")); err == nil {
		return RotorByID(id)
	}
	return RotorByName(s)
}

// ParseSelection resolves three rotor selectors into a Selection.
func ParseSelection(selectors []string) (Selection, error) {
	var sel Selection
	if len(selectors) != len(sel) {
		return sel, fmt.Errorf("%w: want %d rotors, got %d", ErrUnknownRotor, len(sel), len(selectors))
	}
	for i, s := range selectors {
		r, err := ParseRotor(s)
		if err != nil {
			return sel, fmt.Errorf("%s rotor: %w", Slot(i), err)
		}
		sel[i] = r
	}
	return sel, nil
}
