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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultReflector_IsInvolutionWithoutFixedPoints(t *testing.T) {
	for i := 0; i < Size; i++ {
		partner := DefaultReflector.Reflect(i)
		assert.NotEqual(t, i, partner, "%c must not reflect to itself", SymbolAt(i))
		assert.Equal(t, i, DefaultReflector.Reflect(partner), "%c must be mirrored", SymbolAt(i))
	}
}

func TestDefaultReflector_Pairs(t *testing.T) {
	assert.Equal(t, "NOPQRSTUVWXYZABCDEFGHIJKLM", DefaultReflector.Wiring())
	assert.Equal(t, 'N', SymbolAt(DefaultReflector.Reflect(0)))
	assert.Equal(t, 'M', SymbolAt(DefaultReflector.Reflect(25)))
}

func TestNewReflector_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		wiring string
	}{
		{"identity", Alphabet},
		{"not mirrored", "BCDEFGHIJKLMNOPQRSTUVWXYZA"},
		{"short", "NOPQ"},
		{"bad symbol", "NOPQRSTUVWXYZABCDEFGHIJKL1"},
		{"one fixed pair", "BACDEFGHIJKLMNOPQRSTUVWXYZ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReflector(tt.wiring)
			assert.ErrorIs(t, err, ErrInvalidReflector)
		})
	}
}

func TestNewReflector_AcceptsAdjacentPairs(t *testing.T) {
	r, err := NewReflector("badcfehgjilknmporqtsvuxwzy")
	require.NoError(t, err)
	assert.Equal(t, 1, r.Reflect(0))
	assert.Equal(t, 0, r.Reflect(1))
}
