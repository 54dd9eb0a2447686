// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package cipher

import (
	"errors"

	"github.com/AleutianAI/AleutianEnigma/pkg/enigma"
)

// ErrorCode is a stable machine-readable name for a configuration error.
// It is used as the metrics "reason" label and in HTTP error bodies.
type ErrorCode string

const (
	CodeDuplicateRotor           ErrorCode = "duplicate_rotor"
	CodePositionOutOfRange       ErrorCode = "position_out_of_range"
	CodeOddPlugboardLength       ErrorCode = "odd_plugboard_length"
	CodeInvalidPlugboardSymbol   ErrorCode = "invalid_plugboard_symbol"
	CodeDuplicatePlugboardSymbol ErrorCode = "duplicate_plugboard_symbol"
	CodeUnknownRotor             ErrorCode = "unknown_rotor"
	CodeInvalidWiring            ErrorCode = "invalid_wiring"
	CodeInternal                 ErrorCode = "internal"
)

var codeTable = []struct {
	err  error
	code ErrorCode
}{
	{enigma.ErrDuplicateRotor, CodeDuplicateRotor},
	{enigma.ErrPositionOutOfRange, CodePositionOutOfRange},
	{enigma.ErrOddPlugboardLength, CodeOddPlugboardLength},
	{enigma.ErrInvalidPlugboardSymbol, CodeInvalidPlugboardSymbol},
	{enigma.ErrDuplicatePlugboardSymbol, CodeDuplicatePlugboardSymbol},
	{enigma.ErrUnknownRotor, CodeUnknownRotor},
	{enigma.ErrInvalidWiring, CodeInvalidWiring},
}

// Code classifies err. Errors outside the enigma taxonomy are CodeInternal.
func Code(err error) ErrorCode {
	for _, entry := range codeTable {
		if errors.Is(err, entry.err) {
			return entry.code
		}
	}
	return CodeInternal
}

// IsConfigError reports whether err is a caller configuration error, as
// opposed to an internal failure.
func IsConfigError(err error) bool {
	return err != nil && Code(err) != CodeInternal
}
