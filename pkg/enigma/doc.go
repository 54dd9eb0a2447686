// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package enigma implements a three-rotor electromechanical cipher machine.
//
// The machine is a reciprocal substitution cipher over the 26 letters A-Z,
// composed of a plugboard, three rotating rotors and a static reflector.
// Each letter is sent through the plugboard, forward through rotors 1, 2
// and 3, bounced off the reflector, back through rotors 3, 2 and 1, and
// through the plugboard again. After every letter the rotors advance like
// an odometer: rotor 1 on every letter, rotor 2 when rotor 1 wraps, rotor 3
// when rotor 2 wraps.
//
// # Reciprocity
//
// Running the machine twice with identical settings returns the original
// (upper-cased) text:
//
//	settings := enigma.Settings{Position: enigma.Position{1, 1, 1}, Plugboard: "PICTURES"}
//	ciphertext, _ := enigma.Transform("Hello World", settings)
//	plaintext, _ := enigma.Transform(ciphertext, settings)
//	// plaintext == "HELLO WORLD"
//
// # Pass-through
//
// Characters outside the alphabet (digits, punctuation, whitespace) are
// copied to the output unchanged and do not advance the rotors. Output
// letters are always upper-case; the original casing is not restored.
//
// # Validation
//
// All configuration is checked by Validate before any character is
// processed. Failures are reported through the sentinel errors in
// errors.go and can be matched with errors.Is.
//
// # Thread Safety
//
// The rotor catalog, the reflector and the alphabet are immutable and safe
// for concurrent use. A Machine carries mutable rotor offsets and must be
// confined to a single goroutine.
package enigma
