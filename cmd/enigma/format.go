// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	formatText   = "text"
	formatHex    = "hex"
	formatBase64 = "base64"
)

func checkFormat(format string) error {
	switch format {
	case formatText, formatHex, formatBase64:
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, hex, or base64)", format)
	}
}

// encodeOutput renders ciphertext in the requested format.
func encodeOutput(s, format string) (string, error) {
	switch format {
	case formatText:
		return s, nil
	case formatHex:
		return hex.EncodeToString([]byte(s)), nil
	case formatBase64:
		return base64.StdEncoding.EncodeToString([]byte(s)), nil
	default:
		return "", checkFormat(format)
	}
}

// decodeInput reverses encodeOutput so decrypt can take encoded ciphertext.
// Text is returned as is: surrounding spaces are part of the message.
func decodeInput(s, format string) (string, error) {
	switch format {
	case formatText:
		return s, nil
	case formatHex:
		b, err := hex.DecodeString(strings.TrimSpace(s))
		if err != nil {
			return "", fmt.Errorf("decode hex input: %w", err)
		}
		return string(b), nil
	case formatBase64:
		b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
		if err != nil {
			return "", fmt.Errorf("decode base64 input: %w", err)
		}
		return string(b), nil
	default:
		return "", checkFormat(format)
	}
}
