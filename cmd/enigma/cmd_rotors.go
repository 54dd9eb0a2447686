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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/AleutianEnigma/pkg/enigma"
	"github.com/AleutianAI/AleutianEnigma/pkg/ux"
)

func newRotorsCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rotors",
		Short: "List the stock rotors and the reflector",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := [][]string{{"ID", "NAME", "WIRING"}}
			for _, r := range enigma.Catalog() {
				rows = append(rows, []string{fmt.Sprint(r.ID), r.Name, r.Wiring()})
			}
			rows = append(rows, []string{"-", "UKW", enigma.DefaultReflector.Wiring()})
			ux.Table(cmd.OutOrStdout(), rows)
			return nil
		},
	}
}
