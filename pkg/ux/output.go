// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package ux provides terminal output styling for the enigma CLI.
//
// Every printer takes an io.Writer so commands can write to cobra's
// configured output and tests can capture it. In machine personality the
// output is plain "label: value" lines with no styling.
package ux

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	ColorBrass   = lipgloss.Color("#C9A227") // Highlights, titles
	ColorSteel   = lipgloss.Color("#7F8C8D") // Borders, muted text
	ColorLamp    = lipgloss.Color("#F5E6A8") // Lampboard output
	ColorSuccess = lipgloss.Color("#2ECC71")
	ColorWarning = lipgloss.Color("#F4D03F")
	ColorError   = lipgloss.Color("#E74C3C")
)

// Styles provides pre-configured lipgloss styles.
var Styles = struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Lamp    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Box     lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(ColorBrass),
	Label:   lipgloss.NewStyle().Foreground(ColorSteel),
	Lamp:    lipgloss.NewStyle().Bold(true).Foreground(ColorLamp),
	Muted:   lipgloss.NewStyle().Foreground(ColorSteel),
	Success: lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning: lipgloss.NewStyle().Foreground(ColorWarning),
	Error:   lipgloss.NewStyle().Foreground(ColorError),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBrass).
		Padding(0, 1),
}

// Icon provides themed status icons.
type Icon string

const (
	IconSuccess Icon = "✓"
	IconWarning Icon = "⚠"
	IconError   Icon = "✗"
	IconArrow   Icon = "→"
)

// Render returns the icon with its style applied.
func (i Icon) Render() string {
	switch i {
	case IconSuccess:
		return Styles.Success.Render(string(i))
	case IconWarning:
		return Styles.Warning.Render(string(i))
	case IconError:
		return Styles.Error.Render(string(i))
	default:
		return Styles.Muted.Render(string(i))
	}
}

// Result prints a labelled cipher result, e.g. "Encrypted message: FGNTZ".
func Result(w io.Writer, label, value string) {
	if GetPersonality() == PersonalityMachine {
		fmt.Fprintf(w, "%s: %s\n", label, value)
		return
	}
	fmt.Fprintf(w, "%s %s %s\n", Styles.Label.Render(label), IconArrow.Render(), Styles.Lamp.Render(value))
}

// Raw prints value alone, for piping ciphertext.
func Raw(w io.Writer, value string) {
	fmt.Fprintln(w, value)
}

// Success prints a success line.
func Success(w io.Writer, text string) {
	switch GetPersonality() {
	case PersonalityMachine:
		fmt.Fprintf(w, "OK: %s\n", text)
	case PersonalityMinimal:
		fmt.Fprintf(w, "%s %s\n", IconSuccess.Render(), text)
	default:
		fmt.Fprintf(w, "%s %s\n", IconSuccess.Render(), Styles.Success.Render(text))
	}
}

// Warning prints a warning line.
func Warning(w io.Writer, text string) {
	switch GetPersonality() {
	case PersonalityMachine:
		fmt.Fprintf(w, "WARN: %s\n", text)
	case PersonalityMinimal:
		fmt.Fprintf(w, "%s %s\n", IconWarning.Render(), text)
	default:
		fmt.Fprintf(w, "%s %s\n", IconWarning.Render(), Styles.Warning.Render(text))
	}
}

// Error prints an error line.
func Error(w io.Writer, text string) {
	switch GetPersonality() {
	case PersonalityMachine:
		fmt.Fprintf(w, "ERROR: %s\n", text)
	case PersonalityMinimal:
		fmt.Fprintf(w, "%s %s\n", IconError.Render(), text)
	default:
		fmt.Fprintf(w, "%s %s\n", IconError.Render(), Styles.Error.Render(text))
	}
}

// Settings prints the machine configuration as aligned "key: value"
// lines, boxed unless the personality is minimal or machine.
func Settings(w io.Writer, title string, rows [][2]string) {
	level := GetPersonality()
	if level == PersonalityMachine {
		for _, row := range rows {
			fmt.Fprintf(w, "%s: %s\n", row[0], row[1])
		}
		return
	}

	width := 0
	for _, row := range rows {
		if len(row[0]) > width {
			width = len(row[0])
		}
	}
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, Styles.Title.Render(title))
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%s  %s",
			Styles.Label.Render(fmt.Sprintf("%-*s", width, row[0])), row[1]))
	}
	body := strings.Join(lines, "\n")

	if level == PersonalityMinimal {
		fmt.Fprintln(w, body)
		return
	}
	fmt.Fprintln(w, Styles.Box.Render(body))
}

// Table prints rows as tab-separated lines in machine mode and as aligned
// columns otherwise. The first row is the header.
func Table(w io.Writer, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	if GetPersonality() == PersonalityMachine {
		for _, row := range rows[1:] {
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
		return
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			width := 0
			if i < len(widths) {
				width = widths[i]
			}
			padded := fmt.Sprintf("%-*s", width, cell)
			if r == 0 {
				padded = Styles.Title.Render(padded)
			}
			cells[i] = padded
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}
