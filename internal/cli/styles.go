// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared output styling for the console.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// PromptStyle renders the input prompt
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")) // Cyan

	// AdminPromptStyle marks the elevated prompt
	AdminPromptStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("208")) // Orange

	// ErrorStyle renders failures
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")) // Red

	// HintStyle renders suggestions and usage hints
	HintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")) // Light gray

	// OutputStyle renders normal command output
	OutputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)
