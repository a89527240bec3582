// Package styles provides shared lipgloss styles for numclean output.
//
// This package centralizes color definitions so the run summary and the
// history table render consistently. Call Init after loading config.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Active colors, set by Init
var (
	Primary color.Color = DefaultTheme.Primary
	Success color.Color = DefaultTheme.Success
	Error   color.Color = DefaultTheme.Error
	Muted   color.Color = DefaultTheme.Muted
	Warning color.Color = DefaultTheme.Warning
)

// Common styles
var (
	// Bold applies bold formatting
	Bold = lipgloss.NewStyle().Bold(true)

	// PrimaryStyle applies the primary color
	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)

	// SuccessStyle applies the success color
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)

	// ErrorStyle applies the error color
	ErrorStyle = lipgloss.NewStyle().Foreground(Error)

	// MutedStyle applies the muted color
	MutedStyle = lipgloss.NewStyle().Foreground(Muted)

	// WarningStyle applies the warning color
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
)

// Symbols marks what happened to lines in the run summary
type Symbols struct {
	Kept     string
	Blank    string
	Rejected string
	Arrow    string
}

// DefaultSymbols is the symbol set used in summaries
var DefaultSymbols = Symbols{
	Kept:     "✓",
	Blank:    "◌",
	Rejected: "✕",
	Arrow:    "→",
}
