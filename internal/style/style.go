// Package style provides semantic terminal styling using lipgloss.
//
// This package is the only place where lipgloss colors are configured for
// plain output. All styling is semantic (Success, Error, Muted, etc.)
// rather than visual. When disabled, all helpers return the input string
// unchanged with no ANSI codes.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	enabled bool

	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	headerStyle  lipgloss.Style
	mutedStyle   lipgloss.Style
	promptStyle  lipgloss.Style
)

// Init initializes styling. It respects the NO_COLOR convention: when the
// environment variable is set, styling stays disabled regardless of enable.
// Call once from main before any output.
func Init(enable bool) {
	if os.Getenv("NO_COLOR") != "" {
		enabled = false
		return
	}
	enabled = enable
	if !enabled {
		return
	}

	// Force ANSI256 so both basic and extended colors render the same
	// regardless of TTY detection inside lipgloss.
	lipgloss.SetColorProfile(termenv.ANSI256)

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
}

// Enabled reports whether styling is active.
func Enabled() bool { return enabled }

// Success styles a success message.
func Success(s string) string { return render(successStyle, s) }

// Error styles an error message.
func Error(s string) string { return render(errorStyle, s) }

// Header styles a heading.
func Header(s string) string { return render(headerStyle, s) }

// Muted styles secondary text.
func Muted(s string) string { return render(mutedStyle, s) }

// Prompt styles the shell prompt.
func Prompt(s string) string { return render(promptStyle, s) }

func render(st lipgloss.Style, s string) string {
	if !enabled {
		return s
	}
	return st.Render(s)
}
