// Package ui provides terminal output and prompt helpers for the skel
// commands.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// UI writes user-facing messages, colorized when the terminal allows.
type UI struct {
	output         io.Writer
	nonInteractive bool // If true, don't prompt user for input

	colorInfo    *color.Color
	colorSuccess *color.Color
	colorWarning *color.Color
	colorError   *color.Color
	colorBold    *color.Color
}

// New creates a UI writing to stderr, leaving stdout for command output.
func New() *UI {
	return &UI{
		output:       os.Stderr,
		colorInfo:    color.New(color.FgBlue),
		colorSuccess: color.New(color.FgGreen),
		colorWarning: color.New(color.FgYellow),
		colorError:   color.New(color.FgRed),
		colorBold:    color.New(color.Bold),
	}
}

// NewWithWriter creates a UI with a custom output writer (useful for testing).
func NewWithWriter(w io.Writer) *UI {
	u := New()
	u.output = w
	return u
}

// SetNonInteractive enables or disables non-interactive mode. In
// non-interactive mode prompts resolve to their defaults.
func (u *UI) SetNonInteractive(enabled bool) {
	u.nonInteractive = enabled
}

// IsNonInteractive reports whether prompting is disabled.
func (u *UI) IsNonInteractive() bool {
	return u.nonInteractive
}

// Info prints an informational message.
func (u *UI) Info(msg string) {
	u.colorInfo.Fprintf(u.output, "[i] %s\n", msg)
}

// Infof prints a formatted informational message.
func (u *UI) Infof(format string, args ...any) {
	u.Info(fmt.Sprintf(format, args...))
}

// Success prints a success message.
func (u *UI) Success(msg string) {
	u.colorSuccess.Fprintf(u.output, "[✓] %s\n", msg)
}

// Successf prints a formatted success message.
func (u *UI) Successf(format string, args ...any) {
	u.Success(fmt.Sprintf(format, args...))
}

// Warning prints a warning message.
func (u *UI) Warning(msg string) {
	u.colorWarning.Fprintf(u.output, "[!] %s\n", msg)
}

// Warningf prints a formatted warning message.
func (u *UI) Warningf(format string, args ...any) {
	u.Warning(fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (u *UI) Error(msg string) {
	u.colorError.Fprintf(u.output, "[✗] %s\n", msg)
}

// Errorf prints a formatted error message.
func (u *UI) Errorf(format string, args ...any) {
	u.Error(fmt.Sprintf(format, args...))
}

// Print prints a plain message without formatting.
func (u *UI) Print(msg string) {
	fmt.Fprintln(u.output, msg)
}

// Printf prints a formatted plain message.
func (u *UI) Printf(format string, args ...any) {
	fmt.Fprintf(u.output, format+"\n", args...)
}

// Bold prints bold text.
func (u *UI) Bold(msg string) {
	u.colorBold.Fprintln(u.output, msg)
}
