// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection for computor.
//
// Colors are used only when stdout is a terminal, unless NO_COLOR,
// FORCE_COLOR or the output.color setting say otherwise.

package cli

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

// IsTTY returns true if stdin is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// =============================================================================
// TERMINAL WIDTH DETECTION
// =============================================================================

const (
	// DefaultTerminalWidth is the fallback width when detection fails
	DefaultTerminalWidth = 80

	// MinTerminalWidth is the narrowest width tables are laid out for
	MinTerminalWidth = 40
)

// GetTerminalWidth returns the current terminal width, or
// DefaultTerminalWidth when it cannot be determined.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	if width < MinTerminalWidth {
		return MinTerminalWidth
	}
	return width
}

// =============================================================================
// COLOR OUTPUT CONTROL
// =============================================================================

var (
	colorsEnabled     bool
	colorsEnabledOnce sync.Once
	colorsMu          sync.RWMutex
)

// detectColors applies NO_COLOR (https://no-color.org/), then FORCE_COLOR,
// then stdout TTY detection.
func detectColors() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	return IsStdoutTTY()
}

// ColorsEnabled returns true if colored output should be used.
func ColorsEnabled() bool {
	colorsEnabledOnce.Do(func() {
		enabled := detectColors()
		colorsMu.Lock()
		colorsEnabled = enabled
		colorsMu.Unlock()
	})
	colorsMu.RLock()
	defer colorsMu.RUnlock()
	return colorsEnabled
}

// ForceColorsEnabled overrides detection.
func ForceColorsEnabled(enabled bool) {
	colorsEnabledOnce.Do(func() {})
	colorsMu.Lock()
	colorsEnabled = enabled
	colorsMu.Unlock()
	lipgloss.SetColorProfile(GetColorProfile())
}

// ApplyColorMode applies the output.color setting: "always", "never", or
// "auto" to keep environment and TTY detection.
func ApplyColorMode(mode string) {
	switch strings.ToLower(mode) {
	case "always":
		ForceColorsEnabled(true)
	case "never":
		ForceColorsEnabled(false)
	default:
		ForceColorsEnabled(detectColors())
	}
}

// GetColorProfile returns the termenv profile matching ColorsEnabled.
func GetColorProfile() termenv.Profile {
	if !ColorsEnabled() {
		return termenv.Ascii
	}
	if p := termenv.ColorProfile(); p != termenv.Ascii {
		return p
	}
	// Forced colors on a non-terminal: termenv would report Ascii.
	return termenv.ANSI256
}
