// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared lipgloss styles for computor output.

package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/computor/internal/util"
)

func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

// =============================================================================
// PALETTE
// =============================================================================

// ANSI 256 colors.
const (
	colorAccent = lipgloss.Color("39")
	colorRoot   = lipgloss.Color("82")
	colorGood   = lipgloss.Color("42")
	colorBad    = lipgloss.Color("196")
	colorWarn   = lipgloss.Color("214")
	colorMuted  = lipgloss.Color("242")
	colorLabel  = lipgloss.Color("245")
	colorRule   = lipgloss.Color("240")
)

var (
	// TitleStyle is used for command titles and headers
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	LabelStyle = lipgloss.NewStyle().Foreground(colorLabel)

	SuccessStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGood)
	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorBad)
	WarningStyle = lipgloss.NewStyle().Foreground(colorWarn)

	// DimStyle is used for secondary information and hints
	DimStyle = lipgloss.NewStyle().Foreground(colorMuted)

	SeparatorStyle = lipgloss.NewStyle().Foreground(colorRule)

	// SolutionStyle highlights roots below the narrative message.
	SolutionStyle = lipgloss.NewStyle().Bold(true).Foreground(colorRoot)

	// PromptStyle marks REPL command names in /help.
	PromptStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
)

// labelWidth is the label column used by RenderLabel.
const labelWidth = 16

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// RenderSeparator renders a horizontal rule of width w (70 when w <= 0).
func RenderSeparator(w int) string {
	if w <= 0 {
		w = 70
	}
	return RenderConditional(SeparatorStyle, strings.Repeat("=", w))
}

// RenderLabel renders label padded to the default label column.
func RenderLabel(label string) string {
	return RenderLabelWidth(label, labelWidth)
}

// RenderLabelWidth renders label padded to width display cells. A label
// that does not fit still gets one space before its value.
func RenderLabelWidth(label string, width int) string {
	padded := util.PadRight(label, width)
	if util.Width(label) >= width {
		padded = label + " "
	}
	return RenderConditional(LabelStyle, padded)
}

// RenderField renders one "label  value" line without a trailing newline.
func RenderField(label string, value interface{}, width int) string {
	return RenderLabelWidth(label, width) + fmt.Sprint(value)
}

// RenderConditional renders text with style if colors are enabled,
// otherwise returns the text unmodified.
func RenderConditional(style lipgloss.Style, text string) string {
	if !ColorsEnabled() {
		return text
	}
	return style.Render(text)
}
