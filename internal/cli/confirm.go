// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// confirm.go - Confirmation handling for destructive commands.
//
// The rules, in order:
//   1. --confirm proceeds without prompting
//   2. --json requires --confirm (no interactive prompts in JSON mode)
//   3. stdin that is not a terminal requires --confirm
//   4. otherwise the user is asked

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ConfirmationOptions describes how a destructive command was invoked.
type ConfirmationOptions struct {
	// ConfirmFlag indicates --confirm was passed
	ConfirmFlag bool
	// JSONMode indicates --json was passed
	JSONMode bool
	// Command is the full command line to suggest, e.g. "computor history clear"
	Command string
}

// RequireConfirmation reports whether the user confirmed action. A false
// result with a nil error means the user declined.
func RequireConfirmation(action string, opts ConfirmationOptions) (bool, error) {
	return requireConfirmation(os.Stdin, os.Stdout, action, opts)
}

func requireConfirmation(in io.Reader, out io.Writer, action string, opts ConfirmationOptions) (bool, error) {
	if opts.ConfirmFlag {
		return true, nil
	}

	example := opts.Command + " --confirm"
	if opts.JSONMode {
		return false, NewValidationErrorWithExample("confirm", "", "JSON mode requires --confirm to "+action, example)
	}
	if !isInteractive() {
		return false, NewValidationErrorWithExample("confirm", "", "stdin is not a terminal, pass --confirm to "+action, example)
	}

	fmt.Fprintf(out, "Are you sure you want to %s? [y/N]: ", action)
	input, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && input == "" {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	response := strings.ToLower(strings.TrimSpace(input))
	return response == "y" || response == "yes", nil
}

// ShowCancellationMessage displays a standard cancellation message.
func ShowCancellationMessage(w io.Writer) {
	fmt.Fprintln(w, RenderConditional(DimStyle, "Cancelled."))
}
