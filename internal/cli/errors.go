// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error types, exit codes and error display for computor.
//
// Handlers return errors and never exit themselves; main maps the error to
// an exit code with GetExitCode and prints it with DisplayError.

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jeranaias/computor/internal/config"
	"github.com/jeranaias/computor/internal/equation"
	"github.com/jeranaias/computor/internal/history"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess also covers "no solution" and "degree too high": those are
	// answers, not failures.
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitParseError indicates the equation could not be parsed
	ExitParseError = 4
	// ExitNotFoundError indicates a resource was not found
	ExitNotFoundError = 7
)

// =============================================================================
// ERROR TYPES FOR STRUCTURED ERROR HANDLING
// =============================================================================

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // Command that failed (e.g., "history", "config")
	Action  string // Action being performed (e.g., "show", "set")
	Reason  string // Human-readable reason
	Err     error  // Underlying error (if any)
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Command, e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Command, e.Action, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure for user input.
type ValidationError struct {
	Field   string // Field that failed validation
	Value   string // Value that was provided
	Reason  string // Why validation failed
	Example string // Example of valid value (optional)
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	if e.Value != "" {
		msg += fmt.Sprintf(" (got: %s)", e.Value)
	}
	if e.Example != "" {
		msg += fmt.Sprintf("\nExample: %s", e.Example)
	}
	return msg
}

// NotFoundError represents a resource not found error.
type NotFoundError struct {
	Resource string // Type of resource (e.g., "history entry", "config key")
	ID       string // Identifier that was not found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ConfigError wraps a failure to load, validate or save the config file.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// =============================================================================
// ERROR CONSTRUCTION HELPERS
// =============================================================================

// NewCommandError creates a new command error.
func NewCommandError(command, action, reason string, err error) error {
	return &CommandError{
		Command: command,
		Action:  action,
		Reason:  reason,
		Err:     err,
	}
}

// NewValidationError creates a new validation error.
func NewValidationError(field, value, reason string) error {
	return &ValidationError{
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// NewValidationErrorWithExample creates a validation error with an example.
func NewValidationErrorWithExample(field, value, reason, example string) error {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Reason:  reason,
		Example: example,
	}
}

// NewNotFoundError creates a new not found error.
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// ErrMissingArgument creates an error for missing required arguments.
func ErrMissingArgument(argName, usage string) error {
	return NewValidationErrorWithExample(argName, "", "required argument missing", usage)
}

// =============================================================================
// EXIT CODE MAPPING
// =============================================================================

// IsParseError reports whether err came from parsing an equation.
func IsParseError(err error) bool {
	return errors.Is(err, equation.ErrMalformedEquation) ||
		errors.Is(err, equation.ErrInvalidTerm) ||
		errors.Is(err, equation.ErrExponentRange)
}

// GetExitCode determines the appropriate exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if IsParseError(err) {
		return ExitParseError
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ExitUsageError
	}

	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) || errors.Is(err, history.ErrNotFound) {
		return ExitNotFoundError
	}

	var configErr *ConfigError
	var validateErrs config.ValidateErrors
	if errors.As(err, &configErr) || errors.As(err, &validateErrs) {
		return ExitConfigError
	}

	return ExitGeneralError
}

// =============================================================================
// ERROR DISPLAY HELPERS
// =============================================================================

// DisplayError prints err to stderr, or as a JSON error object on stdout in
// JSON mode.
func DisplayError(err error, jsonMode bool) {
	if err == nil {
		return
	}
	if jsonMode {
		DisplayErrorJSON(os.Stdout, err)
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", RenderConditional(ErrorStyle, "Error:"), err.Error())
}

// HandleErrorAndExit displays err and exits with its exit code.
func HandleErrorAndExit(err error, jsonMode bool) {
	if err == nil {
		return
	}
	DisplayError(err, jsonMode)
	os.Exit(GetExitCode(err))
}

// errorDetails builds the structured fields of a JSON error object.
func errorDetails(err error) map[string]interface{} {
	output := map[string]interface{}{
		"error":     err.Error(),
		"success":   false,
		"exit_code": GetExitCode(err),
	}

	var (
		malformed   *equation.MalformedEquationError
		invalidTerm *equation.InvalidTermError
		exponent    *equation.ExponentRangeError
		cmdErr      *CommandError
		valErr      *ValidationError
		nfErr       *NotFoundError
		cfgErr      *ConfigError
	)

	switch {
	case errors.As(err, &malformed):
		output["error_type"] = "malformed_equation"
		output["equals_signs"] = malformed.Sides - 1

	case errors.As(err, &invalidTerm):
		output["error_type"] = "invalid_term"
		output["side"] = string(invalidTerm.Side)
		output["term"] = invalidTerm.Text
		if invalidTerm.Err != nil {
			output["reason"] = invalidTerm.Err.Error()
		}

	case errors.As(err, &exponent):
		output["error_type"] = "exponent_out_of_range"
		output["exponent"] = exponent.Exponent
		output["max_exponent"] = exponent.Max

	case errors.As(err, &valErr):
		output["error_type"] = "validation_error"
		output["field"] = valErr.Field
		output["value"] = valErr.Value
		output["reason"] = valErr.Reason
		if valErr.Example != "" {
			output["example"] = valErr.Example
		}

	case errors.As(err, &nfErr):
		output["error_type"] = "not_found_error"
		output["resource"] = nfErr.Resource
		output["id"] = nfErr.ID

	case errors.As(err, &cfgErr):
		output["error_type"] = "config_error"
		output["path"] = cfgErr.Path

	case errors.As(err, &cmdErr):
		output["error_type"] = "command_error"
		output["command"] = cmdErr.Command
		output["action"] = cmdErr.Action
		output["reason"] = cmdErr.Reason

	default:
		output["error_type"] = "generic_error"
	}

	return output
}

// DisplayErrorJSON writes err as an indented JSON object to w.
func DisplayErrorJSON(w io.Writer, err error) {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if encErr := encoder.Encode(errorDetails(err)); encErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v (while encoding: %v)\n", err, encErr)
	}
}
