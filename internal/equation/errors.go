// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package equation

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrMalformedEquation is returned when the input does not contain exactly one '='.
	ErrMalformedEquation = errors.New("malformed equation")

	// ErrInvalidTerm is returned when a term does not match the "a * X^b" grammar.
	ErrInvalidTerm = errors.New("invalid term format")

	// ErrNumberRange is the cause of an InvalidTermError whose coefficient
	// or exponent is well formed but too large to represent.
	ErrNumberRange = errors.New("number out of range")

	// ErrExponentRange is returned in strict mode when the reduced equation
	// keeps a term above the configured maximum exponent.
	ErrExponentRange = errors.New("exponent out of range")
)

// MalformedEquationError reports the number of sides found after splitting on '='.
type MalformedEquationError struct {
	Sides int
}

func (e *MalformedEquationError) Error() string {
	return fmt.Sprintf("%s: expected exactly one '=' sign, found %d", ErrMalformedEquation, e.Sides-1)
}

func (e *MalformedEquationError) Unwrap() error {
	return ErrMalformedEquation
}

// InvalidTermError identifies the side and the text of the offending term,
// as written in the input. Err is an optional cause such as ErrNumberRange.
type InvalidTermError struct {
	Side Side
	Text string
	Err  error
}

func (e *InvalidTermError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s on the %s side: %q: %v", ErrInvalidTerm, e.Side, e.Text, e.Err)
	}
	return fmt.Sprintf("%s on the %s side: %q (terms must be written 'a * X^b')", ErrInvalidTerm, e.Side, e.Text)
}

func (e *InvalidTermError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidTerm, e.Err}
	}
	return []error{ErrInvalidTerm}
}

// ExponentRangeError is returned by strict parsing.
type ExponentRangeError struct {
	Exponent int
	Max      int
}

func (e *ExponentRangeError) Error() string {
	return fmt.Sprintf("%s: X^%d exceeds the maximum exponent %d", ErrExponentRange, e.Exponent, e.Max)
}

func (e *ExponentRangeError) Unwrap() error {
	return ErrExponentRange
}
