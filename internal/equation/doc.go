// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package equation parses single-variable polynomial equations into a
// canonical coefficient map.
//
// An equation is a sum of terms of the form "a * X^b" on each side of a
// single '=' sign. Terms on the left side are added into the map and terms on
// the right side are subtracted, so the map always describes the reduced form
// "sum(c_i * X^i) = 0".
//
// # Grammar
//
//	equation := side '=' side
//	side     := [term] { ('+' | '-') term }
//	term     := [sign] number
//	          | [sign] number '*' 'X' '^' digits
//	          | [sign] ['*'] 'X' '^' digits
//	number   := digits ['.' [digits]] | '.' digits
//
// Whitespace is allowed between tokens except inside "X^digits". A term
// without a numeral has coefficient 1 (or -1 under a leading '-'). An empty
// side stands for the constant 0.
//
// A coefficient beyond float64 or an exponent beyond int fails with an
// InvalidTermError whose cause is ErrNumberRange. Errors quote terms as they
// appear in the input, before Unicode normalization.
//
// # Usage
//
//	coeffs, err := equation.Parse("5 * X^0 + 4 * X^1 = 4 * X^0")
//	if err != nil {
//	    return err
//	}
//	coeffs.Get(1) // 4
package equation
