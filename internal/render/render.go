// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render turns coefficient maps and solver results into the text the
// CLI prints: the reduced form, the degree line and the solution narrative.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jeranaias/computor/internal/equation"
	"github.com/jeranaias/computor/internal/solver"
)

// DefaultPrecision matches six-decimal rounding of solutions.
const DefaultPrecision = 6

// Number formats f with at most precision decimals, trimming trailing zeros.
// A negative precision selects the shortest representation that parses back
// to exactly f. Negative zero prints as "0".
func Number(f float64, precision int) string {
	if precision < 0 {
		precision = -1
	}
	s := strconv.FormatFloat(f, 'f', precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}

// ReducedForm renders m as "c0 * X^0 + c1 * X^1 ... = 0" in ascending
// exponent order. Zero terms are omitted and numbers keep full precision so
// the output parses back to an equal map.
func ReducedForm(m equation.CoefficientMap) string {
	terms := m.Terms()
	if len(terms) == 0 {
		return "0 = 0"
	}

	var b strings.Builder
	for i, t := range terms {
		c := t.Coefficient
		switch {
		case i == 0 && c < 0:
			b.WriteString("-")
		case i > 0 && c < 0:
			b.WriteString(" - ")
		case i > 0:
			b.WriteString(" + ")
		}
		if c < 0 {
			c = -c
		}
		fmt.Fprintf(&b, "%s * X^%d", Number(c, -1), t.Exponent)
	}
	b.WriteString(" = 0")
	return b.String()
}

// DegreeLine renders the polynomial degree line.
func DegreeLine(degree int) string {
	return fmt.Sprintf("Polynomial degree: %d", degree)
}

// Degree is the degree printed for a map: the effective degree, or 0 when
// every coefficient cancelled.
func Degree(m equation.CoefficientMap) int {
	if d := solver.EffectiveDegree(m); d > 0 {
		return d
	}
	return 0
}

// Narrative returns the heading and root lines for a result.
func Narrative(res solver.Result, precision int) []string {
	switch r := res.(type) {
	case solver.AllReals:
		return []string{"Every real number is a solution."}
	case solver.Degenerate:
		return []string{"There is no solution."}
	case solver.Linear:
		return []string{"The solution is:", Number(r.X, precision)}
	case solver.TwoReal:
		return []string{
			"Discriminant is strictly positive, the two solutions are:",
			Number(r.X1, precision),
			Number(r.X2, precision),
		}
	case solver.OneReal:
		return []string{"Discriminant is zero, the solution is:", Number(r.X, precision)}
	case solver.ComplexConjugate:
		plus, minus := ComplexRoots(r, precision)
		return []string{"Discriminant is strictly negative, the two complex solutions are:", plus, minus}
	case solver.UnsupportedDegree:
		return []string{"The polynomial degree is strictly greater than 2, I can't solve."}
	default:
		return nil
	}
}

// ComplexRoots renders "(-b ± i * √(-d)) / 2a", dropping the division when
// 2a is 1. The radicand is printed, not its square root.
func ComplexRoots(r solver.ComplexConjugate, precision int) (string, string) {
	re := Number(r.RealPart, precision)
	rad := Number(-r.Discriminant, precision)
	if r.Simplified() {
		return fmt.Sprintf("%s + i * √%s", re, rad), fmt.Sprintf("%s - i * √%s", re, rad)
	}
	den := Number(r.TwoA, precision)
	return fmt.Sprintf("(%s + i * √%s) / %s", re, rad, den),
		fmt.Sprintf("(%s - i * √%s) / %s", re, rad, den)
}

// Summary is a one-line description of a result, used by history listings.
func Summary(res solver.Result, precision int) string {
	switch r := res.(type) {
	case solver.AllReals:
		return "all reals"
	case solver.Degenerate:
		return "no solution"
	case solver.Linear:
		return "x = " + Number(r.X, precision)
	case solver.TwoReal:
		return fmt.Sprintf("x1 = %s, x2 = %s", Number(r.X1, precision), Number(r.X2, precision))
	case solver.OneReal:
		return "x = " + Number(r.X, precision)
	case solver.ComplexConjugate:
		re := Number(r.RealPart, precision)
		rad := Number(-r.Discriminant, precision)
		if r.Simplified() {
			return fmt.Sprintf("%s ± i * √%s", re, rad)
		}
		return fmt.Sprintf("(%s ± i * √%s) / %s", re, rad, Number(r.TwoA, precision))
	case solver.UnsupportedDegree:
		return fmt.Sprintf("degree %d not supported", r.Value)
	default:
		return ""
	}
}

// Lines returns the complete plain-text report: reduced form, degree and
// narrative.
func Lines(m equation.CoefficientMap, res solver.Result, precision int) []string {
	lines := []string{
		"Reduced form: " + ReducedForm(m),
		DegreeLine(Degree(m)),
	}
	return append(lines, Narrative(res, precision)...)
}
