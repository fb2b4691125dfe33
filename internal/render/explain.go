// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"fmt"
	"strings"

	"github.com/jeranaias/computor/internal/equation"
	"github.com/jeranaias/computor/internal/solver"
)

// Explain builds a markdown walkthrough of how input was reduced and solved.
// The CLI renders it with glamour; the raw markdown is also a valid output.
func Explain(input string, m equation.CoefficientMap, res solver.Result, precision int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Solving `%s`\n\n", strings.TrimSpace(input))

	b.WriteString("## Reduced form\n\n")
	b.WriteString("Every term on the right side is moved to the left with its sign flipped, ")
	b.WriteString("and terms with the same exponent are added together.\n\n")
	fmt.Fprintf(&b, "```\n%s\n```\n\n", ReducedForm(m))

	b.WriteString("## Degree\n\n")
	fmt.Fprintf(&b, "The highest exponent with a non-zero coefficient is **%d**.\n\n", Degree(m))

	b.WriteString("## Solution\n\n")
	switch r := res.(type) {
	case solver.AllReals:
		b.WriteString("All coefficients cancel, leaving `0 = 0`. ")
		b.WriteString("The equation holds for every real number.\n")

	case solver.Degenerate:
		fmt.Fprintf(&b, "The equation reduces to `%s = 0`, which is never true. ", Number(r.Constant, -1))
		b.WriteString("There is no solution.\n")

	case solver.Linear:
		b1, c := m.Get(1), m.Get(0)
		fmt.Fprintf(&b, "For `b * X + c = 0` with b = %s and c = %s:\n\n", Number(b1, -1), Number(c, -1))
		fmt.Fprintf(&b, "```\nX = -c / b = %s\n```\n", Number(r.X, precision))

	case solver.TwoReal, solver.OneReal, solver.ComplexConjugate:
		explainQuadratic(&b, m, res, precision)

	case solver.UnsupportedDegree:
		fmt.Fprintf(&b, "Degree %d is above %d. Only polynomials of degree %d or lower are solved.\n",
			r.Value, solver.MaxSolvableDegree, solver.MaxSolvableDegree)
	}

	return b.String()
}

func explainQuadratic(b *strings.Builder, m equation.CoefficientMap, res solver.Result, precision int) {
	a, b1, c := m.Get(2), m.Get(1), m.Get(0)
	fmt.Fprintf(b, "Coefficients: a = %s, b = %s, c = %s.\n\n",
		Number(a, -1), Number(b1, -1), Number(c, -1))

	var d float64
	switch r := res.(type) {
	case solver.TwoReal:
		d = r.Discriminant
	case solver.OneReal:
		d = r.Discriminant
	case solver.ComplexConjugate:
		d = r.Discriminant
	}
	fmt.Fprintf(b, "```\nΔ = b² - 4ac = %s\n```\n\n", Number(d, precision))

	switch r := res.(type) {
	case solver.TwoReal:
		b.WriteString("Δ > 0, so there are two real roots `(-b ± √Δ) / 2a`:\n\n")
		fmt.Fprintf(b, "- x1 = %s\n- x2 = %s\n", Number(r.X1, precision), Number(r.X2, precision))
	case solver.OneReal:
		b.WriteString("Δ = 0, so there is one repeated root `-b / 2a`:\n\n")
		fmt.Fprintf(b, "- x = %s\n", Number(r.X, precision))
	case solver.ComplexConjugate:
		b.WriteString("Δ < 0, so the roots are complex conjugates `(-b ± i√(-Δ)) / 2a`:\n\n")
		plus, minus := ComplexRoots(r, precision)
		fmt.Fprintf(b, "- `%s`\n- `%s`\n", plus, minus)
		z1, z2 := r.Roots()
		fmt.Fprintf(b, "\nIn decimal form: %s and %s.\n", Complex(z1, precision), Complex(z2, precision))
	}
}

// Complex formats z as "a + bi" or "a - bi".
func Complex(z complex128, precision int) string {
	re, im := real(z), imag(z)
	sign := "+"
	if im < 0 {
		sign = "-"
		im = -im
	}
	return fmt.Sprintf("%s %s %si", Number(re, precision), sign, Number(im, precision))
}
