// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/computor/internal/equation"
)

// =============================================================================
// DEGREE TESTS
// =============================================================================

func TestEffectiveDegree(t *testing.T) {
	tests := []struct {
		name string
		m    equation.CoefficientMap
		want int
	}{
		{"empty", equation.CoefficientMap{}, -1},
		{"all zero", equation.CoefficientMap{0: 0, 3: 0}, -1},
		{"constant", equation.CoefficientMap{0: 7}, 0},
		{"zero leading key ignored", equation.CoefficientMap{0: 1, 1: 2, 2: 0}, 1},
		{"high degree", equation.CoefficientMap{0: 1, 5: -2}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, EffectiveDegree(tt.m))
		})
	}
}

// =============================================================================
// SOLVE TESTS
// =============================================================================

func TestSolve_AllReals(t *testing.T) {
	m, err := equation.Parse("5 * X^0 = 5 * X^0")
	require.NoError(t, err)

	res := Solve(m)
	require.Equal(t, AllReals{}, res)
	require.Equal(t, KindAllReals, res.Kind())
	require.Equal(t, 0, res.Degree())
}

func TestSolve_Degenerate(t *testing.T) {
	res := Solve(equation.CoefficientMap{0: 3, 1: 0, 2: 0})
	require.Equal(t, Degenerate{Constant: 3}, res)
	require.Equal(t, KindDegenerate, res.Kind())
}

func TestSolve_Linear(t *testing.T) {
	m, err := equation.Parse("5 * X^0 + 4 * X^1 = 4 * X^0")
	require.NoError(t, err)
	require.True(t, m.Equal(equation.CoefficientMap{0: 1, 1: 4}))

	res := Solve(m)
	require.Equal(t, Linear{X: -0.25}, res)
	require.Equal(t, 1, res.Degree())
}

func TestSolve_LinearWithoutConstant(t *testing.T) {
	res := Solve(equation.CoefficientMap{1: 3})
	lin, ok := res.(Linear)
	require.True(t, ok, "want Linear, got %T", res)
	require.Zero(t, lin.X)
}

func TestSolve_TwoRealOrder(t *testing.T) {
	m, err := equation.Parse("X^2 = 4")
	require.NoError(t, err)

	res := Solve(m)
	two, ok := res.(TwoReal)
	require.True(t, ok, "want TwoReal, got %T", res)
	require.Equal(t, 2.0, two.X1)
	require.Equal(t, -2.0, two.X2)
	require.Equal(t, 16.0, two.Discriminant)
}

func TestSolve_TwoRealNegativeLeading(t *testing.T) {
	// -X^2 + 1 = 0: x1 uses +sqrt even though it is the smaller root.
	res := Solve(equation.CoefficientMap{2: -1, 0: 1})
	two, ok := res.(TwoReal)
	require.True(t, ok, "want TwoReal, got %T", res)
	require.Equal(t, -1.0, two.X1)
	require.Equal(t, 1.0, two.X2)
}

func TestSolve_OneReal(t *testing.T) {
	m, err := equation.Parse("1 * X^2 + 2 * X^1 + 1 * X^0 = 0")
	require.NoError(t, err)

	res := Solve(m)
	require.Equal(t, OneReal{X: -1, Discriminant: 0}, res)
	require.Equal(t, KindOneReal, res.Kind())
}

func TestSolve_ComplexConjugate(t *testing.T) {
	m, err := equation.Parse("5 * X^0 + 4 * X^1 + 4 * X^2 = 1 * X^0 + 0 * X^1 + 0 * X^2")
	require.NoError(t, err)

	res := Solve(m)
	cc, ok := res.(ComplexConjugate)
	require.True(t, ok, "want ComplexConjugate, got %T", res)
	require.Equal(t, -4.0, cc.RealPart)
	require.Equal(t, math.Sqrt(48), cc.ImaginaryMagnitude)
	require.Equal(t, 8.0, cc.TwoA)
	require.Equal(t, -48.0, cc.Discriminant)
	require.False(t, cc.Simplified())

	r1, r2 := cc.Roots()
	require.InDelta(t, -0.5, real(r1), 1e-12)
	require.InDelta(t, math.Sqrt(48)/8, imag(r1), 1e-12)
	require.Equal(t, r1, complex(real(r2), -imag(r2)))
}

func TestSolve_ComplexSimplified(t *testing.T) {
	// 0.5 X^2 + 2 = 0: 2a == 1.
	res := Solve(equation.CoefficientMap{2: 0.5, 0: 2})
	cc, ok := res.(ComplexConjugate)
	require.True(t, ok, "want ComplexConjugate, got %T", res)
	require.True(t, cc.Simplified())
	require.Equal(t, 2.0, cc.ImaginaryMagnitude)
}

func TestSolve_UnsupportedDegree(t *testing.T) {
	m, err := equation.Parse("1 * X^3 = 0")
	require.NoError(t, err)

	res := Solve(m)
	require.Equal(t, UnsupportedDegree{Value: 3}, res)
	require.Equal(t, 3, res.Degree())
	require.Equal(t, KindUnsupportedDegree, res.Kind())
}

func TestSolve_HighDegreeCancels(t *testing.T) {
	m, err := equation.Parse("2 * X^4 + 1 * X^1 = 2 * X^4 + 3 * X^0")
	require.NoError(t, err)
	require.Equal(t, Linear{X: 3}, Solve(m))
}

func TestSolve_Idempotent(t *testing.T) {
	m := equation.CoefficientMap{0: 4, 1: 4, 2: 4}
	before := equation.CoefficientMap{0: 4, 1: 4, 2: 4}

	first := Solve(m)
	second := Solve(m)
	require.Equal(t, first, second)
	require.Equal(t, before, m, "Solve must not modify its input")
}
