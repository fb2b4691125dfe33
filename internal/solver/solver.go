// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package solver classifies a reduced polynomial by its effective degree and
// computes closed-form roots for degrees 0 through 2.
//
// Solve never fails: "no solution" and "degree too high" are results, not
// errors, so callers can tell them apart from parse failures.
package solver

import (
	"math"

	"github.com/jeranaias/computor/internal/equation"
)

// MaxSolvableDegree is the highest degree Solve computes roots for.
const MaxSolvableDegree = 2

// EffectiveDegree returns the largest exponent with a non-zero coefficient,
// or -1 when every coefficient is zero.
func EffectiveDegree(m equation.CoefficientMap) int {
	degree := -1
	for exp, c := range m {
		if c != 0 && exp > degree {
			degree = exp
		}
	}
	return degree
}

// Solve dispatches on the effective degree of m. It does not modify m.
func Solve(m equation.CoefficientMap) Result {
	degree := EffectiveDegree(m)
	switch {
	case degree < 0:
		return AllReals{}
	case degree == 0:
		return Degenerate{Constant: m.Get(0)}
	case degree == 1:
		return solveLinear(m.Get(1), m.Get(0))
	case degree == 2:
		return solveQuadratic(m.Get(2), m.Get(1), m.Get(0))
	default:
		return UnsupportedDegree{Value: degree}
	}
}

func solveLinear(b, c float64) Result {
	return Linear{X: -c / b}
}

func solveQuadratic(a, b, c float64) Result {
	d := b*b - 4*a*c
	switch {
	case d > 0:
		sq := math.Sqrt(d)
		return TwoReal{
			X1:           (-b + sq) / (2 * a),
			X2:           (-b - sq) / (2 * a),
			Discriminant: d,
		}
	case d == 0:
		return OneReal{X: -b / (2 * a), Discriminant: d}
	default:
		return ComplexConjugate{
			RealPart:           -b,
			ImaginaryMagnitude: math.Sqrt(-d),
			TwoA:               2 * a,
			Discriminant:       d,
		}
	}
}
