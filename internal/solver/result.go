// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package solver

// Kind is a stable identifier for a Result variant, used in JSON output and
// the history store.
type Kind string

const (
	KindAllReals          Kind = "all_reals"
	KindDegenerate        Kind = "degenerate"
	KindLinear            Kind = "linear"
	KindTwoReal           Kind = "two_real"
	KindOneReal           Kind = "one_real"
	KindComplex           Kind = "complex"
	KindUnsupportedDegree Kind = "unsupported_degree"
)

// Result is one of AllReals, Degenerate, Linear, TwoReal, OneReal,
// ComplexConjugate or UnsupportedDegree.
type Result interface {
	Kind() Kind
	Degree() int
	isResult()
}

// AllReals means every coefficient cancelled: 0 = 0.
type AllReals struct{}

// Degenerate is a non-zero constant equal to zero: no solution.
type Degenerate struct {
	Constant float64
}

// Linear holds the single root of b*X + c = 0.
type Linear struct {
	X float64
}

// TwoReal holds the roots for a positive discriminant. X1 always uses +sqrt.
type TwoReal struct {
	X1, X2       float64
	Discriminant float64
}

// OneReal holds the repeated root for a zero discriminant.
type OneReal struct {
	X            float64
	Discriminant float64
}

// ComplexConjugate holds the un-normalized components of
// (RealPart ± i*ImaginaryMagnitude) / TwoA for a negative discriminant.
// RealPart is -b and ImaginaryMagnitude is sqrt(-discriminant); neither is
// divided by TwoA.
type ComplexConjugate struct {
	RealPart           float64
	ImaginaryMagnitude float64
	TwoA               float64
	Discriminant       float64
}

// UnsupportedDegree is returned for degrees above MaxSolvableDegree.
type UnsupportedDegree struct {
	Value int
}

func (AllReals) Kind() Kind          { return KindAllReals }
func (Degenerate) Kind() Kind        { return KindDegenerate }
func (Linear) Kind() Kind            { return KindLinear }
func (TwoReal) Kind() Kind           { return KindTwoReal }
func (OneReal) Kind() Kind           { return KindOneReal }
func (ComplexConjugate) Kind() Kind  { return KindComplex }
func (UnsupportedDegree) Kind() Kind { return KindUnsupportedDegree }

func (AllReals) Degree() int            { return 0 }
func (Degenerate) Degree() int          { return 0 }
func (Linear) Degree() int              { return 1 }
func (TwoReal) Degree() int             { return 2 }
func (OneReal) Degree() int             { return 2 }
func (ComplexConjugate) Degree() int    { return 2 }
func (r UnsupportedDegree) Degree() int { return r.Value }

func (AllReals) isResult()          {}
func (Degenerate) isResult()        {}
func (Linear) isResult()            {}
func (TwoReal) isResult()           {}
func (OneReal) isResult()           {}
func (ComplexConjugate) isResult()  {}
func (UnsupportedDegree) isResult() {}

// Simplified reports whether the denominator is 1, in which case the roots
// display without a division.
func (r ComplexConjugate) Simplified() bool {
	return r.TwoA == 1
}

// Roots returns the normalized roots, dividing both components by 2a.
func (r ComplexConjugate) Roots() (complex128, complex128) {
	re := r.RealPart / r.TwoA
	im := r.ImaginaryMagnitude / r.TwoA
	return complex(re, im), complex(re, -im)
}
