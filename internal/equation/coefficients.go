// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package equation

import "sort"

// Term is a single signed "coefficient * X^exponent" atom.
type Term struct {
	Coefficient float64
	Exponent    int
}

// CoefficientMap maps an exponent to its net coefficient in the reduced
// form. A key whose value is exactly zero is not a term.
type CoefficientMap map[int]float64

// Get returns the coefficient for exp, or 0 when absent.
func (m CoefficientMap) Get(exp int) float64 {
	return m[exp]
}

// Add accumulates a term into the map.
func (m CoefficientMap) Add(t Term) {
	m[t.Exponent] += t.Coefficient
}

// Subtract accumulates the negation of a term into the map.
func (m CoefficientMap) Subtract(t Term) {
	m[t.Exponent] -= t.Coefficient
}

// Exponents returns every key in ascending order, zero-valued keys included.
func (m CoefficientMap) Exponents() []int {
	exps := make([]int, 0, len(m))
	for exp := range m {
		exps = append(exps, exp)
	}
	sort.Ints(exps)
	return exps
}

// Terms returns the non-zero terms in ascending exponent order.
func (m CoefficientMap) Terms() []Term {
	terms := make([]Term, 0, len(m))
	for _, exp := range m.Exponents() {
		if c := m[exp]; c != 0 {
			terms = append(terms, Term{Coefficient: c, Exponent: exp})
		}
	}
	return terms
}

// IsZero reports whether every coefficient nets to zero.
func (m CoefficientMap) IsZero() bool {
	for _, c := range m {
		if c != 0 {
			return false
		}
	}
	return true
}

// Compact returns a copy without zero-valued keys.
func (m CoefficientMap) Compact() CoefficientMap {
	out := make(CoefficientMap, len(m))
	for exp, c := range m {
		if c != 0 {
			out[exp] = c
		}
	}
	return out
}

// Equal compares two maps, treating zero-valued keys as absent.
func (m CoefficientMap) Equal(other CoefficientMap) bool {
	a, b := m.Compact(), other.Compact()
	if len(a) != len(b) {
		return false
	}
	for exp, c := range a {
		if oc, ok := b[exp]; !ok || oc != c {
			return false
		}
	}
	return true
}
