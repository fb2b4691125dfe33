// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package equation

import (
	"errors"
	"strconv"
)

// Variable is the only symbol accepted in a term.
const Variable = 'X'

// errNoMatch is the scanTerm failure for text outside the term grammar.
var errNoMatch = errors.New("no match")

// scanner walks a single candidate term byte by byte. err records a numeral
// that matched the grammar but does not fit its type.
type scanner struct {
	src string
	pos int
	err error
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) accept(c byte) bool {
	if !s.eof() && s.src[s.pos] == c {
		s.pos++
		return true
	}
	return false
}

func (s *scanner) skipSpace() {
	for !s.eof() {
		switch s.src[s.pos] {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			s.pos++
		default:
			return
		}
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// number consumes digits with at most one decimal point. It reports false
// without consuming anything when no digit is present.
func (s *scanner) number() (float64, bool) {
	start := s.pos
	digits := 0
	dot := false
scan:
	for !s.eof() {
		c := s.src[s.pos]
		switch {
		case isDigit(c):
			digits++
		case c == '.' && !dot:
			dot = true
		default:
			break scan
		}
		s.pos++
	}
	if digits == 0 {
		s.pos = start
		return 0, false
	}
	v, err := strconv.ParseFloat(s.src[start:s.pos], 64)
	if err != nil {
		s.fail(err)
		s.pos = start
		return 0, false
	}
	return v, true
}

// fail keeps a range error from strconv so the caller can report it.
func (s *scanner) fail(err error) {
	if errors.Is(err, strconv.ErrRange) && s.err == nil {
		s.err = ErrNumberRange
	}
}

// integer consumes a non-negative decimal integer.
func (s *scanner) integer() (int, bool) {
	start := s.pos
	for !s.eof() && isDigit(s.src[s.pos]) {
		s.pos++
	}
	if s.pos == start {
		return 0, false
	}
	v, err := strconv.Atoi(s.src[start:s.pos])
	if err != nil {
		s.fail(err)
		return 0, false
	}
	return v, true
}

// scanTerm matches one candidate term against the term grammar. The whole
// text must be consumed for the match to succeed. It fails with
// ErrNumberRange for a well-formed numeral too large for its type and with
// errNoMatch otherwise.
func scanTerm(text string) (Term, error) {
	s := &scanner{src: text}
	t, ok := s.term()
	switch {
	case ok:
		return t, nil
	case s.err != nil:
		return Term{}, s.err
	default:
		return Term{}, errNoMatch
	}
}

func (s *scanner) term() (Term, bool) {
	s.skipSpace()

	sign := 1.0
	if s.accept('-') {
		sign = -1
	} else {
		s.accept('+')
	}
	s.skipSpace()

	coef, hasCoef := s.number()
	if s.err != nil {
		return Term{}, false
	}
	s.skipSpace()

	// Bare numeral: a constant term.
	if s.eof() {
		if !hasCoef {
			return Term{}, false
		}
		return Term{Coefficient: sign * coef, Exponent: 0}, true
	}

	star := s.accept('*')
	if hasCoef && !star {
		return Term{}, false
	}
	s.skipSpace()

	if !s.accept(Variable) || !s.accept('^') {
		return Term{}, false
	}
	exp, ok := s.integer()
	if !ok {
		return Term{}, false
	}
	s.skipSpace()
	if !s.eof() {
		return Term{}, false
	}

	if !hasCoef {
		coef = 1
	}
	return Term{Coefficient: sign * coef, Exponent: exp}, true
}
