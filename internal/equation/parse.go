// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package equation

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Side names one half of an equation.
type Side string

const (
	Left  Side = "left"
	Right Side = "right"
)

// Options controls optional parse hardening.
type Options struct {
	// MaxExponent rejects reduced equations that keep a non-zero term above
	// this exponent. Zero disables the check, which lets the solver report
	// high degrees instead.
	MaxExponent int
}

// typographic maps operator look-alikes to the ASCII grammar. NFKC already
// folds full-width forms.
var typographic = strings.NewReplacer(
	"−", "-", // minus sign
	"–", "-", // en dash
	"×", "*", // multiplication sign
	"·", "*", // middle dot
	"⋅", "*", // dot operator
)

// Normalize folds Unicode look-alikes so that "５ × Ｘ^２ − 1 = 0" scans the
// same way as its ASCII spelling.
func Normalize(input string) string {
	return normalizeSource(input).text
}

// source is an input after Normalize, with the input span that produced
// each byte of text.
type source struct {
	input      string
	text       string
	start, end []int
}

// normalizeSource normalizes input one NFKC segment at a time, which gives
// the same text as normalizing it whole.
func normalizeSource(input string) source {
	src := source{input: input}
	var b strings.Builder
	for i := 0; i < len(input); {
		n := norm.NFKC.NextBoundaryInString(input[i:], true)
		if n <= 0 {
			n = len(input) - i
		}
		seg := typographic.Replace(norm.NFKC.String(input[i : i+n]))
		b.WriteString(seg)
		for j := 0; j < len(seg); j++ {
			src.start = append(src.start, i)
			src.end = append(src.end, i+n)
		}
		i += n
	}
	src.text = b.String()
	return src
}

// original returns the input that produced text[a:b].
func (s source) original(a, b int) string {
	if a >= b {
		return ""
	}
	return s.input[s.start[a]:s.end[b-1]]
}

// Parse converts an equation into its reduced coefficient map using the
// permissive exponent policy.
func Parse(input string) (CoefficientMap, error) {
	return ParseWithOptions(input, Options{})
}

// ParseWithOptions is Parse with optional hardening. Any error is terminal:
// no partial map is returned. Terms are reported in errors as the user
// wrote them, before normalization.
func ParseWithOptions(input string, opts Options) (CoefficientMap, error) {
	src := normalizeSource(input)
	left, right, err := SplitSides(src.text)
	if err != nil {
		return nil, err
	}
	rightAt := len(left) + 1

	coeffs := make(CoefficientMap)
	err = accumulate(coeffs, left, Left, func(a, b int) string {
		return src.original(a, b)
	})
	if err != nil {
		return nil, err
	}
	err = accumulate(coeffs, right, Right, func(a, b int) string {
		return src.original(rightAt+a, rightAt+b)
	})
	if err != nil {
		return nil, err
	}

	// Bound check runs after cancellation.
	if opts.MaxExponent > 0 {
		for _, t := range coeffs.Terms() {
			if t.Exponent > opts.MaxExponent {
				return nil, &ExponentRangeError{Exponent: t.Exponent, Max: opts.MaxExponent}
			}
		}
	}

	return coeffs, nil
}

// SplitSides splits an equation on its single '=' sign.
func SplitSides(input string) (left, right string, err error) {
	sides := strings.Split(input, "=")
	if len(sides) != 2 {
		return "", "", &MalformedEquationError{Sides: len(sides)}
	}
	return sides[0], sides[1], nil
}

// ParseSide returns the terms of one side in input order.
func ParseSide(text string, side Side) ([]Term, error) {
	return parseSide(text, side, func(a, b int) string { return text[a:b] })
}

// parseSide scans text; original maps a byte span of text back to the
// input for error reports.
func parseSide(text string, side Side, original func(a, b int) string) ([]Term, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	spans := termSpans(text)
	terms := make([]Term, 0, len(spans))
	for _, sp := range spans {
		term, err := scanTerm(text[sp[0]:sp[1]])
		if err != nil {
			tErr := &InvalidTermError{Side: side, Text: strings.TrimSpace(original(sp[0], sp[1]))}
			if err != errNoMatch {
				tErr.Err = err
			}
			return nil, tErr
		}
		terms = append(terms, term)
	}
	return terms, nil
}

func accumulate(coeffs CoefficientMap, text string, side Side, original func(a, b int) string) error {
	terms, err := parseSide(text, side, original)
	if err != nil {
		return err
	}
	for _, t := range terms {
		if side == Left {
			coeffs.Add(t)
		} else {
			coeffs.Subtract(t)
		}
	}
	return nil
}

// splitTerms cuts a side before every '+' or '-' so that each chunk carries
// its own sign. A sign that opens the side stays with the first term.
func splitTerms(text string) []string {
	spans := termSpans(text)
	chunks := make([]string, len(spans))
	for i, sp := range spans {
		chunks[i] = text[sp[0]:sp[1]]
	}
	return chunks
}

// termSpans returns the byte ranges splitTerms cuts text into.
func termSpans(text string) [][2]int {
	var spans [][2]int
	start := 0
	blank := true
	for i := 0; i < len(text); i++ {
		switch c := text[i]; {
		case c == '+' || c == '-':
			if !blank {
				spans = append(spans, [2]int{start, i})
				start = i
			}
			blank = false
		case c != ' ' && c != '\t' && c != '\n' && c != '\r':
			blank = false
		}
	}
	return append(spans, [2]int{start, len(text)})
}
