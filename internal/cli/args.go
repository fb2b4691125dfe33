// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// ARG PARSER - SUBCOMMAND ARGUMENT PARSING
// =============================================================================

// ArgParser splits subcommand arguments into flags and positionals.
//
// Supported forms:
//
//	--flag value     only for flags declared as taking a value
//	--flag=value
//	--flag           boolean
//	--               everything after is positional
//
// Example:
//
//	args := NewArgParser([]string{"list", "--limit", "5", "--json"}, "limit")
//	args.Subcommand()             // "list"
//	args.FlagIntOrDefault("limit", 20) // 5
//	args.BoolFlag("json")         // true
type ArgParser struct {
	flags      map[string]string
	boolFlags  map[string]bool
	positional []string
}

// NewArgParser parses raw. valueFlags names the flags that consume the
// following argument as their value; any other flag is boolean.
func NewArgParser(raw []string, valueFlags ...string) *ArgParser {
	p := &ArgParser{
		flags:     make(map[string]string),
		boolFlags: make(map[string]bool),
	}
	takesValue := make(map[string]bool, len(valueFlags))
	for _, f := range valueFlags {
		takesValue[f] = true
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]

		if arg == "--" {
			p.positional = append(p.positional, raw[i+1:]...)
			break
		}
		if !isFlagAssignment(arg) &&
			(!strings.HasPrefix(arg, "-") || arg == "-" || LooksLikeEquation(arg) || isNumber(arg)) {
			p.positional = append(p.positional, arg)
			continue
		}

		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		switch {
		case hasValue && (value == "true" || value == "false") && !takesValue[name]:
			p.boolFlags[name] = value == "true"
		case hasValue:
			p.flags[name] = value
		case takesValue[name] && i+1 < len(raw):
			p.flags[name] = raw[i+1]
			i++
		default:
			p.boolFlags[name] = true
		}
	}

	return p
}

// Subcommand returns the first positional argument, or "".
func (p *ArgParser) Subcommand() string {
	return p.Positional(0)
}

// Flag returns the value of a value flag, or "".
func (p *ArgParser) Flag(name string) string {
	return p.flags[strings.TrimLeft(name, "-")]
}

// FlagIntOrDefault returns the flag as an integer, or def when it is
// missing or not a number.
func (p *ArgParser) FlagIntOrDefault(name string, def int) int {
	n, err := strconv.Atoi(p.Flag(name))
	if err != nil {
		return def
	}
	return n
}

// BoolFlag reports whether a boolean flag was given.
func (p *ArgParser) BoolFlag(name string) bool {
	return p.boolFlags[strings.TrimLeft(name, "-")]
}

// HasFlag reports whether name was given in either form.
func (p *ArgParser) HasFlag(name string) bool {
	name = strings.TrimLeft(name, "-")
	_, hasString := p.flags[name]
	_, hasBool := p.boolFlags[name]
	return hasString || hasBool
}

// Positional returns the positional argument at index, or "".
func (p *ArgParser) Positional(index int) string {
	if index < 0 || index >= len(p.positional) {
		return ""
	}
	return p.positional[index]
}

// PositionalFrom returns the positional arguments from index on.
func (p *ArgParser) PositionalFrom(index int) []string {
	if index < 0 || index >= len(p.positional) {
		return []string{}
	}
	return p.positional[index:]
}

// PositionalCount returns the number of positional arguments.
func (p *ArgParser) PositionalCount() int {
	return len(p.positional)
}

// =============================================================================
// HELPER FUNCTIONS FOR COMMON ARG PATTERNS
// =============================================================================

// LooksLikeEquation reports whether arg should be read as (part of) an
// equation even though it may start with '-', as in "-X^2 = 4".
func LooksLikeEquation(arg string) bool {
	return strings.ContainsAny(arg, "=^* \t") || strings.ContainsRune(arg, 'X')
}

// isFlagAssignment reports whether arg has the form --name=value with a
// plain identifier as name. "--X^2=4" is not one.
func isFlagAssignment(arg string) bool {
	rest, ok := strings.CutPrefix(arg, "--")
	if !ok {
		return false
	}
	name, _, found := strings.Cut(rest, "=")
	if !found || name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '_'):
		default:
			return false
		}
	}
	return true
}

// isNumber reports whether arg is a numeric value such as "-1".
func isNumber(arg string) bool {
	_, err := strconv.ParseFloat(arg, 64)
	return err == nil
}

// ParseIntWithValidation parses s and checks that it is positive.
func ParseIntWithValidation(s string, fieldName string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("%s is required", fieldName)
	}

	val, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", fieldName, err)
	}

	if val <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", fieldName, val)
	}

	return val, nil
}

// ParseBoolString parses a boolean from various string representations.
// Accepts: true/false, yes/no, y/n, 1/0, on/off (case-insensitive)
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1", "on":
		return true, nil
	case "false", "no", "n", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value: %s", s)
	}
}
