// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// suggest.go - Command suggestion for typo correction.
package cli

import (
	"strings"
)

// topLevelCommands are the words ParseArgs treats as commands. Anything
// else is read as an equation.
var topLevelCommands = []string{
	"solve", "explain", "repl", "shell", "history", "hist", "config", "doctor", "diag", "version", "help",
}

var (
	historySubcommands = []string{"list", "ls", "show", "stats", "clear"}
	configSubcommands  = []string{"show", "get", "set", "path", "init"}
)

// SuggestCommand returns the candidate closest to input, or "" when none is
// within a few edits. Edits allowed: 1 up to 3 characters, 2 up to 8, then 3.
func SuggestCommand(input string, candidates []string) string {
	input = strings.ToLower(input)

	// Don't suggest for very short inputs (likely intentional)
	if len(input) < 2 {
		return ""
	}

	maxDistance := 1
	if len(input) >= 4 {
		maxDistance = 2
	}
	if len(input) > 8 {
		maxDistance = 3
	}

	bestMatch := ""
	bestDistance := -1
	for _, cmd := range candidates {
		distance := levenshteinDistance(input, cmd)
		if distance == 0 {
			return ""
		}
		if distance <= maxDistance && (bestDistance == -1 || distance < bestDistance) {
			bestDistance = distance
			bestMatch = cmd
		}
	}
	return bestMatch
}

// didYouMean formats a suggestion suffix for an error reason.
func didYouMean(input string, candidates []string) string {
	if s := SuggestCommand(input, candidates); s != "" {
		return " (did you mean '" + s + "'?)"
	}
	return ""
}

// looksLikeMistypedCommand reports whether an equation that failed to parse
// was probably a command name: a single lowercase word with no digits or X.
func looksLikeMistypedCommand(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	for _, r := range text {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// levenshteinDistance calculates the edit distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	rows := len(s1) + 1
	cols := len(s2) + 1

	// Two rows instead of the full matrix
	prev := make([]int, cols)
	curr := make([]int, cols)
	for j := 0; j < cols; j++ {
		prev[j] = j
	}

	for i := 1; i < rows; i++ {
		curr[0] = i
		for j := 1; j < cols; j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[cols-1]
}
