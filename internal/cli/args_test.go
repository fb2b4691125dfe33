// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"
	"testing"
)

// =============================================================================
// ARG PARSER TESTS (args.go)
// =============================================================================

func TestArgParser_BasicParsing(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		valueFlags []string
		wantSub    string
		validate   func(*testing.T, *ArgParser)
	}{
		{
			name:    "simple subcommand",
			args:    []string{"stats"},
			wantSub: "stats",
		},
		{
			name:    "negative number is a value",
			args:    []string{"set", "output.precision", "-1"},
			wantSub: "set",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Positional(2) != "-1" {
					t.Errorf("Positional(2) = %q, want %q", p.Positional(2), "-1")
				}
			},
		},
		{
			name:       "declared value flag",
			args:       []string{"list", "--limit", "5"},
			valueFlags: []string{"limit"},
			wantSub:    "list",
			validate: func(t *testing.T, p *ArgParser) {
				if p.FlagIntOrDefault("limit", 20) != 5 {
					t.Errorf("FlagIntOrDefault(limit) = %d, want 5", p.FlagIntOrDefault("limit", 20))
				}
			},
		},
		{
			name:    "flag with equals",
			args:    []string{"list", "--limit=7"},
			wantSub: "list",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("limit") != "7" {
					t.Errorf("Flag(limit) = %q, want %q", p.Flag("limit"), "7")
				}
			},
		},
		{
			name:    "undeclared flag is boolean",
			args:    []string{"init", "--force", "extra"},
			wantSub: "init",
			validate: func(t *testing.T, p *ArgParser) {
				if !p.BoolFlag("force") {
					t.Error("BoolFlag(force) should be true")
				}
				if p.Positional(1) != "extra" {
					t.Errorf("Positional(1) = %q, want %q", p.Positional(1), "extra")
				}
			},
		},
		{
			name:    "explicit boolean value",
			args:    []string{"clear", "--confirm=false"},
			wantSub: "clear",
			validate: func(t *testing.T, p *ArgParser) {
				if p.BoolFlag("confirm") {
					t.Error("BoolFlag(confirm) should be false")
				}
				if !p.HasFlag("confirm") {
					t.Error("HasFlag(confirm) should be true")
				}
			},
		},
		{
			name:    "equals form confirms",
			args:    []string{"clear", "--confirm=true"},
			wantSub: "clear",
			validate: func(t *testing.T, p *ArgParser) {
				if !p.BoolFlag("confirm") {
					t.Error("BoolFlag(confirm) should be true")
				}
				if p.PositionalCount() != 1 {
					t.Errorf("PositionalCount() = %d, want 1", p.PositionalCount())
				}
			},
		},
		{
			name:       "equals form of declared value flag",
			args:       []string{"list", "--limit=7"},
			valueFlags: []string{"limit"},
			wantSub:    "list",
			validate: func(t *testing.T, p *ArgParser) {
				if got := p.FlagIntOrDefault("limit", 20); got != 7 {
					t.Errorf("FlagIntOrDefault(limit) = %d, want 7", got)
				}
				if p.PositionalCount() != 1 {
					t.Errorf("PositionalCount() = %d, want 1", p.PositionalCount())
				}
			},
		},
		{
			name:    "double dash ends flags",
			args:    []string{"set", "--", "repl.prompt", "--weird"},
			wantSub: "set",
			validate: func(t *testing.T, p *ArgParser) {
				if p.PositionalCount() != 3 {
					t.Errorf("PositionalCount() = %d, want 3", p.PositionalCount())
				}
				if p.HasFlag("weird") {
					t.Error("--weird after -- must stay positional")
				}
			},
		},
		{
			name:    "leading minus equation stays positional",
			args:    []string{"solve", "-X^2 = -4"},
			wantSub: "solve",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Positional(1) != "-X^2 = -4" {
					t.Errorf("Positional(1) = %q", p.Positional(1))
				}
			},
		},
		{
			name:    "multiple positional args",
			args:    []string{"set", "repl.prompt", "solve", ">"},
			wantSub: "set",
			validate: func(t *testing.T, p *ArgParser) {
				joined := strings.Join(p.PositionalFrom(2), " ")
				if joined != "solve >" {
					t.Errorf("PositionalFrom(2) joined = %q, want %q", joined, "solve >")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewArgParser(tt.args, tt.valueFlags...)
			if got := p.Subcommand(); got != tt.wantSub {
				t.Errorf("Subcommand() = %q, want %q", got, tt.wantSub)
			}
			if tt.validate != nil {
				tt.validate(t, p)
			}
		})
	}
}

func TestArgParser_OutOfRange(t *testing.T) {
	p := NewArgParser(nil)
	if p.Subcommand() != "" {
		t.Errorf("Subcommand() on empty = %q", p.Subcommand())
	}
	if p.Positional(-1) != "" || p.Positional(3) != "" {
		t.Error("out of range Positional should be empty")
	}
	if len(p.PositionalFrom(1)) != 0 {
		t.Error("PositionalFrom past the end should be empty")
	}
	if p.FlagIntOrDefault("limit", 20) != 20 {
		t.Error("missing flag should return the default")
	}
}

func TestIsFlagAssignment(t *testing.T) {
	tests := []struct {
		arg  string
		want bool
	}{
		{"--limit=7", true},
		{"--confirm=true", true},
		{"--max_entries=5", true},
		{"--no-history=1", true},
		{"--limit", false},
		{"-limit=7", false},
		{"--=7", false},
		{"--X^2=4", false},
		{"--2x=4", false},
		{"X^2 = 4", false},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			if got := isFlagAssignment(tt.arg); got != tt.want {
				t.Errorf("isFlagAssignment(%q) = %v, want %v", tt.arg, got, tt.want)
			}
		})
	}
}

func TestLooksLikeEquation(t *testing.T) {
	tests := []struct {
		arg  string
		want bool
	}{
		{"-X^2", true},
		{"-4*X", true},
		{"= 0", true},
		{"-X", true},
		{"-2 + 3", true},
		{"--json", false},
		{"-q", false},
		{"--limit", false},
		{"-1", false},
	}
	for _, tt := range tests {
		if got := LooksLikeEquation(tt.arg); got != tt.want {
			t.Errorf("LooksLikeEquation(%q) = %v, want %v", tt.arg, got, tt.want)
		}
	}
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"on", "TRUE", "yes", "1", " y "} {
		if v, err := ParseBoolString(s); err != nil || !v {
			t.Errorf("ParseBoolString(%q) = %v, %v; want true", s, v, err)
		}
	}
	for _, s := range []string{"off", "false", "No", "0"} {
		if v, err := ParseBoolString(s); err != nil || v {
			t.Errorf("ParseBoolString(%q) = %v, %v; want false", s, v, err)
		}
	}
	if _, err := ParseBoolString("maybe"); err == nil {
		t.Error("ParseBoolString(maybe) should fail")
	}
}

func TestParseIntWithValidation(t *testing.T) {
	if n, err := ParseIntWithValidation("12", "limit"); err != nil || n != 12 {
		t.Errorf("ParseIntWithValidation(12) = %d, %v", n, err)
	}
	for _, s := range []string{"", "abc", "0", "-3"} {
		if _, err := ParseIntWithValidation(s, "limit"); err == nil {
			t.Errorf("ParseIntWithValidation(%q) should fail", s)
		}
	}
}

// =============================================================================
// COMMAND PARSING TESTS (cli.go)
// =============================================================================

func withInteractive(t *testing.T, interactive bool) {
	t.Helper()
	prev := isInteractive
	isInteractive = func() bool { return interactive }
	t.Cleanup(func() { isInteractive = prev })
}

func TestParseArgs(t *testing.T) {
	withInteractive(t, true)

	tests := []struct {
		name     string
		argv     []string
		wantCmd  Command
		validate func(*testing.T, Args)
	}{
		{
			name:    "no args on a terminal starts the repl",
			argv:    nil,
			wantCmd: CmdREPL,
		},
		{
			name:    "bare equation",
			argv:    []string{"5 * X^0 + 4 * X^1 = 4 * X^0"},
			wantCmd: CmdSolve,
			validate: func(t *testing.T, a Args) {
				if a.Equation != "5 * X^0 + 4 * X^1 = 4 * X^0" {
					t.Errorf("Equation = %q", a.Equation)
				}
			},
		},
		{
			name:    "solve joins unquoted words",
			argv:    []string{"solve", "X^2", "=", "4"},
			wantCmd: CmdSolve,
			validate: func(t *testing.T, a Args) {
				if a.Equation != "X^2 = 4" {
					t.Errorf("Equation = %q, want %q", a.Equation, "X^2 = 4")
				}
			},
		},
		{
			name:    "leading minus without terminator",
			argv:    []string{"-X^2 = -4"},
			wantCmd: CmdSolve,
			validate: func(t *testing.T, a Args) {
				if a.Equation != "-X^2 = -4" {
					t.Errorf("Equation = %q", a.Equation)
				}
			},
		},
		{
			name:    "terminator keeps command words as equation",
			argv:    []string{"--json", "--", "explain"},
			wantCmd: CmdSolve,
			validate: func(t *testing.T, a Args) {
				if !a.JSON || a.Equation != "explain" {
					t.Errorf("JSON = %v, Equation = %q", a.JSON, a.Equation)
				}
			},
		},
		{
			name:    "explain with global flags after",
			argv:    []string{"explain", "X^1 = 2", "--precision", "3", "--strict"},
			wantCmd: CmdExplain,
			validate: func(t *testing.T, a Args) {
				if !a.PrecisionSet || a.Precision != 3 || !a.Strict {
					t.Errorf("Precision = %d (set %v), Strict = %v", a.Precision, a.PrecisionSet, a.Strict)
				}
				if a.Equation != "X^1 = 2" {
					t.Errorf("Equation = %q", a.Equation)
				}
			},
		},
		{
			name:    "precision equals form",
			argv:    []string{"--precision=-1", "X = 3"},
			wantCmd: CmdSolve,
			validate: func(t *testing.T, a Args) {
				if a.Precision != -1 || !a.PrecisionSet || a.Err != nil {
					t.Errorf("Precision = %d, Err = %v", a.Precision, a.Err)
				}
			},
		},
		{
			name:    "precision out of range",
			argv:    []string{"--precision", "99", "X = 3"},
			wantCmd: CmdSolve,
			validate: func(t *testing.T, a Args) {
				if a.Err == nil || GetExitCode(a.Err) != ExitUsageError {
					t.Errorf("Err = %v, want usage error", a.Err)
				}
			},
		},
		{
			name:    "precision missing value",
			argv:    []string{"--precision"},
			wantCmd: CmdREPL,
			validate: func(t *testing.T, a Args) {
				if a.Err == nil {
					t.Error("expected an error for --precision without a value")
				}
			},
		},
		{
			name:    "history subcommand args",
			argv:    []string{"history", "list", "--limit", "5", "--no-history"},
			wantCmd: CmdHistory,
			validate: func(t *testing.T, a Args) {
				if strings.Join(a.Raw, " ") != "list --limit 5" {
					t.Errorf("Raw = %v", a.Raw)
				}
				if !a.NoHistory {
					t.Error("NoHistory should be set")
				}
			},
		},
		{
			name:    "config path flag anywhere",
			argv:    []string{"config", "--config", "ci.toml", "show"},
			wantCmd: CmdConfig,
			validate: func(t *testing.T, a Args) {
				if a.ConfigPath != "ci.toml" || strings.Join(a.Raw, " ") != "show" {
					t.Errorf("ConfigPath = %q, Raw = %v", a.ConfigPath, a.Raw)
				}
			},
		},
		{
			name:    "quiet and verbose",
			argv:    []string{"-q", "-v", "X = 1"},
			wantCmd: CmdSolve,
			validate: func(t *testing.T, a Args) {
				if !a.Quiet || !a.Verbose {
					t.Errorf("Quiet = %v, Verbose = %v", a.Quiet, a.Verbose)
				}
			},
		},
		{name: "version", argv: []string{"version"}, wantCmd: CmdVersion},
		{name: "version flag", argv: []string{"--version"}, wantCmd: CmdVersion},
		{name: "help flag", argv: []string{"-h"}, wantCmd: CmdHelp},
		{name: "help", argv: []string{"HELP"}, wantCmd: CmdHelp},
		{name: "repl alias", argv: []string{"shell"}, wantCmd: CmdREPL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := ParseArgs(tt.argv)
			if cmd != tt.wantCmd {
				t.Errorf("command = %s, want %s", cmd, tt.wantCmd)
			}
			if tt.validate != nil {
				tt.validate(t, args)
			}
		})
	}
}

func TestParseArgs_PipedInputSolves(t *testing.T) {
	withInteractive(t, false)

	cmd, args := ParseArgs([]string{"--json"})
	if cmd != CmdSolve {
		t.Errorf("command = %s, want solve", cmd)
	}
	if args.Equation != "" {
		t.Errorf("Equation = %q, want empty", args.Equation)
	}
}

func TestCommandString(t *testing.T) {
	if CmdExplain.String() != "explain" || Command(99).String() != "unknown" {
		t.Errorf("unexpected names: %s, %s", CmdExplain, Command(99))
	}
}

// =============================================================================
// SUGGESTION AND CONFIRMATION TESTS (suggest.go, confirm.go)
// =============================================================================

func TestSuggestCommand(t *testing.T) {
	tests := []struct {
		input      string
		candidates []string
		want       string
	}{
		{"histroy", topLevelCommands, "history"},
		{"explian", topLevelCommands, "explain"},
		{"slove", topLevelCommands, "solve"},
		{"solve", topLevelCommands, ""},
		{"x", topLevelCommands, ""},
		{"banana", topLevelCommands, ""},
		{"stat", historySubcommands, "stats"},
		{"int", configSubcommands, "init"},
	}
	for _, tt := range tests {
		if got := SuggestCommand(tt.input, tt.candidates); got != tt.want {
			t.Errorf("SuggestCommand(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLooksLikeMistypedCommand(t *testing.T) {
	for _, s := range []string{"histroy", " explian "} {
		if !looksLikeMistypedCommand(s) {
			t.Errorf("looksLikeMistypedCommand(%q) = false", s)
		}
	}
	for _, s := range []string{"", "X", "2 * X^1 = 4", "hist ory", "Solve"} {
		if looksLikeMistypedCommand(s) {
			t.Errorf("looksLikeMistypedCommand(%q) = true", s)
		}
	}
}

func TestRequireConfirmation(t *testing.T) {
	var out strings.Builder

	ok, err := requireConfirmation(strings.NewReader(""), &out, "clear", ConfirmationOptions{ConfirmFlag: true})
	if !ok || err != nil {
		t.Errorf("--confirm: got %v, %v", ok, err)
	}

	_, err = requireConfirmation(strings.NewReader("y\n"), &out, "clear", ConfirmationOptions{JSONMode: true})
	if GetExitCode(err) != ExitUsageError {
		t.Errorf("JSON mode without --confirm: err = %v", err)
	}

	withInteractive(t, false)
	_, err = requireConfirmation(strings.NewReader("y\n"), &out, "clear", ConfirmationOptions{})
	if GetExitCode(err) != ExitUsageError {
		t.Errorf("non-terminal without --confirm: err = %v", err)
	}

	withInteractive(t, true)
	for input, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "yes": true} {
		ok, err := requireConfirmation(strings.NewReader(input), &out, "clear", ConfirmationOptions{})
		if err != nil || ok != want {
			t.Errorf("answer %q: got %v, %v; want %v", input, ok, err, want)
		}
	}
	if !strings.Contains(out.String(), "Are you sure you want to clear? [y/N]: ") {
		t.Errorf("prompt missing from output: %q", out.String())
	}
}
