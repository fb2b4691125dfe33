// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command-line parsing for computor.

package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/jeranaias/computor/internal/config"
)

// Version information (can be overridden at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// isInteractive decides between the REPL and batch stdin when no equation
// is given. Tests replace it.
var isInteractive = IsTTY

// Command represents the CLI command to execute.
type Command int

const (
	CmdSolve Command = iota
	CmdExplain
	CmdREPL
	CmdHistory
	CmdConfig
	CmdDoctor
	CmdVersion
	CmdHelp
)

func (c Command) String() string {
	switch c {
	case CmdSolve:
		return "solve"
	case CmdExplain:
		return "explain"
	case CmdREPL:
		return "repl"
	case CmdHistory:
		return "history"
	case CmdConfig:
		return "config"
	case CmdDoctor:
		return "doctor"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet      bool
	Verbose    bool
	JSON       bool
	Strict     bool
	NoHistory  bool
	ConfigPath string

	// Precision is only meaningful when PrecisionSet is true.
	Precision    int
	PrecisionSet bool

	// Equation is the joined positional text for solve and explain.
	Equation string

	// Raw holds the arguments after the command name, for subcommands.
	Raw []string

	// Err is a global flag error, reported before any command runs.
	Err error
}

const usageText = `computor - solve polynomial equations of degree 2 or lower

Usage:
  computor "<equation>"              Solve an equation (same as solve)
  computor solve "<equation>"        Print reduced form, degree and solutions
  computor explain "<equation>"      Step-by-step explanation in markdown
  computor repl                      Interactive prompt (default on a terminal)
  computor history [subcommand]      Previously solved equations
  computor config [subcommand]       View and change configuration
  computor doctor                    Check config, history log and terminal
  computor version                   Show version information
  computor help                      Show this help

With no equation and stdin not a terminal, each input line is solved.

Equation syntax:
  Terms are written "a * X^p" and joined with + or -, one '=' per equation.
  "X^2" means 1 * X^2 and a bare number "4" means 4 * X^0.
  Example: "5 * X^0 + 4 * X^1 - 9.3 * X^2 = 1 * X^0"

History Commands:
  computor history list [--limit N]  List recent entries (default: 20)
  computor history show <id>         Show one entry (an id prefix works)
  computor history stats             Count entries per result kind
  computor history clear --confirm   Delete every entry

Config Commands:
  computor config show               Print the effective configuration
  computor config get <key>          Print one value (e.g. output.precision)
  computor config set <key> <value>  Change one value in the config file
  computor config path               Print the config file location
  computor config init [--force]     Write a default config file

REPL Commands:
  /help                              Show REPL commands
  /precision N                       Round solutions to N decimals
  /strict on|off                     Reject terms above X^2 after reduction
  /explain <equation>                Explain instead of solve
  /history                           Recent entries from the history log
  /quit                              Exit (Ctrl+D also works)

Global Flags:
  --json            Output in JSON format
  -q, --quiet       Print only the solutions
  -v, --verbose     Debug logging on stderr
  --precision N     Decimals in solutions (-1 for shortest exact form)
  --strict          Reject terms above X^2 after reduction
  --no-history      Do not record this run in the history log
  --config PATH     Use PATH instead of ~/.computor/config.toml
  --                Treat everything after as the equation

Exit Codes:
  0 solved, including "no solution" and degree above 2
  2 usage error, 3 config error, 4 equation parse error, 7 not found

Examples:
  computor "5 * X^0 + 4 * X^1 = 4 * X^0"
  computor -- "-X^2 = -4"
  computor --precision 2 explain "X^2 + X^1 + 1 = 0"
  echo "2 * X^1 = 8" | computor --json

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "computor version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
}

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses argv (without the program name) into a command and its
// arguments.
func ParseArgs(argv []string) (Command, Args) {
	remaining, parsedArgs, explicit := parseGlobalFlags(argv)

	// No equation: prompt on a terminal, otherwise solve stdin line by line.
	if len(remaining) == 0 {
		if explicit || !isInteractive() {
			return CmdSolve, parsedArgs
		}
		return CmdREPL, parsedArgs
	}

	if explicit {
		parsedArgs.Equation = strings.Join(remaining, " ")
		return CmdSolve, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	rest := remaining[1:]
	parsedArgs.Raw = rest

	switch cmd {
	case "solve":
		parsedArgs.Equation = strings.Join(rest, " ")
		return CmdSolve, parsedArgs

	case "explain":
		parsedArgs.Equation = strings.Join(rest, " ")
		return CmdExplain, parsedArgs

	case "repl", "shell":
		return CmdREPL, parsedArgs

	case "history", "hist":
		return CmdHistory, parsedArgs

	case "config":
		return CmdConfig, parsedArgs

	case "doctor", "diag":
		return CmdDoctor, parsedArgs

	case "version", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		parsedArgs.Raw = nil
		parsedArgs.Equation = strings.Join(remaining, " ")
		return CmdSolve, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args. explicit reports a "--"
// terminator: everything after it is equation text.
func parseGlobalFlags(args []string) (remaining []string, parsedArgs Args, explicit bool) {
	// value returns the flag's value from "--flag=v" or the next argument.
	value := func(i *int, arg, name string) (string, bool) {
		if v, ok := strings.CutPrefix(arg, name+"="); ok {
			return v, true
		}
		if *i+1 < len(args) {
			*i++
			return args[*i], true
		}
		return "", false
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "--":
			return append(remaining, args[i+1:]...), parsedArgs, true
		case arg == "-q" || arg == "--quiet":
			parsedArgs.Quiet = true
		case arg == "-v" || arg == "--verbose":
			parsedArgs.Verbose = true
		case arg == "--json":
			parsedArgs.JSON = true
		case arg == "--strict":
			parsedArgs.Strict = true
		case arg == "--no-history":
			parsedArgs.NoHistory = true
		case arg == "--precision" || strings.HasPrefix(arg, "--precision="):
			v, ok := value(&i, arg, "--precision")
			n, err := strconv.Atoi(v)
			if !ok || err != nil || n < -1 || n > config.MaxPrecision {
				parsedArgs.Err = NewValidationErrorWithExample("precision", v,
					fmt.Sprintf("must be an integer from -1 to %d", config.MaxPrecision),
					"computor --precision 3 \"X^2 = 2\"")
				continue
			}
			parsedArgs.Precision = n
			parsedArgs.PrecisionSet = true
		case arg == "--config" || strings.HasPrefix(arg, "--config="):
			v, ok := value(&i, arg, "--config")
			if !ok || v == "" {
				parsedArgs.Err = ErrMissingArgument("config path", "computor --config ./computor.toml config show")
				continue
			}
			parsedArgs.ConfigPath = v
		default:
			remaining = append(remaining, arg)
		}
	}

	return remaining, parsedArgs, false
}

// =============================================================================
// SIMPLE COMMAND HANDLERS
// =============================================================================

// HandleVersion handles the "version" command.
func HandleVersion(args Args) error {
	if args.JSON {
		return NewJSONResponse("version", VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}).Print()
	}
	PrintVersion(os.Stdout)
	return nil
}

// HandleHelp handles the "help" command.
func HandleHelp() error {
	PrintUsage(os.Stdout)
	return nil
}
