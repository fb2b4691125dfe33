// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - Interactive equation prompt with line editing and history.

package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/jeranaias/computor/internal/config"
	"github.com/jeranaias/computor/internal/history"
	"github.com/jeranaias/computor/internal/util"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// lineEditor provides line editing and input history for the prompt.
type lineEditor struct {
	line        *liner.State
	historyFile string
}

func newLineEditor(historyFile string) *lineEditor {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	e := &lineEditor{line: line, historyFile: historyFile}
	if f, err := os.Open(historyFile); err == nil {
		if _, err := line.ReadHistory(f); err != nil {
			log.Printf("repl: reading %s: %v", historyFile, err)
		}
		f.Close()
	}
	return e
}

// ReadInput reads a line of input with the given prompt.
func (e *lineEditor) ReadInput(prompt string) (string, error) {
	input, err := e.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		e.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves input history with owner-only permissions and restores the
// terminal.
func (e *lineEditor) Close() {
	var buf bytes.Buffer
	if _, err := e.line.WriteHistory(&buf); err == nil && e.historyFile != "" {
		if err := util.WriteFileAtomic(e.historyFile, buf.Bytes(), 0600); err != nil {
			log.Printf("repl: saving %s: %v", e.historyFile, err)
		}
	}
	e.line.Close()
}

// =============================================================================
// SESSION STATE
// =============================================================================

// replSession holds the state of one interactive session. Settings changed
// with slash commands override the config, which is re-read for every line
// so that edits on disk apply without a restart.
type replSession struct {
	out   io.Writer
	args  Args
	store *history.Store

	precision *int
	strict    *bool

	solved int
}

func newReplSession(out io.Writer, args Args, store *history.Store) *replSession {
	return &replSession{out: out, args: args, store: store}
}

// options returns the solve settings for the next line.
func (s *replSession) options() (solveOptions, *config.Config) {
	cfg := config.Global()
	opts := resolveOptions(s.args, cfg)
	if s.precision != nil {
		opts.precision = *s.precision
	}
	if s.strict != nil {
		opts.maxExponent = 0
		if *s.strict {
			opts.maxExponent = cfg.Parser.MaxExponent
			if opts.maxExponent == 0 {
				opts.maxExponent = config.DefaultMaxExponent
			}
		}
	}
	return opts, cfg
}

// handle processes one input line. It returns false when the session
// should end.
func (s *replSession) handle(ctx context.Context, input string) (bool, error) {
	input = strings.TrimSpace(input)
	switch {
	case input == "":
		return true, nil
	case strings.HasPrefix(input, "/"):
		return s.handleSlashCommand(ctx, input)
	case strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit"):
		return false, nil
	}

	opts, _ := s.options()
	res, err := solveEquation(input, opts)
	if err != nil {
		return true, err
	}
	recordHistory(ctx, s.store, res, opts.precision)
	s.solved++

	writeSolution(s.out, res, opts.precision, s.args.Quiet)
	fmt.Fprintln(s.out)
	return true, nil
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlashCommand processes slash commands.
// Returns (shouldContinue, error) where shouldContinue=false means exit.
func (s *replSession) handleSlashCommand(ctx context.Context, input string) (bool, error) {
	command, rest, _ := strings.Cut(input, " ")
	command = strings.ToLower(command)
	rest = strings.TrimSpace(rest)

	switch command {
	case "/help", "/h", "/?", "/":
		s.printHelp()
		return true, nil

	case "/quit", "/q", "/exit":
		return false, nil

	case "/precision", "/p":
		if rest == "" {
			opts, _ := s.options()
			fmt.Fprintf(s.out, "Precision: %d\n", opts.precision)
			return true, nil
		}
		n, err := strconv.Atoi(rest)
		if err != nil || n < -1 || n > config.MaxPrecision {
			return true, NewValidationError("precision", rest,
				fmt.Sprintf("must be an integer from -1 to %d", config.MaxPrecision))
		}
		s.precision = &n
		fmt.Fprintf(s.out, "%s precision set to %d\n", RenderConditional(SuccessStyle, "[OK]"), n)
		return true, nil

	case "/strict":
		if rest == "" {
			opts, _ := s.options()
			fmt.Fprintf(s.out, "Strict: %t\n", opts.maxExponent > 0)
			return true, nil
		}
		on, err := ParseBoolString(rest)
		if err != nil {
			return true, NewValidationError("strict", rest, "expected on or off")
		}
		s.strict = &on
		fmt.Fprintf(s.out, "%s strict mode %s\n", RenderConditional(SuccessStyle, "[OK]"), onOff(on))
		return true, nil

	case "/explain", "/e":
		if rest == "" {
			return true, ErrMissingArgument("equation", "/explain X^2 - 4 = 0")
		}
		opts, cfg := s.options()
		res, err := solveEquation(rest, opts)
		if err != nil {
			return true, err
		}
		recordHistory(ctx, s.store, res, opts.precision)
		s.solved++
		writeMarkdown(s.out, renderExplain(res, opts.precision), cfg.Output.MarkdownWidth)
		return true, nil

	case "/history":
		return true, s.printHistory(ctx)

	default:
		return true, fmt.Errorf("unknown command: %s (type /help for commands)", command)
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// =============================================================================
// DISPLAY FUNCTIONS
// =============================================================================

func (s *replSession) printWelcome() {
	fmt.Fprintln(s.out, RenderConditional(TitleStyle, "computor "+Version))
	fmt.Fprintln(s.out, RenderConditional(DimStyle, "Type an equation such as \"X^2 - 4 = 0\". Commands: /help, /quit"))
	fmt.Fprintln(s.out)
}

func (s *replSession) printHelp() {
	commands := []struct {
		cmd  string
		desc string
	}{
		{"/help, /h", "Show this help"},
		{"/precision [N]", "Show or set decimals in solutions (-1 for exact)"},
		{"/strict [on|off]", "Show or set rejection of terms above X^2"},
		{"/explain <eq>", "Explain how an equation is solved"},
		{"/history", "Show recent entries from the history log"},
		{"/quit, /q", "Exit"},
	}

	fmt.Fprintln(s.out, RenderConditional(TitleStyle, "Available Commands"))
	for _, c := range commands {
		fmt.Fprintf(s.out, "  %s  %s\n",
			RenderConditional(PromptStyle, fmt.Sprintf("%-18s", c.cmd)),
			RenderConditional(DimStyle, c.desc))
	}
}

// replHistoryLimit is the number of entries /history shows.
const replHistoryLimit = 10

func (s *replSession) printHistory(ctx context.Context) error {
	if s.store == nil {
		fmt.Fprintln(s.out, "History is disabled.")
		return nil
	}
	entries, err := s.store.List(ctx, replHistoryLimit)
	if err != nil {
		return err
	}
	writeHistoryTable(s.out, entries, GetTerminalWidth())
	return nil
}

// =============================================================================
// REPL COMMAND
// =============================================================================

// HandleREPL runs the interactive prompt until /quit, Ctrl+C or Ctrl+D.
func HandleREPL(ctx context.Context, args Args) error {
	cfg := config.Global()
	store := openHistory(cfg, resolveOptions(args, cfg))
	if store != nil {
		defer store.Close()
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.REPL.WatchConfig {
		if err := startConfigWatch(ctx, args.ConfigPath); err != nil {
			log.Printf("repl: config watch disabled: %v", err)
		}
	}

	session := newReplSession(os.Stdout, args, store)
	if !args.Quiet {
		session.printWelcome()
	}

	editor := newLineEditor(cfg.REPL.HistoryFile)
	defer editor.Close()

	for {
		input, err := editor.ReadInput(cfg.REPL.Prompt)
		if err != nil {
			// liner.ErrPromptAborted is Ctrl+C, io.EOF is Ctrl+D.
			if !errors.Is(err, liner.ErrPromptAborted) && !errors.Is(err, io.EOF) {
				log.Printf("repl: prompt: %v", err)
			}
			fmt.Println()
			break
		}

		cont, err := session.handle(ctx, input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", RenderConditional(ErrorStyle, "[Error]"), err)
		}
		if !cont || ctx.Err() != nil {
			break
		}
	}

	if !args.Quiet && session.solved > 0 {
		fmt.Println(RenderConditional(DimStyle, fmt.Sprintf("Solved %d equation(s).", session.solved)))
	}
	return nil
}

// startConfigWatch reloads the global config whenever the file at path
// (the default config file when empty) changes, until ctx is done.
func startConfigWatch(ctx context.Context, path string) error {
	if path == "" {
		var err error
		if path, err = config.ConfigPathTOML(); err != nil {
			return err
		}
	}

	return config.Watch(ctx, path, func() {
		if err := config.ReloadGlobal(); err != nil {
			fmt.Fprintf(os.Stderr, "\n%s config not reloaded: %v\n", RenderConditional(WarningStyle, "Warning:"), err)
			return
		}
		log.Printf("repl: reloaded %s", path)
	})
}
