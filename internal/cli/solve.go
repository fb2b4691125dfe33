// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// solve.go - The solve command and the pipeline shared by explain and repl.

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/jeranaias/computor/internal/config"
	"github.com/jeranaias/computor/internal/equation"
	"github.com/jeranaias/computor/internal/history"
	"github.com/jeranaias/computor/internal/render"
	"github.com/jeranaias/computor/internal/solver"
)

// =============================================================================
// SOLVE PIPELINE
// =============================================================================

// solveOptions are the settings one solve runs with, resolved from config
// and flags.
type solveOptions struct {
	precision   int
	maxExponent int
	record      bool
}

// resolveOptions merges cfg with the command-line overrides in args.
func resolveOptions(args Args, cfg *config.Config) solveOptions {
	opts := solveOptions{
		precision:   cfg.Output.Precision,
		maxExponent: cfg.ExponentBound(),
		record:      cfg.History.Enabled && !args.NoHistory,
	}
	if args.PrecisionSet {
		opts.precision = args.Precision
	}
	if args.Strict && opts.maxExponent == 0 {
		opts.maxExponent = config.DefaultMaxExponent
	}
	return opts
}

// solved is one equation carried through parse and solve.
type solved struct {
	input  string
	coeffs equation.CoefficientMap
	result solver.Result
}

// solveEquation parses input and solves the reduced equation.
func solveEquation(input string, opts solveOptions) (solved, error) {
	m, err := equation.ParseWithOptions(input, equation.Options{MaxExponent: opts.maxExponent})
	if err != nil {
		return solved{}, err
	}
	log.Printf("solve: %q reduced to %v", input, m.Terms())
	return solved{input: input, coeffs: m, result: solver.Solve(m)}, nil
}

// writeSolution prints the report for s. Quiet prints only the roots, or
// the one-line summary when there are none.
func writeSolution(w io.Writer, s solved, precision int, quiet bool) {
	if quiet {
		narrative := render.Narrative(s.result, precision)
		if len(narrative) <= 1 {
			fmt.Fprintln(w, render.Summary(s.result, precision))
			return
		}
		for _, r := range narrative[1:] {
			fmt.Fprintln(w, r)
		}
		return
	}

	for i, line := range render.Lines(s.coeffs, s.result, precision) {
		// Reduced form, degree and the narrative message come first.
		if i >= 3 {
			line = RenderConditional(SolutionStyle, line)
		}
		fmt.Fprintln(w, line)
	}
}

// historyEntry converts s to a log entry.
func historyEntry(s solved, precision int) history.Entry {
	return history.Entry{
		Input:    s.input,
		Reduced:  render.ReducedForm(s.coeffs),
		Degree:   render.Degree(s.coeffs),
		Kind:     string(s.result.Kind()),
		Solution: render.Summary(s.result, precision),
	}
}

// openHistory opens the configured history log, or returns nil when
// recording is off or the log cannot be opened.
func openHistory(cfg *config.Config, opts solveOptions) *history.Store {
	if !opts.record {
		return nil
	}
	store, err := history.Open(cfg.History.Path, cfg.History.MaxEntries)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s history disabled: %v\n", RenderConditional(WarningStyle, "Warning:"), err)
		return nil
	}
	return store
}

// recordHistory appends s to store and returns the new entry ID. Failures
// only warn: a solved equation is still a success.
func recordHistory(ctx context.Context, store *history.Store, s solved, precision int) string {
	if store == nil {
		return ""
	}
	entry, err := store.Record(ctx, historyEntry(s, precision))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s could not record history: %v\n", RenderConditional(WarningStyle, "Warning:"), err)
		return ""
	}
	return entry.ID
}

// =============================================================================
// SOLVE COMMAND
// =============================================================================

// HandleSolve handles the solve command. Without an equation it reads one
// equation per line from stdin.
func HandleSolve(ctx context.Context, args Args) error {
	cfg := config.Global()
	opts := resolveOptions(args, cfg)

	store := openHistory(cfg, opts)
	if store != nil {
		defer store.Close()
	}

	if strings.TrimSpace(args.Equation) == "" {
		if isInteractive() {
			return ErrMissingArgument("equation", `computor solve "5 * X^0 + 4 * X^1 = 4 * X^0"`)
		}
		return solveStream(ctx, os.Stdin, os.Stdout, args, opts, store)
	}

	s, err := solveEquation(args.Equation, opts)
	if err != nil {
		if looksLikeMistypedCommand(args.Equation) {
			if hint := didYouMean(args.Equation, topLevelCommands); hint != "" {
				return fmt.Errorf("%w%s", err, hint)
			}
		}
		return err
	}
	id := recordHistory(ctx, store, s, opts.precision)

	if args.JSON {
		data := NewSolveData(s.input, s.coeffs, s.result, opts.precision)
		data.HistoryID = id
		return NewJSONResponse("solve", data).Print()
	}
	writeSolution(os.Stdout, s, opts.precision, args.Quiet)
	return nil
}

// solveStream solves every non-blank line of r. A failing line is reported
// and the rest still run; the first failure is returned at the end.
func solveStream(ctx context.Context, r io.Reader, w io.Writer, args Args, opts solveOptions, store *history.Store) error {
	var (
		firstErr error
		failed   int
		total    int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		total++

		s, err := solveEquation(line, opts)
		if err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
			if args.JSON {
				DisplayErrorJSON(w, err)
			} else {
				fmt.Fprintf(w, "%s %s: %v\n", RenderConditional(ErrorStyle, "Error:"), line, err)
			}
			continue
		}
		id := recordHistory(ctx, store, s, opts.precision)

		if args.JSON {
			data := NewSolveData(s.input, s.coeffs, s.result, opts.precision)
			data.HistoryID = id
			if err := NewJSONResponse("solve", data).Write(w); err != nil {
				return err
			}
			continue
		}
		if total > 1 && !args.Quiet {
			fmt.Fprintln(w)
		}
		writeSolution(w, s, opts.precision, args.Quiet)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading equations: %w", err)
	}

	if total == 0 {
		return ErrMissingArgument("equation", `echo "2 * X^1 = 8" | computor`)
	}
	if firstErr != nil {
		return fmt.Errorf("%d of %d equations failed: %w", failed, total, firstErr)
	}
	return nil
}
