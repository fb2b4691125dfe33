// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history_cmd.go - The history command: list, show, stats and clear.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/jeranaias/computor/internal/config"
	"github.com/jeranaias/computor/internal/history"
	"github.com/jeranaias/computor/internal/util"
)

// DefaultHistoryLimit is the number of entries history list shows.
const DefaultHistoryLimit = 20

// HandleHistory handles the history command and its subcommands.
func HandleHistory(ctx context.Context, args Args) error {
	p := NewArgParser(args.Raw, "limit")
	sub := p.Subcommand()
	if sub == "" {
		sub = "list"
	}

	cfg := config.Global()
	store, err := history.Open(cfg.History.Path, cfg.History.MaxEntries)
	if err != nil {
		return NewCommandError("history", sub, "cannot open history log", err)
	}
	defer store.Close()

	switch strings.ToLower(sub) {
	case "list", "ls":
		limit := DefaultHistoryLimit
		if v := p.Flag("limit"); v != "" {
			if limit, err = ParseIntWithValidation(v, "limit"); err != nil {
				return NewValidationErrorWithExample("limit", v, "must be a positive integer", "computor history list --limit 5")
			}
		}
		return historyList(ctx, store, args, limit)

	case "show":
		id := p.Positional(1)
		if id == "" {
			return ErrMissingArgument("entry id", "computor history show 3f2a")
		}
		return historyShow(ctx, store, args, id)

	case "stats":
		return historyStats(ctx, store, args)

	case "clear":
		confirmed, err := RequireConfirmation("delete every history entry", ConfirmationOptions{
			ConfirmFlag: p.BoolFlag("confirm"),
			JSONMode:    args.JSON,
			Command:     "computor history clear",
		})
		if err != nil {
			return err
		}
		if !confirmed {
			ShowCancellationMessage(os.Stdout)
			return nil
		}
		return historyClear(ctx, store, args)

	default:
		return NewValidationErrorWithExample("history subcommand", sub,
			"must be one of: list, show, stats, clear"+didYouMean(sub, historySubcommands), "computor history list")
	}
}

func historyList(ctx context.Context, store *history.Store, args Args, limit int) error {
	entries, err := store.List(ctx, limit)
	if err != nil {
		return NewCommandError("history", "list", "query failed", err)
	}

	if args.JSON {
		return NewJSONResponse("history list", HistoryListData{Entries: entries, Count: len(entries)}).Print()
	}
	if len(entries) == 0 {
		fmt.Println("No history yet.")
		return nil
	}
	writeHistoryTable(os.Stdout, entries, GetTerminalWidth())
	return nil
}

func historyShow(ctx context.Context, store *history.Store, args Args, id string) error {
	entry, err := store.Get(ctx, id)
	switch {
	case errors.Is(err, history.ErrNotFound):
		return NewNotFoundError("history entry", id)
	case errors.Is(err, history.ErrAmbiguous):
		return NewValidationError("entry id", id, "prefix matches more than one entry, use more characters")
	case err != nil:
		return NewCommandError("history", "show", "query failed", err)
	}

	if args.JSON {
		return NewJSONResponse("history show", entry).Print()
	}
	writeHistoryEntry(os.Stdout, entry)
	return nil
}

func historyStats(ctx context.Context, store *history.Store, args Args) error {
	stats, err := store.Stats(ctx)
	if err != nil {
		return NewCommandError("history", "stats", "query failed", err)
	}

	if args.JSON {
		return NewJSONResponse("history stats", stats).Print()
	}

	fmt.Println(RenderConditional(TitleStyle, "History"))
	fmt.Println(RenderSeparator(40))
	fmt.Printf("%s%d\n", RenderLabel("Total"), stats.Total)
	if stats.Total > 0 {
		fmt.Printf("%s%s\n", RenderLabel("First"), stats.First.Local().Format(time.DateTime))
		fmt.Printf("%s%s\n", RenderLabel("Last"), stats.Last.Local().Format(time.DateTime))
	}

	kinds := make([]string, 0, len(stats.ByKind))
	for k := range stats.ByKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Printf("%s%d\n", RenderLabel("  "+k), stats.ByKind[k])
	}
	return nil
}

func historyClear(ctx context.Context, store *history.Store, args Args) error {
	n, err := store.Clear(ctx)
	if err != nil {
		return NewCommandError("history", "clear", "delete failed", err)
	}
	if args.JSON {
		return NewJSONResponse("history clear", map[string]int64{"deleted": n}).Print()
	}
	fmt.Printf("%s deleted %d entries\n", RenderConditional(SuccessStyle, "[OK]"), n)
	return nil
}

// =============================================================================
// FORMATTING
// =============================================================================

// historyIDWidth is how much of an entry ID the table shows; any unique
// prefix works with history show.
const historyIDWidth = 8

// writeHistoryTable prints entries as columns fitted to width. The equation
// and result columns share the space left after ID and time.
func writeHistoryTable(w io.Writer, entries []history.Entry, width int) {
	const timeWidth = len(time.DateTime)
	rest := width - historyIDWidth - timeWidth - 6
	if rest < 20 {
		rest = 20
	}
	eqWidth := rest * 3 / 5
	resWidth := rest - eqWidth

	fmt.Fprintf(w, "%s  %s  %s  %s\n",
		RenderConditional(DimStyle, util.PadRight("ID", historyIDWidth)),
		RenderConditional(DimStyle, util.PadRight("TIME", timeWidth)),
		RenderConditional(DimStyle, util.PadRight("EQUATION", eqWidth)),
		RenderConditional(DimStyle, "RESULT"))

	for _, e := range entries {
		id := e.ID
		if len(id) > historyIDWidth {
			id = id[:historyIDWidth]
		}
		fmt.Fprintf(w, "%s  %s  %s  %s\n",
			id,
			e.CreatedAt.Local().Format(time.DateTime),
			util.PadRight(util.Truncate(e.Input, eqWidth), eqWidth),
			util.Truncate(e.Solution, resWidth))
	}
}

// writeHistoryEntry prints every field of one entry.
func writeHistoryEntry(w io.Writer, e history.Entry) {
	fmt.Fprintf(w, "%s%s\n", RenderLabel("ID"), e.ID)
	fmt.Fprintf(w, "%s%s\n", RenderLabel("Time"), e.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(w, "%s%s\n", RenderLabel("Equation"), e.Input)
	fmt.Fprintf(w, "%s%s\n", RenderLabel("Reduced form"), e.Reduced)
	fmt.Fprintf(w, "%s%d\n", RenderLabel("Degree"), e.Degree)
	fmt.Fprintf(w, "%s%s\n", RenderLabel("Kind"), e.Kind)
	fmt.Fprintf(w, "%s%s\n", RenderLabel("Result"), e.Solution)
}
