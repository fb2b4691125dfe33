// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// explain.go - The explain command: a markdown walkthrough of one solve.

package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jeranaias/computor/internal/config"
	"github.com/jeranaias/computor/internal/render"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// renderMarkdown renders content for the terminal, wrapped at width.
// Returns the raw content if rendering fails.
func renderMarkdown(content string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Printf("explain: markdown renderer unavailable: %v", err)
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		log.Printf("explain: markdown render failed: %v", err)
		return content
	}
	return rendered
}

// writeMarkdown prints md styled when colors are on and raw otherwise, so
// piped output stays valid markdown.
func writeMarkdown(w io.Writer, md string, width int) {
	if ColorsEnabled() {
		fmt.Fprint(w, renderMarkdown(md, width))
		return
	}
	fmt.Fprint(w, md)
}

func renderExplain(s solved, precision int) string {
	return render.Explain(s.input, s.coeffs, s.result, precision)
}

// =============================================================================
// EXPLAIN COMMAND
// =============================================================================

// HandleExplain handles the explain command.
func HandleExplain(ctx context.Context, args Args) error {
	if strings.TrimSpace(args.Equation) == "" {
		return ErrMissingArgument("equation", `computor explain "X^2 - 4 = 0"`)
	}

	cfg := config.Global()
	opts := resolveOptions(args, cfg)

	s, err := solveEquation(args.Equation, opts)
	if err != nil {
		return err
	}

	var id string
	if store := openHistory(cfg, opts); store != nil {
		id = recordHistory(ctx, store, s, opts.precision)
		store.Close()
	}

	md := renderExplain(s, opts.precision)

	if args.JSON {
		data := ExplainData{
			SolveData: NewSolveData(s.input, s.coeffs, s.result, opts.precision),
			Markdown:  md,
		}
		data.HistoryID = id
		return NewJSONResponse("explain", data).Print()
	}

	writeMarkdown(os.Stdout, md, cfg.Output.MarkdownWidth)
	return nil
}
