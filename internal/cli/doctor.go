// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// doctor.go - Doctor command implementation for computor.
//
// Command: doctor
// Short:   Run health checks on the local setup
// Aliases: diag
//
// Health Checks Performed:
//  1. Config File    - The config file parses and validates
//  2. History Log    - The history database opens and can be queried
//  3. Input History  - The REPL history file's directory is writable
//  4. Solver         - A known quadratic solves to the expected roots
//  5. Terminal       - Color support and detected width
//
// Status Symbols:
//
//	[OK]     Pass  - Check successful
//	[!!]     Warn  - Non-critical issue detected
//	[FAIL]   Fail  - Critical issue detected
//
// Exit Codes:
//
//	0   No check failed
//	1   One or more checks failed
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jeranaias/computor/internal/config"
	"github.com/jeranaias/computor/internal/history"
	"github.com/jeranaias/computor/internal/solver"
)

// =============================================================================
// HEALTH CHECK TYPES
// =============================================================================

// CheckStatus represents the status of a health check.
type CheckStatus int

const (
	// CheckPass indicates the check passed successfully.
	CheckPass CheckStatus = iota
	// CheckWarn indicates the check passed with warnings.
	CheckWarn
	// CheckFail indicates the check failed.
	CheckFail
)

// String returns the string representation of the check status.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarn:
		return "warn"
	case CheckFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Symbol returns the marker printed before a check.
func (s CheckStatus) Symbol() string {
	switch s {
	case CheckPass:
		return RenderConditional(SuccessStyle, "[OK]")
	case CheckWarn:
		return RenderConditional(WarningStyle, "[!!]")
	case CheckFail:
		return RenderConditional(ErrorStyle, "[FAIL]")
	default:
		return "?"
	}
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	Name    string      `json:"name"`
	Status  CheckStatus `json:"-"`
	State   string      `json:"status"`
	Message string      `json:"message"`
	Fix     string      `json:"fix,omitempty"`
}

// Render returns a formatted string representation of the health check.
func (c *HealthCheck) Render() string {
	result := fmt.Sprintf("%s %s: %s", c.Status.Symbol(), c.Name, c.Message)
	if c.Status != CheckPass && c.Fix != "" {
		result += "\n" + RenderConditional(DimStyle, "    -> "+c.Fix)
	}
	return result
}

// DoctorData represents the data returned by the doctor command.
type DoctorData struct {
	Checks   []HealthCheck `json:"checks"`
	Passed   int           `json:"passed"`
	Warnings int           `json:"warnings"`
	Failed   int           `json:"failed"`
}

// =============================================================================
// CHECKS
// =============================================================================

func newCheck(name string, status CheckStatus, msg, fix string) HealthCheck {
	return HealthCheck{Name: name, Status: status, State: status.String(), Message: msg, Fix: fix}
}

func checkConfigFile(args Args) HealthCheck {
	const name = "Config file"
	path, err := configFile(args)
	if err != nil {
		return newCheck(name, CheckFail, err.Error(), "")
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return newCheck(name, CheckWarn, path+" not found, using defaults", "Run: computor config init")
	}
	if _, err := config.LoadFromPath(path); err != nil {
		return newCheck(name, CheckFail, err.Error(), "Edit "+path+" or run: computor config init --force")
	}
	return newCheck(name, CheckPass, path, "")
}

func checkHistoryLog(ctx context.Context, cfg *config.Config) HealthCheck {
	const name = "History log"
	if !cfg.History.Enabled {
		return newCheck(name, CheckWarn, "disabled", "Run: computor config set history.enabled true")
	}

	store, err := history.Open(cfg.History.Path, cfg.History.MaxEntries)
	if err != nil {
		return newCheck(name, CheckFail, err.Error(), "Run: computor config set history.path <writable file>")
	}
	defer store.Close()

	stats, err := store.Stats(ctx)
	if err != nil {
		return newCheck(name, CheckFail, err.Error(), "Move "+cfg.History.Path+" aside to start a new log")
	}
	return newCheck(name, CheckPass, fmt.Sprintf("%s (%d entries)", cfg.History.Path, stats.Total), "")
}

func checkInputHistory(cfg *config.Config) HealthCheck {
	const name = "Input history"
	dir := filepath.Dir(cfg.REPL.HistoryFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return newCheck(name, CheckWarn, err.Error(), "Run: computor config set repl.history_file <writable file>")
	}
	probe, err := os.CreateTemp(dir, ".computor-probe-")
	if err != nil {
		return newCheck(name, CheckWarn, dir+" is not writable", "Run: computor config set repl.history_file <writable file>")
	}
	probe.Close()
	os.Remove(probe.Name())
	return newCheck(name, CheckPass, cfg.REPL.HistoryFile, "")
}

// checkSolver solves X^2 - 1 = 0 end to end.
func checkSolver() HealthCheck {
	const name = "Solver"
	s, err := solveEquation("1 * X^2 - 1 * X^0 = 0", solveOptions{})
	if err != nil {
		return newCheck(name, CheckFail, err.Error(), "")
	}
	r, ok := s.result.(solver.TwoReal)
	if !ok || r.X1 != 1 || r.X2 != -1 {
		return newCheck(name, CheckFail, fmt.Sprintf("X^2 - 1 = 0 gave %v", s.result), "")
	}
	return newCheck(name, CheckPass, "X^2 - 1 = 0 solves to 1 and -1", "")
}

func checkTerminal() HealthCheck {
	const name = "Terminal"
	if !IsStdoutTTY() {
		return newCheck(name, CheckPass, "not a terminal, plain output", "")
	}
	colors := "colors off"
	if ColorsEnabled() {
		colors = "colors on"
	}
	return newCheck(name, CheckPass, fmt.Sprintf("%d columns, %s", GetTerminalWidth(), colors), "")
}

// runChecks runs every health check in display order.
func runChecks(ctx context.Context, args Args) DoctorData {
	cfg := config.Global()
	data := DoctorData{Checks: []HealthCheck{
		checkConfigFile(args),
		checkHistoryLog(ctx, cfg),
		checkInputHistory(cfg),
		checkSolver(),
		checkTerminal(),
	}}
	for _, c := range data.Checks {
		switch c.Status {
		case CheckPass:
			data.Passed++
		case CheckWarn:
			data.Warnings++
		case CheckFail:
			data.Failed++
		}
	}
	return data
}

func writeDoctorReport(w io.Writer, data DoctorData) {
	fmt.Fprintln(w, RenderConditional(TitleStyle, "computor doctor"))
	fmt.Fprintln(w)
	for i := range data.Checks {
		fmt.Fprintln(w, data.Checks[i].Render())
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, RenderConditional(DimStyle,
		fmt.Sprintf("%d passed, %d warnings, %d failed", data.Passed, data.Warnings, data.Failed)))
}

// =============================================================================
// DOCTOR COMMAND
// =============================================================================

// HandleDoctor handles the doctor command.
func HandleDoctor(ctx context.Context, args Args) error {
	data := runChecks(ctx, args)

	if args.JSON {
		if err := NewJSONResponse("doctor", data).Print(); err != nil {
			return err
		}
	} else {
		writeDoctorReport(os.Stdout, data)
	}

	if data.Failed > 0 {
		return NewCommandError("doctor", "check", fmt.Sprintf("%d check(s) failed", data.Failed), nil)
	}
	return nil
}
