// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - Machine-readable output for --json.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jeranaias/computor/internal/equation"
	"github.com/jeranaias/computor/internal/history"
	"github.com/jeranaias/computor/internal/render"
	"github.com/jeranaias/computor/internal/solver"
)

// JSONResponse is the envelope every --json command prints.
type JSONResponse struct {
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error is the error message when Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is the RFC 3339 time the response was generated
	Timestamp string `json:"timestamp"`

	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print outputs the JSON response to stdout.
func (r *JSONResponse) Print() error {
	return r.Write(os.Stdout)
}

// Write outputs the indented JSON response to w.
func (r *JSONResponse) Write(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// String returns the JSON response as a string.
func (r *JSONResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":"failed to marshal response: %s","timestamp":"%s"}`,
			err.Error(), time.Now().UTC().Format(time.RFC3339))
	}
	return string(data)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// TermData is one reduced-form term.
type TermData struct {
	Exponent    int     `json:"exponent"`
	Coefficient float64 `json:"coefficient"`
}

// RootData is a root split into real and imaginary parts.
type RootData struct {
	Real      float64 `json:"real"`
	Imaginary float64 `json:"imaginary"`
}

// SolveData represents the data returned by the solve command.
type SolveData struct {
	Input        string     `json:"input"`
	ReducedForm  string     `json:"reduced_form"`
	Terms        []TermData `json:"terms"`
	Degree       int        `json:"degree"`
	Kind         string     `json:"kind"`
	Discriminant *float64   `json:"discriminant,omitempty"`
	Message      string     `json:"message"`
	Solutions    []string   `json:"solutions"`
	Roots        []RootData `json:"roots"`
	HistoryID    string     `json:"history_id,omitempty"`
}

// ExplainData represents the data returned by the explain command.
type ExplainData struct {
	SolveData
	Markdown string `json:"markdown"`
}

// HistoryListData represents the data returned by history list.
type HistoryListData struct {
	Entries []history.Entry `json:"entries"`
	Count   int             `json:"count"`
}

// ConfigData represents the data returned by config show.
type ConfigData struct {
	Path   string      `json:"config_path"`
	Config interface{} `json:"config"`
}

// ConfigValueData represents a single config key.
type ConfigValueData struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// VersionData represents the data returned by the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version,omitempty"`
}

// NewSolveData collects everything known about one solved equation.
func NewSolveData(input string, m equation.CoefficientMap, res solver.Result, precision int) SolveData {
	data := SolveData{
		Input:       input,
		ReducedForm: render.ReducedForm(m),
		Terms:       []TermData{},
		Degree:      render.Degree(m),
		Kind:        string(res.Kind()),
		Solutions:   []string{},
		Roots:       []RootData{},
	}
	for _, t := range m.Terms() {
		data.Terms = append(data.Terms, TermData{Exponent: t.Exponent, Coefficient: t.Coefficient})
	}

	narrative := render.Narrative(res, precision)
	if len(narrative) > 0 {
		data.Message = narrative[0]
		data.Solutions = append(data.Solutions, narrative[1:]...)
	}

	switch r := res.(type) {
	case solver.Linear:
		data.Roots = append(data.Roots, RootData{Real: positiveZero(r.X)})
	case solver.TwoReal:
		data.Discriminant = &r.Discriminant
		data.Roots = append(data.Roots, RootData{Real: positiveZero(r.X1)}, RootData{Real: positiveZero(r.X2)})
	case solver.OneReal:
		data.Discriminant = &r.Discriminant
		data.Roots = append(data.Roots, RootData{Real: positiveZero(r.X)})
	case solver.ComplexConjugate:
		data.Discriminant = &r.Discriminant
		z1, z2 := r.Roots()
		data.Roots = append(data.Roots,
			RootData{Real: positiveZero(real(z1)), Imaginary: imag(z1)},
			RootData{Real: positiveZero(real(z2)), Imaginary: imag(z2)})
	}

	return data
}

// positiveZero maps -0 to 0 so JSON never shows "-0".
func positiveZero(f float64) float64 {
	if f == 0 {
		return 0
	}
	return f
}
