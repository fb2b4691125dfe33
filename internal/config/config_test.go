// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// isolate points HOME at a temp dir and clears COMPUTOR_* overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, k := range []string{
		"COMPUTOR_PRECISION", "COMPUTOR_COLOR", "COMPUTOR_STRICT",
		"COMPUTOR_HISTORY", "COMPUTOR_HISTORY_PATH",
	} {
		t.Setenv(k, "")
	}
	return home
}

// =============================================================================
// LOAD / SAVE TESTS
// =============================================================================

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 6, cfg.Output.Precision)
	require.Equal(t, "auto", cfg.Output.Color)
	require.True(t, cfg.History.Enabled)
	require.Equal(t, filepath.Join(home, ".computor", "history.db"), cfg.History.Path)
	require.Equal(t, filepath.Join(home, ".computor", "repl_history"), cfg.REPL.HistoryFile)
	require.Equal(t, 0, cfg.ExponentBound())
}

func TestLoadFromPath_PartialFileKeepsDefaults(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[output]
precision = 0

[parser]
strict_exponents = true
`), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, 0, cfg.Output.Precision, "explicit zero must survive")
	require.Equal(t, 80, cfg.Output.MarkdownWidth)
	require.True(t, cfg.Parser.StrictExponents)
	require.Equal(t, DefaultMaxExponent, cfg.ExponentBound())
}

func TestLoadFromPath_Invalid(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[output]\ncolor = \"purple\"\nprecision = 99\n"), 0600))

	_, err := LoadFromPath(path)
	require.Error(t, err)

	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs), "want ValidateErrors, got %T", err)
	require.Len(t, verrs, 2)
}

func TestLoadFromPath_Malformed(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[output\n"), 0600))

	_, err := LoadFromPath(path)
	require.Error(t, err)
}

func TestLoadFromPath_JSON(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"output": {"precision": 3}}`), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Output.Precision)
	require.Equal(t, "auto", cfg.Output.Color)
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := Default()
	cfg.Output.Precision = 3
	cfg.History.MaxEntries = 50
	cfg.REPL.Prompt = "> "
	require.NoError(t, SaveTOML(cfg, path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, 3, loaded.Output.Precision)
	require.Equal(t, 50, loaded.History.MaxEntries)
	require.Equal(t, "> ", loaded.REPL.Prompt)
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("COMPUTOR_PRECISION", "2")
	t.Setenv("COMPUTOR_STRICT", "true")
	t.Setenv("COMPUTOR_HISTORY", "0")
	t.Setenv("COMPUTOR_COLOR", "NEVER")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 2, cfg.Output.Precision)
	require.True(t, cfg.Parser.StrictExponents)
	require.False(t, cfg.History.Enabled)
	require.Equal(t, "never", cfg.Output.Color)
}

func TestEnvOverrides_BadPrecisionIgnored(t *testing.T) {
	isolate(t)
	t.Setenv("COMPUTOR_PRECISION", "lots")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 6, cfg.Output.Precision)
}

// =============================================================================
// GET / SET TESTS
// =============================================================================

func TestGetSet(t *testing.T) {
	cfg := Default()

	v, err := cfg.Get("output.precision")
	require.NoError(t, err)
	require.Equal(t, 6, v)

	require.NoError(t, cfg.Set("output.precision", "4"))
	require.Equal(t, 4, cfg.Output.Precision)

	require.NoError(t, cfg.Set("parser.strict_exponents", "yes"))
	require.True(t, cfg.Parser.StrictExponents)

	require.NoError(t, cfg.Set("repl.history_file", "/tmp/h"))
	require.Equal(t, "/tmp/h", cfg.REPL.HistoryFile)

	require.NoError(t, cfg.Set("history.max_entries", 10))
	require.Equal(t, 10, cfg.History.MaxEntries)
}

func TestGetSet_Errors(t *testing.T) {
	cfg := Default()

	_, err := cfg.Get("")
	require.Error(t, err)

	_, err = cfg.Get("output")
	require.Error(t, err)

	_, err = cfg.Get("output.nope")
	require.ErrorContains(t, err, "unknown field: output.nope")

	require.Error(t, cfg.Set("output.precision", "six"))
	require.Error(t, cfg.Set("output.color", 3))
}

func TestGetAllKeys(t *testing.T) {
	keys := GetAllKeys()
	require.Contains(t, keys, "output.precision")
	require.Contains(t, keys, "parser.max_exponent")
	require.Contains(t, keys, "repl.watch_config")

	cfg := Default()
	for _, k := range keys {
		_, err := cfg.Get(k)
		require.NoError(t, err, "key %s", k)
	}
}

// =============================================================================
// GLOBAL TESTS
// =============================================================================

// TestConfig_ConcurrentAccess checks Global and SetGlobal under -race.
func TestConfig_ConcurrentAccess(t *testing.T) {
	isolate(t)
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()
		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}

func TestReloadGlobal_UsePath(t *testing.T) {
	isolate(t)
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)

	path := filepath.Join(t.TempDir(), "config.toml")
	UsePath(path)
	require.Equal(t, 6, Global().Output.Precision)

	cfg := Default()
	cfg.Output.Precision = 1
	require.NoError(t, SaveTOML(cfg, path))
	require.NoError(t, ReloadGlobal())
	require.Equal(t, 1, Global().Output.Precision)
}

// =============================================================================
// WATCH TESTS
// =============================================================================

func TestWatch(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, SaveTOML(Default(), path))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	require.NoError(t, Watch(ctx, path, func() { calls.Add(1) }))

	cfg := Default()
	cfg.Output.Precision = 2
	require.NoError(t, SaveTOML(cfg, path))

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 5*time.Second, 20*time.Millisecond)
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	require.NoError(t, Watch(ctx, path, func() { calls.Add(1) }))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0600))
	time.Sleep(3 * WatchDebounce)
	require.Zero(t, calls.Load())
}
