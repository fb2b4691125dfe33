// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for computor.
//
// Supports both TOML and JSON configuration formats, with defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: main configuration structure
//   - OutputConfig: precision, color mode and markdown width
//   - ParserConfig: strict exponent checking
//   - HistoryConfig: the sqlite log of solved equations
//   - REPLConfig: prompt, input history and live reload
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command-line flags (applied by the cli package)
//   - Environment variables (COMPUTOR_*)
//   - ~/.computor/config.toml, or the file given with --config
//   - ~/.computor/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	opts := equation.Options{MaxExponent: cfg.ExponentBound()}
//
// Reload on change:
//
//	err := config.Watch(ctx, path, func() { _ = config.ReloadGlobal() })
package config
