// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small helpers shared by the config, history and cli
// packages.
//
//   - WriteFileAtomic: crash-safe file writing with fsync and rename
//   - Width, Truncate, PadRight: terminal column arithmetic for table output
//
// # Usage
//
//	// Persist config without leaving a half-written file on crash
//	err := util.WriteFileAtomic(path, data, 0600)
//
//	// Fit an equation into a 40-column history table cell
//	cell := util.PadRight(util.Truncate(eq, 40), 40)
package util
