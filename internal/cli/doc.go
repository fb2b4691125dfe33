// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and execution for computor.
//
// # Key Types
//
//   - Command: Enumeration of the available commands
//   - Args: Parsed global flags, the equation text and subcommand arguments
//   - ArgParser: Flag and positional parsing for subcommands
//   - JSONResponse: The envelope printed by every command in --json mode
//
// # Usage
//
//	cmd, args := cli.Parse()
//	switch cmd {
//	case cli.CmdSolve:
//	    err = cli.HandleSolve(ctx, args)
//	case cli.CmdREPL:
//	    err = cli.HandleREPL(ctx, args)
//	// ... other commands
//	}
//	cli.HandleErrorAndExit(err, args.JSON)
//
// Handlers return errors and never exit; GetExitCode maps them to the
// documented exit codes.
package cli
