// computor - solve polynomial equations of degree 2 or lower.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jeranaias/computor/internal/cli"
	"github.com/jeranaias/computor/internal/config"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	log.SetFlags(log.Ltime | log.Lmicroseconds)
	log.SetPrefix("computor: ")
	if args.Verbose {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	if args.Err != nil {
		cli.HandleErrorAndExit(args.Err, args.JSON)
	}

	if err := cli.LoadConfig(args); err != nil {
		// A broken config file must not lock the user out of the commands
		// that inspect or replace it.
		switch cmd {
		case cli.CmdConfig, cli.CmdDoctor, cli.CmdHelp, cli.CmdVersion:
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg := config.Default()
			cfg.SetDefaults()
			config.SetGlobal(cfg)
		default:
			cli.HandleErrorAndExit(err, args.JSON)
		}
	}

	ctx := context.Background()
	log.Printf("command %s", cmd)

	var err error
	switch cmd {
	case cli.CmdSolve:
		err = cli.HandleSolve(ctx, args)
	case cli.CmdExplain:
		err = cli.HandleExplain(ctx, args)
	case cli.CmdREPL:
		err = cli.HandleREPL(ctx, args)
	case cli.CmdHistory:
		err = cli.HandleHistory(ctx, args)
	case cli.CmdConfig:
		err = cli.HandleConfig(args)
	case cli.CmdDoctor:
		err = cli.HandleDoctor(ctx, args)
	case cli.CmdVersion:
		err = cli.HandleVersion(args)
	case cli.CmdHelp:
		err = cli.HandleHelp()
	default:
		cli.PrintUsage(os.Stderr)
		os.Exit(cli.ExitUsageError)
	}

	cli.HandleErrorAndExit(err, args.JSON)
}
