// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation for computor.
//
// Command: config [subcommand]
// Short:   View and modify configuration
//
// Subcommands:
//
//	show (default)      Display the effective configuration
//	get <key>           Print one value
//	set <key> <value>   Change one value in the config file
//	path                Show configuration file path
//	init [--force]      Write a default config file
//
// Examples:
//
//	computor config set output.precision 3
//	computor config set parser.strict_exponents true
//	computor --config ./ci.toml config show --json
//
// Configuration Keys:
//
//	output.precision          Decimals in solutions (-1 for exact)
//	output.color              auto, always or never
//	output.markdown_width     Wrap column for explain
//	parser.strict_exponents   Reject terms above parser.max_exponent
//	parser.max_exponent       Bound used by strict mode
//	history.enabled           Record solved equations
//	history.path              History database file
//	history.max_entries       Prune beyond this many entries (0 keeps all)
//	repl.prompt               Prompt text
//	repl.history_file         Line-editor history file
//	repl.watch_config         Reload this file while the REPL runs
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jeranaias/computor/internal/config"
)

// HandleConfig handles the config command.
func HandleConfig(args Args) error {
	p := NewArgParser(args.Raw)
	sub := strings.ToLower(p.Subcommand())

	switch sub {
	case "", "show":
		return configShow(args)
	case "get":
		return configGet(args, p.Positional(1))
	case "set":
		if p.PositionalCount() < 3 {
			return ErrMissingArgument("key and value", "computor config set output.precision 3")
		}
		return configSet(args, p.Positional(1), strings.Join(p.PositionalFrom(2), " "))
	case "path":
		return configPath(args)
	case "init":
		return configInit(args, p.BoolFlag("force"))
	default:
		return NewValidationErrorWithExample("config subcommand", sub,
			"must be one of: show, get, set, path, init"+didYouMean(sub, configSubcommands), "computor config show")
	}
}

// configFile returns the file config commands read and write.
func configFile(args Args) (string, error) {
	if args.ConfigPath != "" {
		return args.ConfigPath, nil
	}
	path, err := config.ConfigPathTOML()
	if err != nil {
		return "", &ConfigError{Err: err}
	}
	return path, nil
}

func configShow(args Args) error {
	cfg := config.Global()
	path, err := configFile(args)
	if err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("config show", ConfigData{Path: path, Config: cfg}).Print()
	}

	writeConfig(os.Stdout, cfg, path)
	return nil
}

// writeConfig prints every key of cfg with the label column sized to the
// longest key.
func writeConfig(w io.Writer, cfg *config.Config, path string) {
	keys := config.GetAllKeys()
	width := labelWidth
	for _, k := range keys {
		width = max(width, len(k)+2)
	}

	fmt.Fprintln(w, RenderConditional(TitleStyle, "Configuration"))
	fmt.Fprintln(w, RenderField("file", path, width))
	fmt.Fprintln(w, RenderSeparator(width+20))
	for _, key := range keys {
		v, _ := cfg.Get(key)
		fmt.Fprintln(w, RenderField(key, v, width))
	}
}

func configGet(args Args, key string) error {
	if key == "" {
		return ErrMissingArgument("key", "computor config get output.precision")
	}
	v, err := config.Global().Get(key)
	if err != nil {
		return NewNotFoundError("config key", key)
	}

	if args.JSON {
		return NewJSONResponse("config get", ConfigValueData{Key: key, Value: v}).Print()
	}
	fmt.Println(v)
	return nil
}

// configSet edits the file itself, so values coming from environment
// overrides are not written back.
func configSet(args Args, key, value string) error {
	path, err := configFile(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadRaw(path)
	if err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	if _, err := cfg.Get(key); err != nil {
		return NewNotFoundError("config key", key)
	}
	if err := cfg.Set(key, value); err != nil {
		return NewValidationError(key, value, err.Error())
	}

	check := cfg.Clone()
	check.SetDefaults()
	if err := check.Validate(); err != nil {
		return NewValidationError(key, value, err.Error())
	}

	if err := config.SaveTOML(cfg, path); err != nil {
		return &ConfigError{Path: path, Err: err}
	}

	if args.JSON {
		v, _ := cfg.Get(key)
		return NewJSONResponse("config set", ConfigValueData{Key: key, Value: v}).Print()
	}
	fmt.Printf("%s %s = %s\n", RenderConditional(SuccessStyle, "[OK]"), key, value)
	return nil
}

func configPath(args Args) error {
	path, err := configFile(args)
	if err != nil {
		return err
	}
	if args.JSON {
		_, statErr := os.Stat(path)
		return NewJSONResponse("config path", map[string]interface{}{
			"path":   path,
			"exists": statErr == nil,
		}).Print()
	}
	fmt.Println(path)
	return nil
}

func configInit(args Args, force bool) error {
	path, err := configFile(args)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !force {
		return NewValidationErrorWithExample("config file", path, "already exists, use --force to overwrite",
			"computor config init --force")
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return &ConfigError{Path: path, Err: err}
	}

	if err := config.SaveTOML(config.Default(), path); err != nil {
		return &ConfigError{Path: path, Err: err}
	}

	if args.JSON {
		return NewJSONResponse("config init", map[string]string{"path": path}).Print()
	}
	fmt.Printf("%s wrote %s\n", RenderConditional(SuccessStyle, "[OK]"), path)
	return nil
}

// =============================================================================
// CONFIG LOADING
// =============================================================================

// LoadConfig loads the configuration for this run, applies command-line
// overrides and installs it as the global config.
func LoadConfig(args Args) error {
	var (
		cfg  *config.Config
		err  error
		path = args.ConfigPath
	)
	if path != "" {
		config.UsePath(path)
		cfg, err = config.LoadFromPath(path)
	} else {
		path, _ = config.ConfigPathTOML()
		cfg, err = config.Load()
	}
	if err != nil {
		return &ConfigError{Path: path, Err: err}
	}

	mode := cfg.Output.Color
	if args.JSON {
		// Keep JSON output free of escape codes.
		mode = "never"
	}
	ApplyColorMode(mode)
	config.SetGlobal(cfg)
	return nil
}
