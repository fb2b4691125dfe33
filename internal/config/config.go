// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/jeranaias/computor/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete computor configuration.
type Config struct {
	Output  OutputConfig  `toml:"output" json:"output"`
	Parser  ParserConfig  `toml:"parser" json:"parser"`
	History HistoryConfig `toml:"history" json:"history"`
	REPL    REPLConfig    `toml:"repl" json:"repl"`
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	// Precision is the number of decimals solutions are rounded to.
	// -1 prints the shortest exact representation.
	Precision int `toml:"precision" json:"precision"`

	// Color is "auto", "always" or "never".
	Color string `toml:"color" json:"color"`

	// MarkdownWidth is the word-wrap column for `explain` output.
	MarkdownWidth int `toml:"markdown_width" json:"markdown_width"`
}

// ParserConfig controls equation parsing.
type ParserConfig struct {
	// StrictExponents rejects equations whose reduced form keeps a
	// non-zero term above MaxExponent.
	StrictExponents bool `toml:"strict_exponents" json:"strict_exponents"`
	MaxExponent     int  `toml:"max_exponent" json:"max_exponent"`
}

// HistoryConfig controls the solved-equation log.
type HistoryConfig struct {
	Enabled bool `toml:"enabled" json:"enabled"`

	// Path of the sqlite database. Empty means ~/.computor/history.db.
	Path string `toml:"path" json:"path"`

	// MaxEntries caps the log; older rows are pruned. 0 keeps everything.
	MaxEntries int `toml:"max_entries" json:"max_entries"`
}

// REPLConfig controls the interactive prompt.
type REPLConfig struct {
	Prompt string `toml:"prompt" json:"prompt"`

	// HistoryFile stores line-editor input history between sessions.
	HistoryFile string `toml:"history_file" json:"history_file"`

	// WatchConfig reloads the config file when it changes on disk.
	WatchConfig bool `toml:"watch_config" json:"watch_config"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// DefaultMaxExponent is the bound used by strict mode when none is set.
const DefaultMaxExponent = 2

// Default returns a new Config with default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Precision:     6,
			Color:         "auto",
			MarkdownWidth: 80,
		},
		Parser: ParserConfig{
			StrictExponents: false,
			MaxExponent:     DefaultMaxExponent,
		},
		History: HistoryConfig{
			Enabled:    true,
			MaxEntries: 1000,
		},
		REPL: REPLConfig{
			Prompt:      "computor> ",
			WatchConfig: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the computor configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".computor"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads ~/.computor/config.toml, falling back to config.json and then
// to defaults. Environment overrides are applied last.
func Load() (*Config, error) {
	tomlPath, err := ConfigPathTOML()
	if err != nil {
		return finalize(Default())
	}
	if _, statErr := os.Stat(tomlPath); statErr == nil {
		return LoadFromPath(tomlPath)
	}

	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			return LoadFromPath(jsonPath)
		}
	}

	return finalize(Default())
}

// LoadFromPath loads configuration from a specific file. Keys missing from
// the file keep their defaults; a missing file yields the defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Printf("config: %s not found, using defaults", path)
		return finalize(cfg)
	}

	var err error
	if strings.HasSuffix(path, ".json") {
		err = LoadJSON(cfg, path)
	} else {
		err = LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	return finalize(cfg)
}

// LoadRaw decodes the file at path over the defaults without environment
// overrides or derived paths, so the result can be edited and saved back.
// A missing file yields the defaults.
func LoadRaw(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	var err error
	if strings.HasSuffix(path, ".json") {
		err = LoadJSON(cfg, path)
	} else {
		err = LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	for _, key := range md.Undecoded() {
		log.Printf("config: ignoring unknown key %q in %s", key.String(), path)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

func finalize(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg to path atomically with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# computor configuration file\n")
	buf.WriteString("# Edit by hand or with `computor config set <key> <value>`.\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.WriteFileAtomic(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes cfg to path atomically with 0600 permissions.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.WriteFileAtomic(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// MaxPrecision is the largest accepted output.precision. float64 carries
// about 17 significant digits, so more decimals only print noise.
const MaxPrecision = 17

// Validate checks value ranges and enumerations. It returns ValidateErrors
// listing every problem found, or nil.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Output.Precision < -1 || c.Output.Precision > MaxPrecision {
		errs = append(errs, ValidationError{
			Field:   "output.precision",
			Message: fmt.Sprintf("must be between -1 and %d, got %d", MaxPrecision, c.Output.Precision),
		})
	}

	switch strings.ToLower(c.Output.Color) {
	case "auto", "always", "never":
	default:
		errs = append(errs, ValidationError{
			Field:   "output.color",
			Message: fmt.Sprintf("invalid value '%s', must be one of: auto, always, never", c.Output.Color),
		})
	}

	if c.Output.MarkdownWidth < 20 || c.Output.MarkdownWidth > 500 {
		errs = append(errs, ValidationError{
			Field:   "output.markdown_width",
			Message: fmt.Sprintf("must be between 20 and 500, got %d", c.Output.MarkdownWidth),
		})
	}

	if c.Parser.MaxExponent < 0 {
		errs = append(errs, ValidationError{
			Field:   "parser.max_exponent",
			Message: fmt.Sprintf("must not be negative, got %d", c.Parser.MaxExponent),
		})
	}

	if c.History.MaxEntries < 0 {
		errs = append(errs, ValidationError{
			Field:   "history.max_entries",
			Message: fmt.Sprintf("must not be negative, got %d", c.History.MaxEntries),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills derived values: file paths under the config directory
// and a strict-mode bound when none was given.
func (c *Config) SetDefaults() {
	c.Output.Color = strings.ToLower(c.Output.Color)
	if c.Output.Color == "" {
		c.Output.Color = "auto"
	}
	if c.Parser.StrictExponents && c.Parser.MaxExponent == 0 {
		c.Parser.MaxExponent = DefaultMaxExponent
	}
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = "computor> "
	}

	dir, err := ConfigDir()
	if c.History.Path == "" && err == nil {
		c.History.Path = filepath.Join(dir, "history.db")
	}
	if c.REPL.HistoryFile == "" && err == nil {
		c.REPL.HistoryFile = filepath.Join(dir, "repl_history")
	}
	c.History.Path = expandHome(c.History.Path)
	c.REPL.HistoryFile = expandHome(c.REPL.HistoryFile)
}

// ExponentBound returns the MaxExponent parse option: the configured bound
// in strict mode, 0 (unbounded) otherwise.
func (c *Config) ExponentBound() int {
	if c.Parser.StrictExponents {
		return c.Parser.MaxExponent
	}
	return 0
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - COMPUTOR_PRECISION: overrides output.precision
//   - COMPUTOR_COLOR: overrides output.color
//   - COMPUTOR_STRICT: "1" or "true" enables parser.strict_exponents
//   - COMPUTOR_HISTORY: "0" or "false" disables the history log
//   - COMPUTOR_HISTORY_PATH: overrides history.path
func (c *Config) ApplyEnvOverrides() {
	if p := os.Getenv("COMPUTOR_PRECISION"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			c.Output.Precision = n
		} else {
			log.Printf("config: ignoring COMPUTOR_PRECISION=%q: %v", p, err)
		}
	}

	if color := os.Getenv("COMPUTOR_COLOR"); color != "" {
		c.Output.Color = color
	}

	if strict := os.Getenv("COMPUTOR_STRICT"); strict != "" {
		c.Parser.StrictExponents = parseBool(strict)
	}

	if hist := os.Getenv("COMPUTOR_HISTORY"); hist != "" {
		c.History.Enabled = parseBool(hist)
	}

	if path := os.Getenv("COMPUTOR_HISTORY_PATH"); path != "" {
		c.History.Path = path
	}
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g. "output.precision").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation. String values are
// converted to the field's type. Set does not validate; call Validate after.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

// lookup resolves a two-level "section.field" key to its struct field.
func (c *Config) lookup(key string) (reflect.Value, error) {
	parts := strings.Split(key, ".")
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	if len(parts) != 2 {
		return reflect.Value{}, fmt.Errorf("invalid key %q: expected section.field", key)
	}

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return v, nil
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		result.WriteString(strings.ToUpper(part[:1]))
		result.WriteString(strings.ToLower(part[1:]))
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int:
			intVal, err := strconv.Atoi(strings.TrimSpace(strVal))
			if err != nil {
				return fmt.Errorf("invalid integer value: %w", err)
			}
			field.SetInt(int64(intVal))
			return nil
		case reflect.Bool:
			boolVal, err := strconv.ParseBool(strings.TrimSpace(strVal))
			if err != nil {
				boolVal = parseBool(strVal)
			}
			field.SetBool(boolVal)
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) && val.Kind() != reflect.String && field.Kind() != reflect.String {
		field.Set(val.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns every configuration key in dot notation, sorted.
func GetAllKeys() []string {
	var keys []string
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		section := t.Field(i)
		prefix := section.Tag.Get("toml")
		for j := 0; j < section.Type.NumField(); j++ {
			keys = append(keys, prefix+"."+section.Type.Field(j).Tag.Get("toml"))
		}
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a copy of the configuration. Config holds only value
// fields, so a struct copy is deep.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return buf.String()
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigPath string
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// UsePath makes Global and ReloadGlobal read path instead of the default
// location. It must be called before the first Global call to take effect
// there.
func UsePath(path string) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfigPath = path
}

func loadGlobal() (*Config, error) {
	globalConfigMu.RLock()
	path := globalConfigPath
	globalConfigMu.RUnlock()

	if path != "" {
		return LoadFromPath(path)
	}
	return Load()
}

// Global returns the global configuration instance, loading it on first
// access. A load failure is reported on stderr and defaults are used.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := loadGlobal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
			cfg.SetDefaults()
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. On error the
// current configuration is kept.
func ReloadGlobal() error {
	cfg, err := loadGlobal()
	if err != nil {
		return err
	}
	SetGlobal(cfg)
	return nil
}

// SetGlobal sets the global configuration instance.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigPath = ""
	globalConfigOnce = sync.Once{}
}
