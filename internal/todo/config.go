// Package todo wires the record store and the template pipeline to a data
// directory: configuration, directory layout and bootstrap.
package todo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"

	"github.com/calvinalkan/agent-todo/internal/store"
	"github.com/calvinalkan/agent-todo/internal/template"
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	DataDir         string    `json:"data_dir"`
	DefaultTemplate string    `json:"default_template"`
	Log             LogConfig `json:"log"`

	// Resolved paths (computed, not serialized)
	EffectiveCwd string `json:"-"` // Absolute working directory (from -C flag or os.Getwd)
	DataDirAbs   string `json:"-"` // Absolute path to the data root

	// Sources tracks which config files were loaded (for diagnostics)
	Sources ConfigSources `json:"-"`
}

// LogConfig selects the slog handler and level.
type LogConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // text or json
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DataDir:         ".",
		DefaultTemplate: template.DefaultName,
		Log:             LogConfig{Level: "warn", Format: "text"},
	}
}

// ConfigFileName is the default project config file name.
const ConfigFileName = ".td.json"

// getGlobalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/td/config.json if set, otherwise ~/.config/td/config.json.
// Returns empty string if home directory cannot be determined.
func getGlobalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "td", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "td", "config.json")
	}

	return ""
}

// LoadConfigInput holds the inputs for LoadConfig.
type LoadConfigInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	DataDirOverride string            // --data-dir flag value; empty means no override
	Env             map[string]string // environment variables
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/td/config.json or $XDG_CONFIG_HOME/td/config.json)
// 3. Project config file at default location (.td.json, if exists)
// 4. Explicit config file via ConfigPath (replaces 3, must exist)
// 5. CLI overrides.
//
// All paths in the returned Config are resolved to absolute paths.
func LoadConfig(input LoadConfigInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	workDir, err := filepath.Abs(workDir)
	if err != nil {
		return Config{}, fmt.Errorf("cannot resolve working directory: %w", err)
	}

	cfg := DefaultConfig()

	globalCfg, globalPath, err := loadOptionalConfig(getGlobalConfigPath(input.Env))
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = globalPath
	cfg = mergeConfig(cfg, globalCfg)

	projectCfg, projectPath, err := loadProjectConfig(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = mergeConfig(cfg, projectCfg)

	if input.DataDirOverride != "" {
		cfg.DataDir = input.DataDirOverride
	}

	if cfg.DataDir == "" {
		return Config{}, ErrDataDirEmpty
	}

	cfg.EffectiveCwd = workDir

	if filepath.IsAbs(cfg.DataDir) {
		cfg.DataDirAbs = filepath.Clean(cfg.DataDir)
	} else {
		cfg.DataDirAbs = filepath.Join(workDir, cfg.DataDir)
	}

	return cfg, nil
}

// loadOptionalConfig loads a config file if it exists.
// Returns the config, the path if loaded, and any error.
func loadOptionalConfig(path string) (Config, string, error) {
	if path == "" {
		return Config{}, "", nil
	}

	cfg, loaded, err := loadConfigFile(path, false)
	if err != nil || !loaded {
		return Config{}, "", err
	}

	return cfg, path, nil
}

// loadProjectConfig loads the project config file (.td.json) or an explicit config file.
func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	if configPath == "" {
		return loadOptionalConfig(filepath.Join(workDir, ConfigFileName))
	}

	cfgFile := configPath
	if !filepath.IsAbs(cfgFile) {
		cfgFile = filepath.Join(workDir, cfgFile)
	}

	_, statErr := os.Stat(cfgFile)
	if statErr != nil {
		return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
	}

	cfg, _, err := loadConfigFile(cfgFile, true)
	if err != nil {
		return Config{}, "", err
	}

	return cfg, cfgFile, nil
}

// loadConfigFile loads a config file. If mustExist is false, missing files return zero config.
// Returns the config, whether the file was loaded, and any error.
func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
	}

	cfg, err := parseConfig(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	return cfg, true, nil
}

func parseConfig(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	err = json.Unmarshal(standardized, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	// A key that is present but empty is a mistake, not "use the default".
	var raw map[string]json.RawMessage

	_ = json.Unmarshal(standardized, &raw)

	if val, exists := raw["data_dir"]; exists && string(val) == `""` {
		return Config{}, ErrDataDirEmpty
	}

	return cfg, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.DataDir != "" {
		base.DataDir = overlay.DataDir
	}

	if overlay.DefaultTemplate != "" {
		base.DefaultTemplate = overlay.DefaultTemplate
	}

	if overlay.Log.Level != "" {
		base.Log.Level = overlay.Log.Level
	}

	if overlay.Log.Format != "" {
		base.Log.Format = overlay.Log.Format
	}

	return base
}

// FormatConfig returns the config as pretty-printed JSON.
func FormatConfig(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("format config: %w", err)
	}

	return string(data), nil
}

// TasksDir returns the absolute tasks directory.
func (c Config) TasksDir() string {
	return filepath.Join(c.DataDirAbs, store.TasksDir)
}

// TemplatesDir returns the absolute templates directory.
func (c Config) TemplatesDir() string {
	return filepath.Join(c.DataDirAbs, templatesDirName)
}
