package core

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/valter-silva-au/todo-cli/pkg/models"
)

// ConfigFileName is the name of the YAML configuration file looked up in the
// base directory.
const ConfigFileName = ".todoconfig"

// ConfigurationManager defines the interface for loading and validating
// configuration from .todoconfig and TODO_* environment variables.
type ConfigurationManager interface {
	LoadConfig() (*models.Config, error)
	ValidateConfig(cfg *models.Config) error
	ConfigPath() string
}

// viperConfigManager implements ConfigurationManager using Viper for
// reading YAML configuration files.
type viperConfigManager struct {
	// basePath is the root directory where .todoconfig resides.
	basePath string
}

// NewConfigurationManager creates a new ConfigurationManager that reads
// configuration files relative to basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *models.Config {
	return &models.Config{
		Storage: models.StorageConfig{
			DataDir:       ".",
			ActiveFile:    "tasks.json",
			CompletedFile: "completed_tasks.json",
			ParsePolicy:   models.ParseLenient,
		},
		Matching: models.MatchingConfig{
			Policy: models.MatchPerOperation,
		},
		Log: models.LogConfig{
			Level:  "warn",
			Format: "text",
		},
		History: models.HistoryConfig{
			Enabled: false,
			File:    ".todo_history.jsonl",
		},
	}
}

func (cm *viperConfigManager) ConfigPath() string {
	return filepath.Join(cm.basePath, ConfigFileName)
}

// LoadConfig reads .todoconfig from the base path using Viper. Missing keys
// and a missing file fall back to DefaultConfig. TODO_* environment
// variables override file values, e.g. TODO_STORAGE_PARSE_POLICY.
func (cm *viperConfigManager) LoadConfig() (*models.Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)
	v.SetEnvPrefix("TODO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("storage.data_dir", cfg.Storage.DataDir)
	v.SetDefault("storage.active_file", cfg.Storage.ActiveFile)
	v.SetDefault("storage.completed_file", cfg.Storage.CompletedFile)
	v.SetDefault("storage.parse_policy", string(cfg.Storage.ParsePolicy))
	v.SetDefault("matching.policy", string(cfg.Matching.Policy))
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("history.enabled", cfg.History.Enabled)
	v.SetDefault("history.file", cfg.History.File)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading %s: %w", ConfigFileName, err)
		}
	}

	cfg.Storage.DataDir = v.GetString("storage.data_dir")
	cfg.Storage.ActiveFile = v.GetString("storage.active_file")
	cfg.Storage.CompletedFile = v.GetString("storage.completed_file")
	cfg.Storage.ParsePolicy = models.ParsePolicy(v.GetString("storage.parse_policy"))
	cfg.Matching.Policy = models.MatchPolicy(v.GetString("matching.policy"))
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")
	cfg.History.Enabled = v.GetBool("history.enabled")
	cfg.History.File = v.GetString("history.file")

	return cfg, nil
}

var validParsePolicies = map[models.ParsePolicy]bool{
	models.ParseLenient: true,
	models.ParseStrict:  true,
}

var validMatchPolicies = map[models.MatchPolicy]bool{
	models.MatchPerOperation: true,
	models.MatchFirst:        true,
	models.MatchAll:          true,
}

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

var validLogFormats = map[string]bool{
	"text": true, "json": true, "logfmt": true,
}

// ValidateConfig checks cfg for invalid values and reports all of them in a
// single error.
func (cm *viperConfigManager) ValidateConfig(cfg *models.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	if cfg.Storage.ActiveFile == "" {
		errs = append(errs, "storage.active_file must not be empty")
	}
	if cfg.Storage.CompletedFile == "" {
		errs = append(errs, "storage.completed_file must not be empty")
	}
	if cfg.Storage.ActiveFile != "" && filepath.Clean(cfg.Storage.ActiveFile) == filepath.Clean(cfg.Storage.CompletedFile) {
		errs = append(errs, fmt.Sprintf(
			"storage.active_file and storage.completed_file must differ, both are %q",
			cfg.Storage.ActiveFile,
		))
	}
	if !validParsePolicies[cfg.Storage.ParsePolicy] {
		errs = append(errs, fmt.Sprintf(
			"storage.parse_policy %q is invalid, must be one of: lenient, strict",
			cfg.Storage.ParsePolicy,
		))
	}
	if !validMatchPolicies[cfg.Matching.Policy] {
		errs = append(errs, fmt.Sprintf(
			"matching.policy %q is invalid, must be one of: per-operation, first, all",
			cfg.Matching.Policy,
		))
	}
	if !validLogLevels[strings.ToLower(cfg.Log.Level)] {
		errs = append(errs, fmt.Sprintf(
			"log.level %q is invalid, must be one of: debug, info, warn, error",
			cfg.Log.Level,
		))
	}
	if !validLogFormats[strings.ToLower(cfg.Log.Format)] {
		errs = append(errs, fmt.Sprintf(
			"log.format %q is invalid, must be one of: text, json, logfmt",
			cfg.Log.Format,
		))
	}

	if cfg.History.Enabled && cfg.History.File == "" {
		errs = append(errs, "history.file must not be empty when history is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// dataDir resolves the configured data directory against basePath.
func dataDir(basePath string, cfg *models.Config) string {
	dir := cfg.Storage.DataDir
	if dir == "" {
		dir = "."
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(basePath, dir)
	}
	return dir
}

// HistoryPath returns the task history file path for cfg.
func HistoryPath(basePath string, cfg *models.Config) string {
	return filepath.Join(dataDir(basePath, cfg), cfg.History.File)
}

// CollectionPaths returns the active and completed file paths for cfg. A
// relative data directory is resolved against basePath.
func CollectionPaths(basePath string, cfg *models.Config) (active, completed string) {
	dir := dataDir(basePath, cfg)
	return filepath.Join(dir, cfg.Storage.ActiveFile), filepath.Join(dir, cfg.Storage.CompletedFile)
}
