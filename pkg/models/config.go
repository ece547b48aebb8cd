package models

// ParsePolicy controls how a collection file that cannot be decoded is handled.
type ParsePolicy string

const (
	// ParseLenient treats an undecodable collection file as empty and logs a
	// warning.
	ParseLenient ParsePolicy = "lenient"
	// ParseStrict fails the operation when a collection file cannot be decoded.
	ParseStrict ParsePolicy = "strict"
)

// MatchPolicy controls which tasks with a given name an operation acts on.
type MatchPolicy string

const (
	// MatchPerOperation lets rename and reschedule act on the first match
	// while remove and complete act on every match.
	MatchPerOperation MatchPolicy = "per-operation"
	// MatchFirst makes every operation act on the first match only.
	MatchFirst MatchPolicy = "first"
	// MatchAll makes every operation act on all matches.
	MatchAll MatchPolicy = "all"
)

// StorageConfig locates the two collection files.
type StorageConfig struct {
	DataDir       string      `yaml:"data_dir" mapstructure:"data_dir"`
	ActiveFile    string      `yaml:"active_file" mapstructure:"active_file"`
	CompletedFile string      `yaml:"completed_file" mapstructure:"completed_file"`
	ParsePolicy   ParsePolicy `yaml:"parse_policy" mapstructure:"parse_policy"`
}

// MatchingConfig holds the name-matching policy.
type MatchingConfig struct {
	Policy MatchPolicy `yaml:"policy" mapstructure:"policy"`
}

// LogConfig holds console logger settings.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// HistoryConfig controls the append-only task history. File is resolved
// against the data directory.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	File    string `yaml:"file" mapstructure:"file"`
}

// Config holds the settings read from .todoconfig via Viper.
type Config struct {
	Storage  StorageConfig  `yaml:"storage" mapstructure:"storage"`
	Matching MatchingConfig `yaml:"matching" mapstructure:"matching"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	History  HistoryConfig  `yaml:"history" mapstructure:"history"`
}
