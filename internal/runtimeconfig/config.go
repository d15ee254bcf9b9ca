package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrStorageProviderUnknown       = errors.New("quizpack config: storage provider is invalid")
	ErrStorageDSNRequired           = errors.New("quizpack config: storage dsn is required for sql providers")
	ErrRedisURLRequired             = errors.New("quizpack config: redis url is required for the redis provider")
	ErrCacheTTLInvalid              = errors.New("quizpack config: cache ttl must be zero or positive")
	ErrImportModeInvalid            = errors.New("quizpack config: import default mode must be merge or replace")
	ErrLegacyIDsInvalid             = errors.New("quizpack config: legacy ids must be random or deterministic")
	ErrSelectedCategoryLimitInvalid = errors.New("quizpack config: selected category limit must be zero or positive")
	ErrLoggingProviderUnknown       = errors.New("quizpack config: logging provider is invalid")
	ErrLoggingLevelInvalid          = errors.New("quizpack config: logging level is invalid")
	ErrLoggingFormatInvalid         = errors.New("quizpack config: logging format is invalid")
)

const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"

	LegacyIDsRandom        = "random"
	LegacyIDsDeterministic = "deterministic"

	LoggingGoLogger = "gologger"
	LoggingNoop     = "noop"
)

// Config aggregates the runtime options of the module.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Cache   CacheConfig   `yaml:"cache"`
	Import  ImportConfig  `yaml:"import"`
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig selects the key-value backend.
type StorageConfig struct {
	Provider    string `yaml:"provider"`
	DSN         string `yaml:"dsn"`
	RedisURL    string `yaml:"redis_url"`
	KeyPrefix   string `yaml:"key_prefix"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

// CacheConfig toggles read caching for SQL storage.
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// ImportConfig captures import defaults.
type ImportConfig struct {
	DefaultMode           string `yaml:"default_mode"`
	LegacyIDs             string `yaml:"legacy_ids"`
	SelectedCategoryLimit int    `yaml:"selected_category_limit"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns an in-memory setup with deterministic legacy ids.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Provider:    StorageMemory,
			KeyPrefix:   "quizpack:",
			AutoMigrate: true,
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		Import: ImportConfig{
			DefaultMode:           "merge",
			LegacyIDs:             LegacyIDsDeterministic,
			SelectedCategoryLimit: 6,
		},
		Logging: LoggingConfig{
			Provider: LoggingGoLogger,
			Level:    "info",
			Format:   "console",
		},
	}
}

// LoadFile overlays the YAML document at path on DefaultConfig and
// validates the result.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("quizpack config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("quizpack config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate performs consistency checks.
func (cfg Config) Validate() error {
	switch normalize(cfg.Storage.Provider) {
	case StorageMemory:
	case StorageSQLite, StoragePostgres:
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return fmt.Errorf("%w: %s", ErrStorageDSNRequired, normalize(cfg.Storage.Provider))
		}
	case StorageRedis:
		if strings.TrimSpace(cfg.Storage.RedisURL) == "" {
			return ErrRedisURLRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}

	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}

	switch normalize(cfg.Import.DefaultMode) {
	case "", "merge", "replace":
	default:
		return fmt.Errorf("%w: %s", ErrImportModeInvalid, cfg.Import.DefaultMode)
	}
	switch normalize(cfg.Import.LegacyIDs) {
	case "", LegacyIDsRandom, LegacyIDsDeterministic:
	default:
		return fmt.Errorf("%w: %s", ErrLegacyIDsInvalid, cfg.Import.LegacyIDs)
	}
	if cfg.Import.SelectedCategoryLimit < 0 {
		return ErrSelectedCategoryLimitInvalid
	}

	provider := normalize(cfg.Logging.Provider)
	switch provider {
	case "", LoggingNoop, LoggingGoLogger:
	default:
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == LoggingGoLogger {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
