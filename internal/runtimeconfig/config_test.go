package runtimeconfig_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-quizpack/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if cfg.Import.LegacyIDs != runtimeconfig.LegacyIDsDeterministic {
		t.Fatalf("expected deterministic legacy ids by default, got %q", cfg.Import.LegacyIDs)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{"unknown storage", func(c *runtimeconfig.Config) { c.Storage.Provider = "etcd" }, runtimeconfig.ErrStorageProviderUnknown},
		{"sqlite without dsn", func(c *runtimeconfig.Config) { c.Storage.Provider = "sqlite" }, runtimeconfig.ErrStorageDSNRequired},
		{"postgres without dsn", func(c *runtimeconfig.Config) { c.Storage.Provider = "Postgres" }, runtimeconfig.ErrStorageDSNRequired},
		{"redis without url", func(c *runtimeconfig.Config) { c.Storage.Provider = "redis" }, runtimeconfig.ErrRedisURLRequired},
		{"negative ttl", func(c *runtimeconfig.Config) { c.Cache.DefaultTTL = -time.Second }, runtimeconfig.ErrCacheTTLInvalid},
		{"bad mode", func(c *runtimeconfig.Config) { c.Import.DefaultMode = "append" }, runtimeconfig.ErrImportModeInvalid},
		{"bad legacy ids", func(c *runtimeconfig.Config) { c.Import.LegacyIDs = "content" }, runtimeconfig.ErrLegacyIDsInvalid},
		{"negative limit", func(c *runtimeconfig.Config) { c.Import.SelectedCategoryLimit = -1 }, runtimeconfig.ErrSelectedCategoryLimitInvalid},
		{"unknown logger", func(c *runtimeconfig.Config) { c.Logging.Provider = "syslog" }, runtimeconfig.ErrLoggingProviderUnknown},
		{"bad level", func(c *runtimeconfig.Config) { c.Logging.Level = "loud" }, runtimeconfig.ErrLoggingLevelInvalid},
		{"bad format", func(c *runtimeconfig.Config) { c.Logging.Format = "xml" }, runtimeconfig.ErrLoggingFormatInvalid},
		{"sqlite with dsn", func(c *runtimeconfig.Config) {
			c.Storage.Provider = "sqlite"
			c.Storage.DSN = "file:quiz.db"
		}, nil},
		{"noop ignores format", func(c *runtimeconfig.Config) {
			c.Logging.Provider = "noop"
			c.Logging.Format = "xml"
		}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() returned unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	cfg, err := runtimeconfig.LoadFile(filepath.Join("testdata", "redis.yaml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Storage.Provider != "redis" || cfg.Storage.RedisURL != "redis://localhost:6379/2" || cfg.Storage.KeyPrefix != "trivia:" {
		t.Fatalf("unexpected storage %+v", cfg.Storage)
	}
	if cfg.Import.DefaultMode != "replace" || cfg.Import.LegacyIDs != "random" || cfg.Import.SelectedCategoryLimit != 4 {
		t.Fatalf("unexpected import config %+v", cfg.Import)
	}
	if cfg.Logging.Provider != runtimeconfig.LoggingGoLogger || cfg.Logging.Level != "debug" || len(cfg.Logging.Focus) != 1 {
		t.Fatalf("expected logging overlay on defaults, got %+v", cfg.Logging)
	}
	if cfg.Cache.DefaultTTL != time.Minute {
		t.Fatalf("expected default ttl kept, got %v", cfg.Cache.DefaultTTL)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := runtimeconfig.LoadFile(filepath.Join("testdata", "invalid.yaml")); !errors.Is(err, runtimeconfig.ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}
	if _, err := runtimeconfig.LoadFile(filepath.Join("testdata", "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
