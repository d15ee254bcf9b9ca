package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-quizpack"
	transfercmd "github.com/goliatone/go-quizpack/internal/commands/transfer"
	"github.com/goliatone/go-quizpack/internal/di"
	"github.com/goliatone/go-quizpack/internal/logging"
	"github.com/goliatone/go-quizpack/pkg/interfaces"
)

// Options captures configuration shared by the quizpack CLIs. Non-empty
// fields override values read from ConfigPath.
type Options struct {
	ConfigPath     string
	Storage        string
	DSN            string
	RedisURL       string
	LogLevel       string
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the quizpack module and the pieces the CLIs drive.
type Module struct {
	Module      *quizpack.Module
	Service     transfercmd.Service
	Logger      interfaces.Logger
	DefaultMode string
}

// Close releases the underlying module.
func (m *Module) Close() error {
	if m == nil || m.Module == nil {
		return nil
	}
	return m.Module.Close()
}

// LoadConfig resolves the effective configuration for opts.
func LoadConfig(opts Options) (quizpack.Config, error) {
	cfg := quizpack.DefaultConfig()
	if path := strings.TrimSpace(opts.ConfigPath); path != "" {
		loaded, err := quizpack.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if value := strings.TrimSpace(opts.Storage); value != "" {
		cfg.Storage.Provider = value
	}
	if value := strings.TrimSpace(opts.DSN); value != "" {
		cfg.Storage.DSN = value
	}
	if value := strings.TrimSpace(opts.RedisURL); value != "" {
		cfg.Storage.RedisURL = value
	}
	if value := strings.TrimSpace(opts.LogLevel); value != "" {
		cfg.Logging.Level = value
	}
	return cfg, cfg.Validate()
}

// BuildModule constructs a quizpack module for CLI use.
func BuildModule(opts Options) (*Module, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := quizpack.New(context.Background(), cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise quizpack module: %w", err)
	}

	return &Module{
		Module:      module,
		Service:     module.Transfer(),
		Logger:      logging.ModuleLogger(module.Container().LoggerProvider(), "quizpack.cli"),
		DefaultMode: cfg.Import.DefaultMode,
	}, nil
}
