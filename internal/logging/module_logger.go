package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-quizpack/pkg/interfaces"
)

const (
	rootModule      = "quizpack"
	storeModule     = "quizpack.store"
	libraryModule   = "quizpack.library"
	normalizeModule = "quizpack.normalize"
	transferModule  = "quizpack.transfer"
)

const (
	fieldImportMode    = "import_mode"
	fieldImportDialect = "dialect"
	fieldImportSource  = "source"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// StoreLogger returns the logger namespace reserved for storage backends.
func StoreLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storeModule)
}

// LibraryLogger returns the logger namespace reserved for pack and question management.
func LibraryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, libraryModule)
}

// NormalizeLogger returns the logger namespace reserved for import normalization.
func NormalizeLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, normalizeModule)
}

// TransferLogger returns the logger namespace reserved for import/export workflows.
func TransferLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, transferModule)
}

// WithImportContext enriches the logger with the import mode, detected dialect
// and source label. Empty values are ignored.
func WithImportContext(logger interfaces.Logger, mode, dialect, source string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(mode); trimmed != "" {
		fields[fieldImportMode] = trimmed
	}
	if trimmed := strings.TrimSpace(dialect); trimmed != "" {
		fields[fieldImportDialect] = trimmed
	}
	if trimmed := strings.TrimSpace(source); trimmed != "" {
		fields[fieldImportSource] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
