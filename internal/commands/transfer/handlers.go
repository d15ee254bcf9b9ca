package transfercmd

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-quizpack/internal/commands"
	"github.com/goliatone/go-quizpack/internal/domain"
	"github.com/goliatone/go-quizpack/internal/transfer"
	"github.com/goliatone/go-quizpack/pkg/interfaces"
)

// ErrServiceRequired is returned when a handler runs without a transfer service.
var ErrServiceRequired = errors.New("transfercmd: transfer service required")

// Service is the part of transfer.Service the handlers use.
type Service interface {
	ImportAll(ctx context.Context, text string, mode domain.ImportMode) (*transfer.ImportResult, error)
	ImportFile(ctx context.Context, path string, mode domain.ImportMode) (*transfer.ImportResult, error)
	WriteExport(ctx context.Context, dir string) (string, error)
}

// ImportHandler runs ImportCommand.
type ImportHandler struct {
	inner *commands.Handler[ImportCommand]
}

// NewImportHandler constructs an import handler over service.
func NewImportHandler(service Service, logger interfaces.Logger, opts ...commands.HandlerOption[ImportCommand]) *ImportHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ImportCommand) error {
		if service == nil {
			return ErrServiceRequired
		}
		mode := domain.ImportMode(strings.ToLower(strings.TrimSpace(msg.Mode)))

		var (
			result *transfer.ImportResult
			err    error
		)
		if path := strings.TrimSpace(msg.Path); path != "" {
			result, err = service.ImportFile(ctx, path, mode)
		} else {
			result, err = service.ImportAll(ctx, msg.Source, mode)
		}
		if err != nil {
			return err
		}
		if msg.ResultCallback != nil {
			msg.ResultCallback(result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportCommand]{
		commands.WithLogger[ImportCommand](baseLogger),
		commands.WithOperation[ImportCommand]("transfer.import"),
		commands.WithMessageFields(func(msg ImportCommand) map[string]any {
			fields := map[string]any{}
			if msg.Mode != "" {
				fields["import_mode"] = msg.Mode
			}
			if msg.Path != "" {
				fields["import_source"] = msg.Path
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ImportCommand].
func (h *ImportHandler) Execute(ctx context.Context, msg ImportCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ExportHandler runs ExportCommand.
type ExportHandler struct {
	inner *commands.Handler[ExportCommand]
}

// NewExportHandler constructs an export handler over service.
func NewExportHandler(service Service, logger interfaces.Logger, opts ...commands.HandlerOption[ExportCommand]) *ExportHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ExportCommand) error {
		if service == nil {
			return ErrServiceRequired
		}
		path, err := service.WriteExport(ctx, msg.Directory)
		if err != nil {
			return err
		}
		if msg.ResultCallback != nil {
			msg.ResultCallback(path)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ExportCommand]{
		commands.WithLogger[ExportCommand](baseLogger),
		commands.WithOperation[ExportCommand]("transfer.export"),
		commands.WithTelemetry(commands.DefaultTelemetry[ExportCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ExportHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ExportCommand].
func (h *ExportHandler) Execute(ctx context.Context, msg ExportCommand) error {
	return h.inner.Execute(ctx, msg)
}
