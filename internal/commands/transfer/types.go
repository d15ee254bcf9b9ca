package transfercmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-quizpack/internal/domain"
	"github.com/goliatone/go-quizpack/internal/transfer"
)

const (
	importMessageType = "quizpack.transfer.import"
	exportMessageType = "quizpack.transfer.export"
)

// ImportCommand imports one document, given inline or as a file path.
type ImportCommand struct {
	Source         string                       `json:"source,omitempty"`
	Path           string                       `json:"path,omitempty"`
	Mode           string                       `json:"mode,omitempty"`
	ResultCallback func(*transfer.ImportResult) `json:"-"`
}

// Type implements command.Message.
func (ImportCommand) Type() string { return importMessageType }

// Validate requires exactly one of Source and Path, and a known mode.
func (m ImportCommand) Validate() error {
	errs := validation.Errors{}
	hasSource := m.Source != ""
	hasPath := strings.TrimSpace(m.Path) != ""
	switch {
	case !hasSource && !hasPath:
		errs["source"] = validation.NewError("quizpack.transfer.import.source_required", "source or path is required")
	case hasSource && hasPath:
		errs["path"] = validation.NewError("quizpack.transfer.import.source_conflict", "source and path are mutually exclusive")
	}
	if err := validation.Validate(strings.ToLower(strings.TrimSpace(m.Mode)),
		validation.In(string(domain.ImportMerge), string(domain.ImportReplace)).
			ErrorObject(validation.NewError("quizpack.transfer.import.mode_invalid", "mode must be merge or replace")),
	); err != nil {
		errs["mode"] = err
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ExportCommand writes the export document into Directory.
type ExportCommand struct {
	Directory      string       `json:"directory,omitempty"`
	ResultCallback func(string) `json:"-"`
}

// Type implements command.Message.
func (ExportCommand) Type() string { return exportMessageType }

// Validate rejects a directory made only of whitespace.
func (m ExportCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Directory, validation.By(func(value any) error {
			dir, _ := value.(string)
			if dir != "" && strings.TrimSpace(dir) == "" {
				return validation.NewError("quizpack.transfer.export.directory_invalid", "directory must not be blank")
			}
			return nil
		})),
	)
}
