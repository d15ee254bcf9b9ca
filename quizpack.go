package quizpack

import (
	"context"

	"github.com/goliatone/go-quizpack/internal/di"
	"github.com/goliatone/go-quizpack/internal/domain"
	"github.com/goliatone/go-quizpack/internal/jsondoc"
	"github.com/goliatone/go-quizpack/internal/library"
	"github.com/goliatone/go-quizpack/internal/normalize"
	"github.com/goliatone/go-quizpack/internal/transfer"
)

type (
	Pack          = domain.Pack
	Question      = domain.Question
	Settings      = domain.Settings
	TeamNames     = domain.TeamNames
	Payload       = domain.Payload
	Export        = domain.Export
	ImportMode    = domain.ImportMode
	ImportResult  = transfer.ImportResult
	QuestionInput = library.QuestionInput
	QuestionPatch = library.QuestionPatch
	Dialect       = normalize.Dialect
)

const (
	ImportMerge   = domain.ImportMerge
	ImportReplace = domain.ImportReplace
)

// LibraryService exports the pack and question management contract.
type LibraryService = library.Service

// TransferService exports the import/export service.
type TransferService = *transfer.Service

// Module is the top level quizpack runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a module from cfg. Stored defaults are seeded before it
// returns.
func New(ctx context.Context, cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Library returns the pack and question service.
func (m *Module) Library() LibraryService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.LibraryService()
}

// Transfer returns the import/export service.
func (m *Module) Transfer() TransferService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.TransferService()
}

// ImportAll imports one JSON document in the given mode.
func (m *Module) ImportAll(ctx context.Context, text string, mode ImportMode) (*ImportResult, error) {
	return m.container.TransferService().ImportAll(ctx, text, mode)
}

// ImportFile reads path and imports it in the given mode.
func (m *Module) ImportFile(ctx context.Context, path string, mode ImportMode) (*ImportResult, error) {
	return m.container.TransferService().ImportFile(ctx, path, mode)
}

// Export returns the current export document.
func (m *Module) Export(ctx context.Context) (Export, error) {
	return m.container.TransferService().Export(ctx)
}

// WriteExport writes the export file into dir and returns its path.
func (m *Module) WriteExport(ctx context.Context, dir string) (string, error) {
	return m.container.TransferService().WriteExport(ctx, dir)
}

// Normalize decodes text and converts it into a payload without touching
// storage. Object key order in text is preserved.
func (m *Module) Normalize(text string) (Payload, Dialect, error) {
	doc, err := jsondoc.DecodeString(text)
	if err != nil {
		return Payload{}, normalize.DialectUnknown, err
	}
	payload, dialect := m.container.Normalizer().Normalize(doc)
	return payload, dialect, nil
}

// Close releases storage connections owned by the module.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
