package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/goliatone/go-quizpack/internal/domain"
	"github.com/goliatone/go-quizpack/internal/jsondoc"
	"github.com/goliatone/go-quizpack/internal/kvstore"
	"github.com/goliatone/go-quizpack/internal/logging"
	"github.com/goliatone/go-quizpack/internal/normalize"
	"github.com/goliatone/go-quizpack/internal/reconcile"
	"github.com/goliatone/go-quizpack/pkg/interfaces"
)

const inlineSource = "inline"

// ImportResult summarises one import.
type ImportResult struct {
	Dialect            normalize.Dialect
	Mode               domain.ImportMode
	PacksAdded         int
	PacksSkipped       int
	QuestionsAdded     int
	QuestionsSkipped   int
	SettingsUpdated    bool
	ActivePack         string
	SelectedCategories []string
}

// Service imports and exports the whole library.
type Service struct {
	store       interfaces.Store
	normalizer  *normalize.Normalizer
	logger      interfaces.Logger
	selectLimit int
}

// Option configures the transfer service.
type Option func(*Service)

// WithNormalizer overrides the normalizer, for example to switch legacy id
// generation.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(s *Service) {
		if n != nil {
			s.normalizer = n
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSelectedCategoryLimit caps the categories auto-selected after an
// import. Values below one keep the default.
func WithSelectedCategoryLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.selectLimit = limit
		}
	}
}

// NewService returns a transfer service backed by store.
func NewService(store interfaces.Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	s := &Service{
		store:       store,
		logger:      logging.NoOp(),
		selectLimit: domain.SelectedCatsLimit,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.normalizer == nil {
		s.normalizer = normalize.New(normalize.WithLogger(s.logger))
	}
	return s, nil
}

// ImportAll imports one JSON document. It fails only when the text is not
// valid JSON, the mode is unknown or the store rejects the write; the store
// is left unchanged in every failure case.
func (s *Service) ImportAll(ctx context.Context, text string, mode domain.ImportMode) (*ImportResult, error) {
	return s.importText(ctx, []byte(text), mode, inlineSource)
}

// ImportFile reads path and imports its contents.
func (s *Service) ImportFile(ctx context.Context, path string, mode domain.ImportMode) (*ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, readFailed(err)
	}
	return s.importText(ctx, data, mode, path)
}

func (s *Service) importText(ctx context.Context, data []byte, mode domain.ImportMode, source string) (*ImportResult, error) {
	mode, err := domain.ParseImportMode(string(mode))
	if err != nil {
		return nil, invalidMode(err)
	}

	doc, err := jsondoc.Decode(data)
	if err != nil {
		logging.WithImportContext(s.logger.WithContext(ctx), string(mode), "", source).
			Warn("transfer.import.malformed", "error", err)
		return nil, malformedJSON(err)
	}

	payload, dialect := s.normalizer.Normalize(doc)
	normalize.InferCategories(&payload, domain.DefaultCategory)
	logger := logging.WithImportContext(s.logger.WithContext(ctx), string(mode), string(dialect), source)

	existing, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}
	merged, counts := reconcile.Reconcile(existing, reconcile.State{
		Packs:     payload.Packs,
		Questions: payload.Questions,
	}, mode)

	result := &ImportResult{
		Dialect:          dialect,
		Mode:             mode,
		PacksAdded:       counts.PacksAdded,
		PacksSkipped:     counts.PacksSkipped,
		QuestionsAdded:   counts.QuestionsAdded,
		QuestionsSkipped: counts.QuestionsSkipped,
	}

	writes := map[string]any{
		domain.PacksKey:     merged.Packs,
		domain.QuestionsKey: merged.Questions,
	}

	switch mode {
	case domain.ImportReplace:
		if len(merged.Packs) == 0 {
			writes[domain.PacksKey] = []domain.Pack{domain.DefaultPack()}
		}
		result.ActivePack = payload.ActivePack
		if result.ActivePack == "" {
			result.ActivePack = domain.DefaultPackID
		}
		writes[domain.ActivePackKey] = result.ActivePack
		if payload.Settings != nil {
			writes[domain.SettingsKey] = payload.Settings
			result.SettingsUpdated = true
		}
	default:
		if payload.ActivePack != "" {
			writes[domain.ActivePackKey] = payload.ActivePack
			result.ActivePack = payload.ActivePack
		}
		if payload.Settings != nil {
			current, err := kvstore.GetJSON(ctx, s.store, domain.SettingsKey, domain.Settings{})
			if err != nil {
				return nil, err
			}
			writes[domain.SettingsKey] = mergeSettings(current, payload.Settings)
			result.SettingsUpdated = true
		}
	}

	if len(payload.Questions) > 0 {
		result.SelectedCategories = reconcile.SelectCategories(payload.Questions, s.selectLimit)
		writes[domain.SelectedCatsKey] = result.SelectedCategories
	}

	if err := kvstore.SetManyJSON(ctx, s.store, writes); err != nil {
		logger.Error("transfer.import.write_failed", "error", err)
		return nil, writeFailed(err)
	}

	logger.Info("transfer.import.completed",
		"packs_added", result.PacksAdded,
		"packs_skipped", result.PacksSkipped,
		"questions_added", result.QuestionsAdded,
		"questions_skipped", result.QuestionsSkipped,
		"selected_categories", len(result.SelectedCategories),
	)
	return result, nil
}

func (s *Service) loadState(ctx context.Context) (reconcile.State, error) {
	packs, err := kvstore.GetJSON(ctx, s.store, domain.PacksKey, []domain.Pack{})
	if err != nil {
		return reconcile.State{}, err
	}
	questions, err := kvstore.GetJSON(ctx, s.store, domain.QuestionsKey, []domain.Question{})
	if err != nil {
		return reconcile.State{}, err
	}
	return reconcile.State{Packs: packs, Questions: questions}, nil
}

// mergeSettings overlays incoming keys on current, one level deep.
func mergeSettings(current, incoming domain.Settings) domain.Settings {
	out := make(domain.Settings, len(current)+len(incoming))
	for key, value := range current {
		out[key] = value
	}
	for key, value := range incoming {
		out[key] = value
	}
	return out
}

// Export collects the document written by the export operation.
func (s *Service) Export(ctx context.Context) (domain.Export, error) {
	settings, err := kvstore.GetJSON(ctx, s.store, domain.SettingsKey, domain.Settings{})
	if err != nil {
		return domain.Export{}, err
	}
	state, err := s.loadState(ctx)
	if err != nil {
		return domain.Export{}, err
	}
	active, err := kvstore.GetJSON(ctx, s.store, domain.ActivePackKey, domain.DefaultPackID)
	if err != nil {
		return domain.Export{}, err
	}
	if settings == nil {
		settings = domain.Settings{}
	}
	if state.Packs == nil {
		state.Packs = []domain.Pack{}
	}
	if state.Questions == nil {
		state.Questions = []domain.Question{}
	}
	return domain.Export{
		Settings:   settings,
		Packs:      state.Packs,
		ActivePack: active,
		Questions:  state.Questions,
	}, nil
}

// ExportJSON renders the export document with two-space indentation.
func (s *Service) ExportJSON(ctx context.Context) ([]byte, error) {
	export, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(export); err != nil {
		return nil, exportFailed(err, "export document could not be encoded")
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// WriteExport writes the export document to dir/seen-jeem-export.json and
// returns the file path. The file is replaced atomically.
func (s *Service) WriteExport(ctx context.Context, dir string) (string, error) {
	data, err := s.ExportJSON(ctx)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, domain.ExportFilename)

	tmp, err := os.CreateTemp(dir, domain.ExportFilename+".*.tmp")
	if err != nil {
		return "", exportFailed(err, "export file could not be created")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", exportFailed(err, "export file could not be written")
	}
	if err := tmp.Close(); err != nil {
		return "", exportFailed(err, "export file could not be written")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", exportFailed(err, "export file could not be written")
	}

	s.logger.WithContext(ctx).Info("transfer.export.written", "path", path)
	return path, nil
}
