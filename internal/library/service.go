package library

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-quizpack/internal/domain"
	"github.com/goliatone/go-quizpack/internal/identity"
	"github.com/goliatone/go-quizpack/internal/kvstore"
	"github.com/goliatone/go-quizpack/internal/logging"
	"github.com/goliatone/go-quizpack/internal/normalize"
	"github.com/goliatone/go-quizpack/internal/slug"
	"github.com/goliatone/go-quizpack/pkg/interfaces"
)

// Service manages packs, questions and game state held in a key-value store.
type Service interface {
	InitDefaults(ctx context.Context) error

	ListPacks(ctx context.Context) ([]domain.Pack, error)
	ActivePack(ctx context.Context) (string, error)
	SetActivePack(ctx context.Context, id string) error
	AddPack(ctx context.Context, name string) (string, error)
	DeletePack(ctx context.Context, id string) error
	DeleteCategory(ctx context.Context, packID, category string) (int, error)

	ListQuestions(ctx context.Context) ([]domain.Question, error)
	ListQuestionsByPack(ctx context.Context, packID string) ([]domain.Question, error)
	AddQuestion(ctx context.Context, input QuestionInput) (domain.Question, error)
	UpdateQuestion(ctx context.Context, id string, patch QuestionPatch) (bool, error)
	DeleteQuestion(ctx context.Context, id string) error
	DistinctCategories(ctx context.Context, packID string) ([]string, error)

	SelectedCategories(ctx context.Context) ([]string, error)
	SetSelectedCategories(ctx context.Context, categories []string) error
	TeamNames(ctx context.Context) (domain.TeamNames, error)
	SetTeamNames(ctx context.Context, names domain.TeamNames) error
	Settings(ctx context.Context) (domain.Settings, error)
	SetSettings(ctx context.Context, settings domain.Settings) error
}

// QuestionInput describes a question to add. Level accepts anything
// normalize.CoerceLevel understands.
type QuestionInput struct {
	Pack     string
	Category string
	Level    any
	Q        string
	A        string
	Img      string
}

// QuestionPatch holds the fields to change on an existing question. Nil
// fields are left as they are.
type QuestionPatch struct {
	Pack       *string
	Category   *string
	Level      any
	Q          *string
	A          *string
	Img        *string
	ClearImage bool
}

var (
	ErrStoreRequired        = errors.New("library: store required")
	ErrPackNameRequired     = errors.New("library: pack name is required")
	ErrPackIDRequired       = errors.New("library: pack id is required")
	ErrPackExists           = errors.New("library: pack already exists")
	ErrDefaultPackProtected = errors.New("library: the default pack cannot be deleted")
	ErrQuestionIDRequired   = errors.New("library: question id is required")
)

// ServiceOption configures the library service.
type ServiceOption func(*service)

// WithClock overrides the time source used for fallback pack ids.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the question id generator.
func WithIDGenerator(generator identity.Generator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.ids = generator
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	store  interfaces.Store
	ids    identity.Generator
	now    func() time.Time
	logger interfaces.Logger
}

// NewService returns a library service backed by store.
func NewService(store interfaces.Store, opts ...ServiceOption) (Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	s := &service{
		store:  store,
		ids:    identity.RandomIDs{},
		now:    time.Now,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// InitDefaults seeds every key that is missing or holds null.
func (s *service) InitDefaults(ctx context.Context) error {
	defaults := map[string]any{
		domain.SettingsKey:     domain.DefaultSettings(),
		domain.PacksKey:        []domain.Pack{domain.DefaultPack()},
		domain.ActivePackKey:   domain.DefaultPackID,
		domain.QuestionsKey:    []domain.Question{},
		domain.SelectedCatsKey: []string{},
		domain.TeamNamesKey:    domain.DefaultTeamNames(),
	}
	missing := map[string]any{}
	for key, value := range defaults {
		raw, err := s.store.Get(ctx, key)
		switch {
		case errors.Is(err, kvstore.ErrNotFound):
		case err != nil:
			return err
		case isEmptyValue(raw):
		default:
			continue
		}
		missing[key] = value
	}
	if len(missing) == 0 {
		return nil
	}
	if err := kvstore.SetManyJSON(ctx, s.store, missing); err != nil {
		return err
	}
	s.logger.Info("library.defaults.seeded", "keys", len(missing))
	return nil
}

func isEmptyValue(raw []byte) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", `""`, "false", "0":
		return true
	default:
		return false
	}
}

func (s *service) ListPacks(ctx context.Context) ([]domain.Pack, error) {
	return kvstore.GetJSON(ctx, s.store, domain.PacksKey, []domain.Pack{})
}

func (s *service) ActivePack(ctx context.Context) (string, error) {
	active, err := kvstore.GetJSON(ctx, s.store, domain.ActivePackKey, domain.DefaultPackID)
	if err != nil {
		return domain.DefaultPackID, err
	}
	if active == "" {
		return domain.DefaultPackID, nil
	}
	return active, nil
}

func (s *service) SetActivePack(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrPackIDRequired
	}
	return kvstore.SetJSON(ctx, s.store, domain.ActivePackKey, id)
}

// AddPack creates a pack whose id is the slug of name, or pack-<unix millis>
// when the name has no usable characters.
func (s *service) AddPack(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrPackNameRequired
	}
	id := slug.Slugify(name)
	if id == "" {
		id = "pack-" + strconv.FormatInt(s.now().UnixMilli(), 10)
	}

	packs, err := s.ListPacks(ctx)
	if err != nil {
		return "", err
	}
	for _, pack := range packs {
		if pack.ID == id {
			return "", ErrPackExists
		}
	}
	packs = append(packs, domain.Pack{ID: id, Name: name})
	if err := kvstore.SetJSON(ctx, s.store, domain.PacksKey, packs); err != nil {
		return "", err
	}
	s.logger.Info("library.pack.created", "pack_id", id)
	return id, nil
}

// DeletePack removes the pack and its questions. When it was the active
// pack, the default pack becomes active.
func (s *service) DeletePack(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrPackIDRequired
	}
	if id == domain.DefaultPackID {
		return ErrDefaultPackProtected
	}

	packs, err := s.ListPacks(ctx)
	if err != nil {
		return err
	}
	questions, err := s.ListQuestions(ctx)
	if err != nil {
		return err
	}
	active, err := s.ActivePack(ctx)
	if err != nil {
		return err
	}

	keptPacks := filter(packs, func(p domain.Pack) bool { return p.ID != id })
	keptQuestions := filter(questions, func(q domain.Question) bool { return q.Pack != id })

	writes := map[string]any{
		domain.PacksKey:     keptPacks,
		domain.QuestionsKey: keptQuestions,
	}
	if active == id {
		writes[domain.ActivePackKey] = domain.DefaultPackID
	}
	if err := kvstore.SetManyJSON(ctx, s.store, writes); err != nil {
		return err
	}
	s.logger.Info("library.pack.deleted",
		"pack_id", id,
		"questions_removed", len(questions)-len(keptQuestions),
	)
	return nil
}

// DeleteCategory removes the questions of packID filed under category and
// reports how many were removed.
func (s *service) DeleteCategory(ctx context.Context, packID, category string) (int, error) {
	if strings.TrimSpace(packID) == "" {
		return 0, ErrPackIDRequired
	}
	questions, err := s.ListQuestions(ctx)
	if err != nil {
		return 0, err
	}
	kept := filter(questions, func(q domain.Question) bool {
		return q.Pack != packID || q.Category != category
	})
	removed := len(questions) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := kvstore.SetJSON(ctx, s.store, domain.QuestionsKey, kept); err != nil {
		return 0, err
	}
	s.logger.Info("library.category.deleted", "pack_id", packID, "category", category, "questions_removed", removed)
	return removed, nil
}

func (s *service) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	return kvstore.GetJSON(ctx, s.store, domain.QuestionsKey, []domain.Question{})
}

func (s *service) ListQuestionsByPack(ctx context.Context, packID string) ([]domain.Question, error) {
	questions, err := s.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}
	return filter(questions, func(q domain.Question) bool { return q.Pack == packID }), nil
}

// AddQuestion appends a question with a fresh id. The pack defaults to the
// active pack.
func (s *service) AddQuestion(ctx context.Context, input QuestionInput) (domain.Question, error) {
	pack := strings.TrimSpace(input.Pack)
	if pack == "" {
		active, err := s.ActivePack(ctx)
		if err != nil {
			return domain.Question{}, err
		}
		pack = active
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = domain.DefaultCategory
	}
	question := domain.Question{
		ID:       s.ids.NewQuestionID(),
		Pack:     pack,
		Category: category,
		Level:    normalize.CoerceLevel(input.Level),
		Q:        strings.TrimSpace(input.Q),
		A:        strings.TrimSpace(input.A),
	}
	if input.Img != "" {
		question.Img = domain.StringPtr(input.Img)
	}

	questions, err := s.ListQuestions(ctx)
	if err != nil {
		return domain.Question{}, err
	}
	questions = append(questions, question)
	if err := kvstore.SetJSON(ctx, s.store, domain.QuestionsKey, questions); err != nil {
		return domain.Question{}, err
	}
	s.logger.Debug("library.question.created", "question_id", question.ID, "pack_id", question.Pack)
	return question, nil
}

// UpdateQuestion applies patch to the question with id. It reports false,
// without error, when no such question exists.
func (s *service) UpdateQuestion(ctx context.Context, id string, patch QuestionPatch) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, ErrQuestionIDRequired
	}
	questions, err := s.ListQuestions(ctx)
	if err != nil {
		return false, err
	}
	idx := -1
	for i := range questions {
		if questions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	q := &questions[idx]
	if patch.Pack != nil {
		q.Pack = *patch.Pack
	}
	if patch.Category != nil {
		q.Category = *patch.Category
	}
	if patch.Level != nil {
		q.Level = normalize.CoerceLevel(patch.Level)
	}
	if patch.Q != nil {
		q.Q = *patch.Q
	}
	if patch.A != nil {
		q.A = *patch.A
	}
	switch {
	case patch.ClearImage:
		q.Img = nil
	case patch.Img != nil:
		q.Img = domain.StringPtr(*patch.Img)
	}

	if err := kvstore.SetJSON(ctx, s.store, domain.QuestionsKey, questions); err != nil {
		return false, err
	}
	return true, nil
}

func (s *service) DeleteQuestion(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrQuestionIDRequired
	}
	questions, err := s.ListQuestions(ctx)
	if err != nil {
		return err
	}
	kept := filter(questions, func(q domain.Question) bool { return q.ID != id })
	if len(kept) == len(questions) {
		return nil
	}
	return kvstore.SetJSON(ctx, s.store, domain.QuestionsKey, kept)
}

// DistinctCategories lists the non-empty categories used in packID, in
// first-seen order.
func (s *service) DistinctCategories(ctx context.Context, packID string) ([]string, error) {
	questions, err := s.ListQuestionsByPack(ctx, packID)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0)
	seen := map[string]struct{}{}
	for _, q := range questions {
		if q.Category == "" {
			continue
		}
		if _, ok := seen[q.Category]; ok {
			continue
		}
		seen[q.Category] = struct{}{}
		out = append(out, q.Category)
	}
	return out, nil
}

func (s *service) SelectedCategories(ctx context.Context) ([]string, error) {
	return kvstore.GetJSON(ctx, s.store, domain.SelectedCatsKey, []string{})
}

func (s *service) SetSelectedCategories(ctx context.Context, categories []string) error {
	if categories == nil {
		categories = []string{}
	}
	return kvstore.SetJSON(ctx, s.store, domain.SelectedCatsKey, categories)
}

func (s *service) TeamNames(ctx context.Context) (domain.TeamNames, error) {
	return kvstore.GetJSON(ctx, s.store, domain.TeamNamesKey, domain.DefaultTeamNames())
}

// SetTeamNames stores names, substituting the default for a blank name.
func (s *service) SetTeamNames(ctx context.Context, names domain.TeamNames) error {
	defaults := domain.DefaultTeamNames()
	if strings.TrimSpace(names.TeamA) == "" {
		names.TeamA = defaults.TeamA
	}
	if strings.TrimSpace(names.TeamB) == "" {
		names.TeamB = defaults.TeamB
	}
	return kvstore.SetJSON(ctx, s.store, domain.TeamNamesKey, names)
}

func (s *service) Settings(ctx context.Context) (domain.Settings, error) {
	return kvstore.GetJSON(ctx, s.store, domain.SettingsKey, domain.DefaultSettings())
}

func (s *service) SetSettings(ctx context.Context, settings domain.Settings) error {
	if settings == nil {
		settings = domain.Settings{}
	}
	return kvstore.SetJSON(ctx, s.store, domain.SettingsKey, settings)
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
