package normalize

import (
	"strings"

	"github.com/goliatone/go-quizpack/internal/domain"
	"github.com/goliatone/go-quizpack/internal/identity"
	"github.com/goliatone/go-quizpack/internal/jsondoc"
	"github.com/goliatone/go-quizpack/internal/logging"
	"github.com/goliatone/go-quizpack/pkg/interfaces"
)

// Normalizer converts decoded documents of any supported dialect into the
// canonical payload.
type Normalizer struct {
	ids    identity.Generator
	logger interfaces.Logger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithIDGenerator overrides the question id generator.
func WithIDGenerator(generator identity.Generator) Option {
	return func(n *Normalizer) {
		if generator != nil {
			n.ids = generator
		}
	}
}

// WithLogger sets the logger used for dialect diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(n *Normalizer) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// New returns a Normalizer. Legacy question ids are deterministic unless a
// different generator is supplied.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		ids:    identity.DeterministicIDs{},
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}
	return n
}

// Normalize never fails: shapes it does not recognise produce an empty
// payload. The detected dialect is returned alongside the payload.
func (n *Normalizer) Normalize(doc any) (domain.Payload, Dialect) {
	detected := Detect(doc)
	payload := domain.EmptyPayload()

	switch detected.Dialect {
	case DialectFlat:
		for _, raw := range detected.Packs {
			if pack, ok := CoercePack(raw); ok {
				payload.Packs = append(payload.Packs, pack)
			}
		}
		payload.Questions = n.coerceQuestions(detected.Questions)
		carryTopLevel(&payload, detected.Root)
	case DialectLegacy:
		payload.Packs, payload.Questions = ConvertLegacy(detected.Categories, n.ids)
		carryTopLevel(&payload, detected.Root)
	case DialectBareArray:
		payload.Questions = n.coerceQuestions(detected.Items)
	}

	n.logger.Debug("normalize.completed",
		"dialect", string(detected.Dialect),
		"packs", len(payload.Packs),
		"questions", len(payload.Questions),
	)
	return payload, detected.Dialect
}

func (n *Normalizer) coerceQuestions(items []any) []domain.Question {
	defaults := QuestionDefaults{Pack: domain.DefaultPackID, Category: domain.DefaultCategory}
	out := make([]domain.Question, 0, len(items))
	for _, raw := range items {
		if question, ok := CoerceQuestion(raw, n.ids, defaults); ok {
			out = append(out, question)
		}
	}
	return out
}

// carryTopLevel copies settings (when an object) and activePack (when a
// non-empty string) from the document root.
func carryTopLevel(payload *domain.Payload, root *jsondoc.Object) {
	if root == nil {
		return
	}
	if value, ok := root.Get("settings"); ok {
		if obj, isObj := jsondoc.AsObject(value); isObj {
			if plain, _ := jsondoc.ToPlain(obj).(map[string]any); plain != nil {
				payload.Settings = domain.Settings(plain)
			}
		}
	}
	if value, ok := root.Get("activePack"); ok {
		if active, isString := value.(string); isString && strings.TrimSpace(active) != "" {
			payload.ActivePack = active
		}
	}
}
