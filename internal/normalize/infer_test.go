package normalize

import (
	"testing"

	"github.com/goliatone/go-quizpack/internal/domain"
)

func questionsIn(pack string, categories ...string) []domain.Question {
	out := make([]domain.Question, 0, len(categories))
	for _, c := range categories {
		out = append(out, domain.Question{Pack: pack, Category: c})
	}
	return out
}

func TestInferCategoriesPicksMostFrequent(t *testing.T) {
	payload := &domain.Payload{
		Packs:     []domain.Pack{{ID: "p"}},
		Questions: questionsIn("p", "catA", "catB", "catA", "catB", "catB", "catA", "catB", "catB"),
	}
	InferCategories(payload, domain.DefaultCategory)
	if payload.Packs[0].Category != "catB" {
		t.Fatalf("expected catB, got %q", payload.Packs[0].Category)
	}
}

func TestInferCategoriesTieBreaksOnFirstSeen(t *testing.T) {
	payload := &domain.Payload{
		Packs:     []domain.Pack{{ID: "p"}, {ID: "r"}},
		Questions: append(questionsIn("p", "late", "early", "early", "late"), questionsIn("r", "x", "y")...),
	}
	InferCategories(payload, domain.DefaultCategory)
	if payload.Packs[0].Category != "late" {
		t.Fatalf("expected first-seen category late, got %q", payload.Packs[0].Category)
	}
	if payload.Packs[1].Category != "x" {
		t.Fatalf("expected x, got %q", payload.Packs[1].Category)
	}
}

func TestInferCategoriesKeepsExistingAndFallsBack(t *testing.T) {
	payload := &domain.Payload{
		Packs: []domain.Pack{{ID: "set", Category: "kept"}, {ID: "empty"}, {ID: "blank"}},
		Questions: append(questionsIn("set", "other"),
			questionsIn("blank", "", "")...),
	}
	InferCategories(payload, domain.DefaultCategory)
	if payload.Packs[0].Category != "kept" {
		t.Fatalf("expected existing category kept, got %q", payload.Packs[0].Category)
	}
	if payload.Packs[1].Category != domain.DefaultCategory || payload.Packs[2].Category != domain.DefaultCategory {
		t.Fatalf("expected fallback categories, got %+v", payload.Packs)
	}
	InferCategories(nil, domain.DefaultCategory)
}
