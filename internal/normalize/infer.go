package normalize

import (
	"sort"

	"github.com/goliatone/go-quizpack/internal/domain"
)

type categoryTally struct {
	order  []string
	counts map[string]int
}

func (t *categoryTally) add(category string) {
	if _, ok := t.counts[category]; !ok {
		t.order = append(t.order, category)
	}
	t.counts[category]++
}

// dominant returns the most frequent category. Equal counts resolve to the
// category seen first.
func (t *categoryTally) dominant() string {
	ranked := make([]string, len(t.order))
	copy(ranked, t.order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return t.counts[ranked[i]] > t.counts[ranked[j]]
	})
	return ranked[0]
}

// InferCategories assigns a category to every pack that has none: the most
// frequent category among the questions of that pack, or fallback when the
// pack has no categorised questions.
func InferCategories(payload *domain.Payload, fallback string) {
	if payload == nil {
		return
	}
	tallies := map[string]*categoryTally{}
	for _, q := range payload.Questions {
		if q.Category == "" {
			continue
		}
		tally, ok := tallies[q.Pack]
		if !ok {
			tally = &categoryTally{counts: map[string]int{}}
			tallies[q.Pack] = tally
		}
		tally.add(q.Category)
	}

	for i := range payload.Packs {
		if payload.Packs[i].Category != "" {
			continue
		}
		if tally, ok := tallies[payload.Packs[i].ID]; ok && len(tally.order) > 0 {
			payload.Packs[i].Category = tally.dominant()
			continue
		}
		payload.Packs[i].Category = fallback
	}
}
