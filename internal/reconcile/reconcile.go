package reconcile

import "github.com/goliatone/go-quizpack/internal/domain"

// State is the pair of collections an import reconciles.
type State struct {
	Packs     []domain.Pack
	Questions []domain.Question
}

// Result counts what a reconcile kept from the incoming state.
type Result struct {
	PacksAdded       int
	PacksSkipped     int
	QuestionsAdded   int
	QuestionsSkipped int
}

// Reconcile combines existing and incoming according to mode.
//
// Replace returns incoming as is. Merge appends incoming records whose id is
// not yet present, keeping existing records in place and untouched. Records
// are matched by id only; identical content under different ids is kept.
// Unknown modes reconcile as merge.
func Reconcile(existing, incoming State, mode domain.ImportMode) (State, Result) {
	if mode == domain.ImportReplace {
		out := State{
			Packs:     append([]domain.Pack{}, incoming.Packs...),
			Questions: append([]domain.Question{}, incoming.Questions...),
		}
		return out, Result{PacksAdded: len(out.Packs), QuestionsAdded: len(out.Questions)}
	}

	var result Result
	packs, added, skipped := mergeByID(existing.Packs, incoming.Packs, func(p domain.Pack) string { return p.ID })
	result.PacksAdded, result.PacksSkipped = added, skipped

	questions, added, skipped := mergeByID(existing.Questions, incoming.Questions, func(q domain.Question) string { return q.ID })
	result.QuestionsAdded, result.QuestionsSkipped = added, skipped

	return State{Packs: packs, Questions: questions}, result
}

func mergeByID[T any](existing, incoming []T, id func(T) string) ([]T, int, int) {
	out := make([]T, 0, len(existing)+len(incoming))
	out = append(out, existing...)

	seen := make(map[string]struct{}, len(out))
	for _, item := range existing {
		seen[id(item)] = struct{}{}
	}

	added, skipped := 0, 0
	for _, item := range incoming {
		key := id(item)
		if _, ok := seen[key]; ok {
			skipped++
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
		added++
	}
	return out, added, skipped
}

// SelectCategories returns up to limit distinct, non-empty question
// categories in first-seen order. A non-positive limit means no limit.
func SelectCategories(questions []domain.Question, limit int) []string {
	out := make([]string, 0)
	seen := map[string]struct{}{}
	for _, q := range questions {
		if limit > 0 && len(out) >= limit {
			break
		}
		if q.Category == "" {
			continue
		}
		if _, ok := seen[q.Category]; ok {
			continue
		}
		seen[q.Category] = struct{}{}
		out = append(out, q.Category)
	}
	return out
}
