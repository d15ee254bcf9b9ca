package normalize

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-quizpack/internal/domain"
	"github.com/goliatone/go-quizpack/internal/identity"
	"github.com/goliatone/go-quizpack/internal/jsondoc"
	"github.com/goliatone/go-quizpack/internal/slug"
)

// LegacyPackID is the pack id synthesized for the index-th (0 based) pack
// listed under category.
func LegacyPackID(category string, index int) string {
	return slug.Slugify(category) + "-" + slug.Padded(index+1, 2)
}

// LegacyPackName is the display name synthesized for the index-th pack.
func LegacyPackName(category string, index int) string {
	return fmt.Sprintf("%s – %d", category, index+1)
}

// ConvertLegacy flattens the nested category -> pack list -> level -> entries
// layout into packs and questions. Category order follows the document.
// Categories whose names slugify to the same id share one pack record and
// accumulate all of their questions under it.
func ConvertLegacy(categories *jsondoc.Object, ids identity.Generator) ([]domain.Pack, []domain.Question) {
	packs := make([]domain.Pack, 0)
	questions := make([]domain.Question, 0)
	if categories == nil {
		return packs, questions
	}

	emitted := map[string]struct{}{}
	for _, category := range categories.Keys() {
		value, _ := categories.Get(category)
		packList, ok := jsondoc.AsArray(value)
		if !ok {
			continue
		}

		for i, item := range packList {
			packObj, ok := jsondoc.AsObject(item)
			if !ok {
				continue
			}
			pid := LegacyPackID(category, i)
			if _, seen := emitted[pid]; !seen {
				emitted[pid] = struct{}{}
				packs = append(packs, domain.Pack{
					ID:       pid,
					Name:     LegacyPackName(category, i),
					Category: category,
				})
			}
			questions = appendLegacyLevels(questions, packObj, pid, category, ids)
		}
	}
	return packs, questions
}

func appendLegacyLevels(questions []domain.Question, packObj *jsondoc.Object, pid, category string, ids identity.Generator) []domain.Question {
	for _, key := range packObj.Keys() {
		level, ok := ParseInt(key)
		if !ok {
			continue
		}
		bucket, _ := packObj.Get(key)
		entries, isList := jsondoc.AsArray(bucket)
		if !isList {
			entries = []any{bucket}
		}
		for idx, raw := range entries {
			entry := ResolveEntry(raw)
			if entry == nil {
				continue
			}
			q, a := strings.TrimSpace(entry.Q), strings.TrimSpace(entry.A)
			questions = append(questions, domain.Question{
				ID: ids.LegacyQuestionID(identity.LegacyEntry{
					PackID:   pid,
					Category: category,
					LevelKey: key,
					Level:    level,
					Index:    idx,
					Q:        q,
					A:        a,
					Img:      entry.Img,
				}),
				Pack:     pid,
				Category: category,
				Level:    level,
				Q:        q,
				A:        a,
				Img:      entry.Img,
			})
		}
	}
	return questions
}
