package normalize

import (
	"strings"

	"github.com/goliatone/go-quizpack/internal/jsondoc"
)

// Alias lists for entry fields, in lookup priority order.
var (
	QuestionAliases = []string{"q", "Q", "question", "text", "prompt", "questionText", "title", "body", "name"}
	AnswerAliases   = []string{"a", "A", "answer", "correct", "ans", "answerText", "solution"}
	ImageAliases    = []string{"img", "image", "imageUrl", "imageURL", "imgUrl", "photo"}
)

// Entry is the question, answer and image resolved from one raw entry.
// Q and A are not trimmed.
type Entry struct {
	Q   string
	A   string
	Img *string
}

// ResolveEntry extracts an Entry from a raw value of unknown shape. Strings
// use "question|answer" notation, arrays are positional [q, a, img] and
// objects are resolved through the alias lists. nil and any other shape
// yield nil.
func ResolveEntry(raw any) *Entry {
	switch typed := raw.(type) {
	case nil:
		return nil
	case string:
		parts := strings.Split(typed, "|")
		if len(parts) >= 2 {
			return &Entry{Q: parts[0], A: strings.Join(parts[1:], "|")}
		}
		return &Entry{Q: typed}
	case []any:
		entry := &Entry{}
		if len(typed) > 0 {
			entry.Q = scalarString(typed[0])
		}
		if len(typed) > 1 {
			entry.A = scalarString(typed[1])
		}
		if len(typed) > 2 {
			entry.Img = imageValue(typed[2])
		}
		return entry
	case *jsondoc.Object:
		if typed == nil {
			return nil
		}
		q, _ := firstPresent(typed, QuestionAliases)
		a, _ := firstPresent(typed, AnswerAliases)
		img, _ := firstPresent(typed, ImageAliases)
		return &Entry{
			Q:   scalarString(q),
			A:   scalarString(a),
			Img: imageValue(img),
		}
	default:
		return nil
	}
}

// firstPresent returns the value of the first alias holding a non-null value.
func firstPresent(obj *jsondoc.Object, aliases []string) (any, bool) {
	for _, alias := range aliases {
		if value, ok := obj.Get(alias); ok && value != nil {
			return value, true
		}
	}
	return nil, false
}

func imageValue(v any) *string {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}
