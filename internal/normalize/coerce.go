package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/goliatone/go-quizpack/internal/domain"
	"github.com/goliatone/go-quizpack/internal/identity"
	"github.com/goliatone/go-quizpack/internal/jsondoc"
	"github.com/goliatone/go-quizpack/internal/slug"
)

// ParseInt reads a leading integer the way JavaScript's parseInt does:
// leading whitespace and a sign are accepted, "0x" switches to hex and
// trailing garbage is ignored ("100x" is 100). Values outside the int range
// are clamped to it. ok is false when no digits were found.
func ParseInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}
	base := 10
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}
	end := 0
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == 0 {
		return 0, false
	}
	u, err := strconv.ParseUint(s[:end], base, 64)
	if err != nil {
		u = math.MaxUint64
	}
	if negative {
		if u > math.MaxInt {
			return math.MinInt, true
		}
		return -int(u), true
	}
	if u > math.MaxInt {
		return math.MaxInt, true
	}
	return int(u), true
}

// clampInt truncates f toward zero, saturating at the int range.
func clampInt(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	default:
		return int(f)
	}
}

func isDigit(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && ((c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')):
		return true
	default:
		return false
	}
}

// CoerceLevel converts a raw level into a point value. Numbers are
// truncated, strings go through ParseInt, and zero or unusable values fall
// back to domain.DefaultLevel.
func CoerceLevel(v any) int {
	level := 0
	switch typed := v.(type) {
	case json.Number:
		if f, err := typed.Float64(); err == nil || math.IsInf(f, 0) {
			level = clampInt(f)
		}
	case float64:
		level = clampInt(typed)
	case int:
		level = typed
	case string:
		level, _ = ParseInt(typed)
	}
	if level == 0 {
		return domain.DefaultLevel
	}
	return level
}

// scalarString renders strings, numbers and booleans as text. Other shapes
// become the empty string.
func scalarString(v any) string {
	switch typed := v.(type) {
	case string:
		return typed
	case json.Number:
		return typed.String()
	case bool:
		return strconv.FormatBool(typed)
	default:
		return ""
	}
}

func objectString(obj *jsondoc.Object, keys ...string) string {
	if obj == nil {
		return ""
	}
	for _, key := range keys {
		if value, ok := obj.Get(key); ok {
			if s := strings.TrimSpace(scalarString(value)); s != "" {
				return s
			}
		}
	}
	return ""
}

// CoercePack shapes a flat-dialect pack record. Non-object values are
// rejected.
func CoercePack(raw any) (domain.Pack, bool) {
	obj, ok := jsondoc.AsObject(raw)
	if !ok {
		return domain.Pack{}, false
	}
	name := objectString(obj, "name")
	if name == "" {
		name = domain.UnnamedPackName
	}
	id := objectString(obj, "id")
	if id == "" {
		id = slug.WithSuffix(name)
	}
	return domain.Pack{
		ID:       id,
		Name:     name,
		Category: objectString(obj, "category", "cat"),
	}, true
}

// QuestionDefaults are applied to fields a raw question does not carry.
type QuestionDefaults struct {
	Pack     string
	Category string
}

// CoerceQuestion shapes a flat-dialect or bare-array question. q, a and img
// come from ResolveEntry; id, pack, category and level are read from object
// entries when present. Entries the resolver rejects are dropped.
func CoerceQuestion(raw any, ids identity.Generator, defaults QuestionDefaults) (domain.Question, bool) {
	entry := ResolveEntry(raw)
	if entry == nil {
		return domain.Question{}, false
	}
	obj, _ := jsondoc.AsObject(raw)

	question := domain.Question{
		ID:       objectString(obj, "id"),
		Pack:     objectString(obj, "pack", "packId"),
		Category: objectString(obj, "category", "cat"),
		Level:    domain.DefaultLevel,
		Q:        strings.TrimSpace(entry.Q),
		A:        strings.TrimSpace(entry.A),
		Img:      entry.Img,
	}
	if obj != nil {
		if level, ok := obj.Get("level"); ok {
			question.Level = CoerceLevel(level)
		}
	}
	if question.ID == "" {
		question.ID = ids.NewQuestionID()
	}
	if question.Pack == "" {
		question.Pack = defaults.Pack
	}
	if question.Category == "" {
		question.Category = defaults.Category
	}
	return question, true
}
