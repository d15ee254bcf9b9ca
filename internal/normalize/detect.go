package normalize

import "github.com/goliatone/go-quizpack/internal/jsondoc"

// Dialect names a recognised input layout.
type Dialect string

const (
	DialectFlat      Dialect = "flat"
	DialectLegacy    Dialect = "legacy"
	DialectBareArray Dialect = "array"
	DialectUnknown   Dialect = "unknown"
)

// Document is a decoded input tagged with its dialect. Only the fields
// relevant to Dialect are set.
type Document struct {
	Dialect Dialect

	// Root is the top-level object for the flat and legacy dialects.
	Root *jsondoc.Object
	// Packs and Questions hold the flat dialect collections.
	Packs     []any
	Questions []any
	// Categories holds the legacy category -> pack list mapping.
	Categories *jsondoc.Object
	// Items holds the elements of a bare question list.
	Items []any
}

// Detect classifies doc. The first matching rule wins:
//  1. questions and packs are both arrays: flat
//  2. packs is a non-null, non-array object: legacy
//  3. doc is an array: bare question list
//  4. anything else: unknown
func Detect(doc any) Document {
	if root, ok := jsondoc.AsObject(doc); ok {
		packsValue, _ := root.Get("packs")
		questionsValue, _ := root.Get("questions")

		packs, packsIsList := jsondoc.AsArray(packsValue)
		questions, questionsIsList := jsondoc.AsArray(questionsValue)
		if packsIsList && questionsIsList {
			return Document{Dialect: DialectFlat, Root: root, Packs: packs, Questions: questions}
		}
		if categories, ok := jsondoc.AsObject(packsValue); ok {
			return Document{Dialect: DialectLegacy, Root: root, Categories: categories}
		}
		return Document{Dialect: DialectUnknown}
	}
	if items, ok := jsondoc.AsArray(doc); ok {
		return Document{Dialect: DialectBareArray, Items: items}
	}
	return Document{Dialect: DialectUnknown}
}
