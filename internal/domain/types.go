package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Storage keys. The sj: prefix is shared with documents written by earlier
// releases of the application and must not change.
const (
	SettingsKey       = "sj:settings"
	QuestionsKey      = "sj:questions"
	PacksKey          = "sj:packs"
	ActivePackKey     = "sj:activePack"
	SelectedCatsKey   = "sj:selectedCats"
	TeamNamesKey      = "sj:teamNames"
	ExportFilename    = "seen-jeem-export.json"
	DefaultPackID     = "default"
	DefaultPackName   = "الافتراضية"
	DefaultCategory   = "غير مصنفة"
	UnnamedPackName   = "حزمة بدون اسم"
	DefaultTeamAName  = "الفريق 1"
	DefaultTeamBName  = "الفريق 2"
	DefaultLevel      = 100
	SelectedCatsLimit = 6
)

// ErrImportModeInvalid is returned when an import mode is neither merge nor replace.
var ErrImportModeInvalid = errors.New("domain: import mode must be merge or replace")

// Pack is a named collection of questions.
type Pack struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// Question is a single trivia item. Level is the point value.
type Question struct {
	ID       string  `json:"id"`
	Pack     string  `json:"pack"`
	Category string  `json:"category"`
	Level    int     `json:"level"`
	Q        string  `json:"q"`
	A        string  `json:"a"`
	Img      *string `json:"img"`
}

// Settings is the free-form game settings object.
type Settings map[string]any

// DefaultSettings returns the settings seeded on first run.
func DefaultSettings() Settings {
	return Settings{
		"players":    2,
		"roundTime":  60,
		"difficulty": "normal",
	}
}

// TeamNames holds the display names of the two competing teams.
type TeamNames struct {
	TeamA string `json:"teamA"`
	TeamB string `json:"teamB"`
}

// DefaultTeamNames returns the names used when none were stored.
func DefaultTeamNames() TeamNames {
	return TeamNames{TeamA: DefaultTeamAName, TeamB: DefaultTeamBName}
}

// DefaultPack returns the pack that always exists in a fresh store.
func DefaultPack() Pack {
	return Pack{ID: DefaultPackID, Name: DefaultPackName}
}

// Payload is the canonical import payload every input dialect converges to.
// A nil Settings and an empty ActivePack stand for null.
type Payload struct {
	Settings   Settings   `json:"settings"`
	Packs      []Pack     `json:"packs"`
	Questions  []Question `json:"questions"`
	ActivePack string     `json:"activePack,omitempty"`
}

// EmptyPayload returns the payload produced for unrecognised documents.
func EmptyPayload() Payload {
	return Payload{
		Packs:     []Pack{},
		Questions: []Question{},
	}
}

// Export is the document written by the export operation.
type Export struct {
	Settings   Settings   `json:"settings"`
	Packs      []Pack     `json:"packs"`
	ActivePack string     `json:"activePack"`
	Questions  []Question `json:"questions"`
}

// ImportMode selects how imported records are reconciled with stored ones.
type ImportMode string

const (
	ImportMerge   ImportMode = "merge"
	ImportReplace ImportMode = "replace"
)

// ParseImportMode maps user input to an ImportMode, defaulting to merge.
func ParseImportMode(value string) (ImportMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(ImportMerge):
		return ImportMerge, nil
	case string(ImportReplace):
		return ImportReplace, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrImportModeInvalid, value)
	}
}

// StringPtr returns a pointer to value, or nil when value is empty.
func StringPtr(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
