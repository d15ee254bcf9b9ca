package identity

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

// LegacyEntry describes a question inside a legacy document. The position
// fields locate it; Q, A and Img are its trimmed content.
type LegacyEntry struct {
	PackID   string
	Category string
	LevelKey string
	Level    int
	Index    int
	Q        string
	A        string
	Img      *string
}

// Generator produces question identifiers.
type Generator interface {
	NewQuestionID() string
	LegacyQuestionID(entry LegacyEntry) string
}

// RandomIDs issues a fresh id for every question, legacy ones included.
type RandomIDs struct {
	Now func() time.Time
}

// NewQuestionID returns q_<unix millis>_<random hex>.
func (g RandomIDs) NewQuestionID() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		panic("identity: read random bytes: " + err.Error())
	}
	return "q_" + strconv.FormatInt(now().UnixMilli(), 10) + "_" + hex.EncodeToString(buf)
}

// LegacyQuestionID ignores the entry position and returns a random id.
func (g RandomIDs) LegacyQuestionID(LegacyEntry) string {
	return g.NewQuestionID()
}

// DeterministicIDs derives legacy question ids from document position and
// content, so re-importing an unchanged legacy file in merge mode does not
// duplicate it.
type DeterministicIDs struct {
	RandomIDs
}

// LegacyQuestionID returns a stable id for entry.
func (DeterministicIDs) LegacyQuestionID(entry LegacyEntry) string {
	return LegacyQuestionID(entry)
}

// NewQuestionID returns a random id generator's id.
func NewQuestionID() string {
	return RandomIDs{}.NewQuestionID()
}
