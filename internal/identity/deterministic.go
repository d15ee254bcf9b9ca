package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
// Hashing is exact: keys differing only in case or accents get different
// UUIDs. Surrounding whitespace is ignored and a blank key yields uuid.Nil.
//
// Callers must prefix keys by entity type to prevent cross-entity collisions.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(false))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// EntryUUID is the primary key of a stored key/value entry. Store keys are
// case sensitive.
func EntryUUID(key string) uuid.UUID {
	return UUID("quizpack:kv:" + key)
}

// LegacyQuestionID derives the id of a question converted from the nested
// legacy layout from its position and content. Editing a question yields a
// new id, so a corrected file merges in instead of being skipped.
func LegacyQuestionID(entry LegacyEntry) string {
	img := ""
	if entry.Img != nil {
		img = *entry.Img
	}
	parts := []string{
		entry.PackID,
		entry.Category,
		entry.LevelKey,
		strconv.Itoa(entry.Level),
		strconv.Itoa(entry.Index),
		entry.Q,
		entry.A,
		img,
	}
	for i, part := range parts {
		parts[i] = strconv.Quote(part)
	}
	return "q_" + UUID("quizpack:question:"+strings.Join(parts, ":")).String()
}
