package normalize

import (
	"fmt"
	"testing"

	"github.com/goliatone/go-quizpack/internal/identity"
	"github.com/goliatone/go-quizpack/internal/jsondoc"
)

type sequenceIDs struct {
	next int
}

func (s *sequenceIDs) NewQuestionID() string {
	s.next++
	return fmt.Sprintf("q_%d", s.next)
}

func (s *sequenceIDs) LegacyQuestionID(identity.LegacyEntry) string {
	return s.NewQuestionID()
}

func mustDecode(t *testing.T, text string) any {
	t.Helper()
	doc, err := jsondoc.DecodeString(text)
	if err != nil {
		t.Fatalf("DecodeString() error = %v", err)
	}
	return doc
}
