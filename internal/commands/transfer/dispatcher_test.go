package transfercmd

import (
	"context"
	"testing"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"

	"github.com/goliatone/go-quizpack/internal/domain"
	"github.com/goliatone/go-quizpack/internal/kvstore"
	"github.com/goliatone/go-quizpack/internal/logging"
	"github.com/goliatone/go-quizpack/internal/transfer"
)

func TestDispatchImportCommand(t *testing.T) {
	svc, store := newTransferService(t)
	handler := NewImportHandler(svc, logging.NoOp())

	sub := dispatcher.SubscribeCommand(handler.inner, runner.WithMaxRetries(0))
	t.Cleanup(sub.Unsubscribe)

	var result *transfer.ImportResult
	err := dispatcher.Dispatch(context.Background(), ImportCommand{
		Source:         `[{"q":"Capital of Peru?","a":"Lima","level":200,"cat":"Geo"}]`,
		Mode:           "replace",
		ResultCallback: func(r *transfer.ImportResult) { result = r },
	})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if result == nil || result.QuestionsAdded != 1 {
		t.Fatalf("unexpected result %+v", result)
	}

	questions, err := kvstore.GetJSON(context.Background(), store, domain.QuestionsKey, []domain.Question{})
	if err != nil {
		t.Fatalf("GetJSON() error = %v", err)
	}
	if len(questions) != 1 || questions[0].A != "Lima" {
		t.Fatalf("unexpected stored questions %+v", questions)
	}
}

func TestDispatchImportCommandPropagatesFailure(t *testing.T) {
	svc, _ := newTransferService(t)
	handler := NewImportHandler(svc, logging.NoOp())

	sub := dispatcher.SubscribeCommand(handler.inner, runner.WithMaxRetries(0))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), ImportCommand{Source: "{oops"}); err == nil {
		t.Fatal("expected dispatch to return the import error")
	}
}
