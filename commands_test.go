package quizpack_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-quizpack"
	transfercmd "github.com/goliatone/go-quizpack/internal/commands/transfer"
)

type recordingRegistry struct {
	handlers []any
	err      error
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return r.err
}

type recordingDispatcher struct {
	subscriptions []quizpack.CommandSubscription
}

func (d *recordingDispatcher) RegisterCommand(any) (quizpack.CommandSubscription, error) {
	sub := &noopSubscription{}
	d.subscriptions = append(d.subscriptions, sub)
	return sub, nil
}

type noopSubscription struct{}

func (*noopSubscription) Unsubscribe() {}

func TestRegisterCommandsBuildsTransferHandlers(t *testing.T) {
	module := newModule(t)
	registry := &recordingRegistry{}
	dispatcher := &recordingDispatcher{}

	result, err := quizpack.RegisterCommands(module, quizpack.RegistrationOptions{
		Registry:   registry,
		Dispatcher: dispatcher,
	})
	if err != nil {
		t.Fatalf("RegisterCommands() error = %v", err)
	}
	if len(result.Handlers) != 2 || len(registry.handlers) != 2 || len(result.Subscriptions) != 2 {
		t.Fatalf("unexpected registration %+v", result)
	}
	if _, ok := result.Handlers[0].(*transfercmd.ImportHandler); !ok {
		t.Fatalf("expected import handler first, got %T", result.Handlers[0])
	}
	if _, ok := result.Handlers[1].(*transfercmd.ExportHandler); !ok {
		t.Fatalf("expected export handler second, got %T", result.Handlers[1])
	}
}

func TestRegisterCommandsJoinsRegistryErrors(t *testing.T) {
	module := newModule(t)
	boom := errors.New("boom")

	result, err := quizpack.RegisterCommands(module, quizpack.RegistrationOptions{
		Registry: &recordingRegistry{err: boom},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined registry error, got %v", err)
	}
	if len(result.Handlers) != 2 {
		t.Fatalf("expected handlers despite errors, got %d", len(result.Handlers))
	}
}

func TestRegisterCommandsRequiresModule(t *testing.T) {
	if _, err := quizpack.RegisterCommands(nil, quizpack.RegistrationOptions{}); err == nil {
		t.Fatal("expected error for nil module")
	}
}
