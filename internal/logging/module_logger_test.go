package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-quizpack/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "quizpack.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, transferModule)

	if len(provider.requested) != 1 || provider.requested[0] != transferModule {
		t.Fatalf("expected module %s, got %v", transferModule, provider.requested)
	}
	if len(rec.fields) != 1 {
		t.Fatalf("expected module fields to be applied once, got %d", len(rec.fields))
	}
	if got := rec.fields[0]["module"]; got != transferModule {
		t.Fatalf("expected module field %s, got %v", transferModule, got)
	}
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
}

func TestNamedModuleLoggers(t *testing.T) {
	cases := []struct {
		name   string
		build  func(interfaces.LoggerProvider) interfaces.Logger
		module string
	}{
		{"store", StoreLogger, storeModule},
		{"library", LibraryLogger, libraryModule},
		{"normalize", NormalizeLogger, normalizeModule},
		{"transfer", TransferLogger, transferModule},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &stubProvider{logger: &recordingLogger{}}
			_ = tc.build(provider)
			if len(provider.requested) == 0 || provider.requested[0] != tc.module {
				t.Fatalf("expected %s module request, got %v", tc.module, provider.requested)
			}
		})
	}
}

func TestWithImportContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}
	_ = WithImportContext(rec, "merge", " ", "export.json")

	if len(rec.fields) != 1 {
		t.Fatalf("expected a single WithFields call, got %d", len(rec.fields))
	}
	fields := rec.fields[0]
	if fields[fieldImportMode] != "merge" || fields[fieldImportSource] != "export.json" {
		t.Fatalf("unexpected fields %v", fields)
	}
	if _, ok := fields[fieldImportDialect]; ok {
		t.Fatalf("expected empty dialect to be skipped, got %v", fields)
	}
}

func TestContextFieldsMerge(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"import_id": "a"})
	ctx = ContextWithFields(ctx, map[string]any{"mode": "merge"})

	fields := ContextFields(ctx)
	if fields["import_id"] != "a" || fields["mode"] != "merge" {
		t.Fatalf("expected merged fields, got %v", fields)
	}
	fields["mode"] = "replace"
	if ContextFields(ctx)["mode"] != "merge" {
		t.Fatal("expected ContextFields to return a copy")
	}
}

func TestContextFieldsLaterValuesWin(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"mode": "merge", "import_id": "a"})
	ctx = ContextWithFields(ctx, map[string]any{"mode": "replace"})

	fields := ContextFields(ctx)
	if fields["mode"] != "replace" || fields["import_id"] != "a" {
		t.Fatalf("expected later mode to win, got %v", fields)
	}
	if ContextFields(context.Background()) != nil {
		t.Fatal("expected nil fields for an untagged context")
	}
	if got := ContextWithFields(ctx, nil); got != ctx {
		t.Fatal("expected empty fields to keep the context")
	}
}

type plainLogger struct{}

func (plainLogger) Trace(string, ...any) {}
func (plainLogger) Debug(string, ...any) {}
func (plainLogger) Info(string, ...any)  {}
func (plainLogger) Warn(string, ...any)  {}
func (plainLogger) Error(string, ...any) {}
func (plainLogger) Fatal(string, ...any) {}

func (p plainLogger) WithContext(context.Context) interfaces.Logger { return p }

type keepingLogger struct {
	plainLogger
	kept map[string]any
}

func (k *keepingLogger) WithFields(fields map[string]any) interfaces.Logger {
	k.kept = fields
	return k
}

func TestWithFieldsClonesFields(t *testing.T) {
	keeper := &keepingLogger{}
	fields := map[string]any{"pack_id": "science-01"}
	WithFields(keeper, fields)
	fields["pack_id"] = "changed"

	if keeper.kept["pack_id"] != "science-01" {
		t.Fatalf("expected cloned fields, got %v", keeper.kept)
	}
	if got := WithFields(plainLogger{}, fields); got != (plainLogger{}) {
		t.Fatalf("expected logger without fields support to be returned, got %T", got)
	}
}
