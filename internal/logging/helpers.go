package logging

import (
	"maps"

	"github.com/goliatone/go-quizpack/pkg/interfaces"
)

// WithFields scopes logger to fields such as pack_id or question_count.
// Loggers without the interfaces.FieldsLogger extension are returned
// unchanged. The map is cloned before it reaches the logger.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	scoped, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		return logger
	}
	return scoped.WithFields(maps.Clone(fields))
}
