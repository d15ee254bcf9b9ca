package logging

import (
	"context"
	"maps"
)

type fieldsKey struct{}

// ContextWithFields tags ctx with import fields (import_id, mode, command)
// so loggers resolved further down through WithContext emit them too. Later
// calls win on key conflicts.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}
	prev, _ := ctx.Value(fieldsKey{}).(map[string]any)
	tagged := make(map[string]any, len(prev)+len(fields))
	maps.Copy(tagged, prev)
	maps.Copy(tagged, fields)
	return context.WithValue(ctx, fieldsKey{}, tagged)
}

// ContextFields returns a copy of the fields set by ContextWithFields, or nil.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	tagged, _ := ctx.Value(fieldsKey{}).(map[string]any)
	if len(tagged) == 0 {
		return nil
	}
	return maps.Clone(tagged)
}
