package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-quizpack/pkg/interfaces"
)

// GetJSON decodes the value stored under key into a T. A missing key or a
// value that does not decode yields fallback without an error; other store
// failures are returned alongside fallback.
func GetJSON[T any](ctx context.Context, store interfaces.Store, key string, fallback T) (T, error) {
	raw, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fallback, nil
		}
		return fallback, err
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return fallback, nil
	}
	return out, nil
}

// SetJSON encodes value and stores it under key.
func SetJSON(ctx context.Context, store interfaces.Store, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kvstore: encode %q: %w", key, err)
	}
	return store.Set(ctx, key, raw)
}

// SetManyJSON encodes every value before writing anything. Stores that
// implement interfaces.BatchStore apply the writes as one unit; other stores
// receive sequential Set calls.
func SetManyJSON(ctx context.Context, store interfaces.Store, values map[string]any) error {
	encoded := make(map[string][]byte, len(values))
	for key, value := range values {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("kvstore: encode %q: %w", key, err)
		}
		encoded[key] = raw
	}
	if batch, ok := store.(interfaces.BatchStore); ok {
		return batch.SetMany(ctx, encoded)
	}
	for _, key := range sortedKeys(encoded) {
		if err := store.Set(ctx, key, encoded[key]); err != nil {
			return err
		}
	}
	return nil
}
