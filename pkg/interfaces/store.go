package interfaces

import "context"

// Store is the flat key to JSON blob persistence contract. Values are opaque
// encoded documents; Get reports a missing key with an error that satisfies
// errors.Is(err, kvstore.ErrNotFound).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// BatchStore is implemented by stores able to apply several writes as a
// single unit. Either every entry is written or none is.
type BatchStore interface {
	Store
	SetMany(ctx context.Context, entries map[string][]byte) error
}

