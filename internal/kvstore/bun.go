package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-quizpack/internal/identity"
)

// Entry is one stored key with its encoded value.
type Entry struct {
	bun.BaseModel `bun:"table:kv_entries,alias:kv"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Key       string    `bun:"key,notnull,unique" json:"key"`
	Value     string    `bun:"value,notnull" json:"value"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// NewEntryRepository creates a repository for kv entries identified by key.
func NewEntryRepository(db *bun.DB) repository.Repository[*Entry] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Entry]{
		NewRecord: func() *Entry { return &Entry{} },
		GetID: func(entry *Entry) uuid.UUID {
			return entry.ID
		},
		SetID: func(entry *Entry, id uuid.UUID) {
			entry.ID = id
		},
		GetIdentifier: func() string {
			return "key"
		},
		GetIdentifierValue: func(entry *Entry) string {
			return entry.Key
		},
	})
}

// EnsureSchema creates the kv_entries table when it does not exist.
func EnsureSchema(ctx context.Context, db bun.IDB) error {
	if _, err := db.NewCreateTable().Model((*Entry)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("kvstore: create kv_entries table: %w", err)
	}
	return nil
}

// OpenBunDB opens a bun handle for the sqlite or postgres driver.
func OpenBunDB(provider, dsn string) (*bun.DB, error) {
	switch provider {
	case "sqlite":
		sqlDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("kvstore: open sqlite: %w", err)
		}
		db := bun.NewDB(sqlDB, sqlitedialect.New())
		db.SetMaxOpenConns(1)
		return db, nil
	case "postgres":
		sqlDB, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("kvstore: open postgres: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("kvstore: unsupported sql provider %q", provider)
	}
}

// BunStore persists entries in a SQL table through go-repository-bun, with
// optional read caching.
type BunStore struct {
	db     *bun.DB
	repo   repository.Repository[*Entry]
	cached bool
	now    func() time.Time
}

// BunOption configures a BunStore.
type BunOption func(*BunStore)

// WithCache routes repository calls through a go-repository-cache decorator.
func WithCache(cacheService cache.CacheService, serializer cache.KeySerializer) BunOption {
	return func(s *BunStore) {
		if cacheService != nil && serializer != nil {
			s.repo = repositorycache.New(s.repo, cacheService, serializer)
			s.cached = true
		}
	}
}

// WithClock overrides the time source used for updated_at.
func WithClock(clock func() time.Time) BunOption {
	return func(s *BunStore) {
		if clock != nil {
			s.now = clock
		}
	}
}

// NewBunStore returns a store over db. The table must exist; see EnsureSchema.
func NewBunStore(db *bun.DB, opts ...BunOption) *BunStore {
	s := &BunStore{
		db:   db,
		repo: NewEntryRepository(db),
		now:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *BunStore) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := s.lookup(ctx, key)
	if err != nil {
		return nil, err
	}
	return []byte(entry.Value), nil
}

func (s *BunStore) Set(ctx context.Context, key string, value []byte) error {
	existing, err := s.lookup(ctx, key)
	switch {
	case errors.Is(err, ErrNotFound):
		_, err = s.repo.Create(ctx, &Entry{
			ID:        identity.EntryUUID(key),
			Key:       key,
			Value:     string(value),
			UpdatedAt: s.now(),
		})
		if err != nil {
			return fmt.Errorf("kvstore: create %q: %w", key, err)
		}
		return nil
	case err != nil:
		return err
	}

	existing.Value = string(value)
	existing.UpdatedAt = s.now()
	if _, err := s.repo.Update(ctx, existing,
		repository.UpdateByID(existing.ID.String()),
		repository.UpdateColumns("value", "updated_at"),
	); err != nil {
		return fmt.Errorf("kvstore: update %q: %w", key, err)
	}
	return nil
}

func (s *BunStore) Delete(ctx context.Context, key string) error {
	existing, err := s.lookup(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, existing); err != nil {
		return fmt.Errorf("kvstore: delete %q: %w", key, err)
	}
	return nil
}

// SetMany upserts every entry inside one transaction.
func (s *BunStore) SetMany(ctx context.Context, entries map[string][]byte) error {
	keys := sortedKeys(entries)
	for _, key := range keys {
		if key == "" {
			return ErrKeyRequired
		}
	}
	now := s.now()
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, key := range keys {
			entry := &Entry{
				ID:        identity.EntryUUID(key),
				Key:       key,
				Value:     string(entries[key]),
				UpdatedAt: now,
			}
			if _, err := tx.NewInsert().
				Model(entry).
				On("CONFLICT (key) DO UPDATE").
				Set("value = EXCLUDED.value").
				Set("updated_at = EXCLUDED.updated_at").
				Exec(ctx); err != nil {
				return fmt.Errorf("upsert %q: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("kvstore: set many: %w", err)
	}
	if s.cached {
		// the transaction bypassed the cache decorator; rewrite through it so
		// cached reads are dropped.
		for _, key := range keys {
			if err := s.Set(ctx, key, entries[key]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *BunStore) lookup(ctx context.Context, key string) (*Entry, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}
	entry, err := s.repo.GetByIdentifier(ctx, key)
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) || errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("kvstore: get %q: %w", key, err)
	}
	return entry, nil
}

func sortedKeys(entries map[string][]byte) []string {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
