package kvstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	repocache "github.com/goliatone/go-repository-cache/cache"

	"github.com/goliatone/go-quizpack/internal/kvstore"
	"github.com/goliatone/go-quizpack/pkg/interfaces"
	"github.com/goliatone/go-quizpack/pkg/testsupport"
)

type storeFactory func(t *testing.T) interfaces.BatchStore

func storeFactories() map[string]storeFactory {
	return map[string]storeFactory{
		"memory": func(t *testing.T) interfaces.BatchStore {
			return kvstore.NewMemoryStore()
		},
		"bun": func(t *testing.T) interfaces.BatchStore {
			db := testsupport.NewBunSQLite(t)
			if err := kvstore.EnsureSchema(context.Background(), db); err != nil {
				t.Fatalf("EnsureSchema() error = %v", err)
			}
			return kvstore.NewBunStore(db)
		},
		"bun-cached": func(t *testing.T) interfaces.BatchStore {
			db := testsupport.NewBunSQLite(t)
			if err := kvstore.EnsureSchema(context.Background(), db); err != nil {
				t.Fatalf("EnsureSchema() error = %v", err)
			}
			cfg := repocache.DefaultConfig()
			cfg.TTL = time.Minute
			cacheService, err := repocache.NewCacheService(cfg)
			if err != nil {
				t.Fatalf("NewCacheService() error = %v", err)
			}
			return kvstore.NewBunStore(db, kvstore.WithCache(cacheService, repocache.NewDefaultKeySerializer()))
		},
		"redis": func(t *testing.T) interfaces.BatchStore {
			server := miniredis.RunT(t)
			store, err := kvstore.NewRedisStore(context.Background(), "redis://"+server.Addr(), "test:")
			if err != nil {
				t.Fatalf("NewRedisStore() error = %v", err)
			}
			t.Cleanup(func() { _ = store.Close() })
			return store
		},
	}
}

func TestStoresRoundTrip(t *testing.T) {
	for name, factory := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := factory(t)

			if _, err := store.Get(ctx, "sj:packs"); !errors.Is(err, kvstore.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			if err := store.Set(ctx, "sj:packs", []byte(`[{"id":"default"}]`)); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			got, err := store.Get(ctx, "sj:packs")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if string(got) != `[{"id":"default"}]` {
				t.Fatalf("unexpected value %s", got)
			}

			if err := store.Set(ctx, "sj:packs", []byte(`[]`)); err != nil {
				t.Fatalf("Set() overwrite error = %v", err)
			}
			got, err = store.Get(ctx, "sj:packs")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if string(got) != `[]` {
				t.Fatalf("expected overwritten value, got %s", got)
			}

			if err := store.Delete(ctx, "sj:packs"); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if _, err := store.Get(ctx, "sj:packs"); !errors.Is(err, kvstore.ErrNotFound) {
				t.Fatalf("expected ErrNotFound after delete, got %v", err)
			}
			if err := store.Delete(ctx, "sj:packs"); err != nil {
				t.Fatalf("Delete() missing key error = %v", err)
			}
			if err := store.Set(ctx, "", []byte(`1`)); !errors.Is(err, kvstore.ErrKeyRequired) {
				t.Fatalf("expected ErrKeyRequired, got %v", err)
			}
		})
	}
}

func TestStoresSetMany(t *testing.T) {
	for name, factory := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := factory(t)

			if err := store.Set(ctx, "sj:activePack", []byte(`"old"`)); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if _, err := store.Get(ctx, "sj:activePack"); err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			err := store.SetMany(ctx, map[string][]byte{
				"sj:activePack": []byte(`"new"`),
				"sj:questions":  []byte(`[]`),
			})
			if err != nil {
				t.Fatalf("SetMany() error = %v", err)
			}
			for key, want := range map[string]string{"sj:activePack": `"new"`, "sj:questions": `[]`} {
				got, err := store.Get(ctx, key)
				if err != nil {
					t.Fatalf("Get(%s) error = %v", key, err)
				}
				if string(got) != want {
					t.Fatalf("Get(%s) = %s, want %s", key, got, want)
				}
			}
			if err := store.SetMany(ctx, map[string][]byte{"": []byte(`1`)}); !errors.Is(err, kvstore.ErrKeyRequired) {
				t.Fatalf("expected ErrKeyRequired, got %v", err)
			}
		})
	}
}

func TestRedisStoreUsesPrefix(t *testing.T) {
	server := miniredis.RunT(t)
	store, err := kvstore.NewRedisStore(context.Background(), "redis://"+server.Addr(), "")
	if err != nil {
		t.Fatalf("NewRedisStore() error = %v", err)
	}
	defer store.Close()

	if err := store.Set(context.Background(), "sj:settings", []byte(`{}`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	value, err := server.Get(kvstore.DefaultRedisPrefix + "sj:settings")
	if err != nil {
		t.Fatalf("miniredis Get() error = %v", err)
	}
	if value != `{}` {
		t.Fatalf("unexpected raw value %q", value)
	}
}

func TestNewRedisStoreRejectsBadURL(t *testing.T) {
	if _, err := kvstore.NewRedisStore(context.Background(), "://nope", ""); err == nil {
		t.Fatal("expected error for invalid url")
	}
}

func TestMemoryStoreSnapshotIsCopy(t *testing.T) {
	store := kvstore.NewMemoryStore()
	ctx := context.Background()
	if err := store.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	snap := store.Snapshot()
	snap["k"][0] = 'x'
	got, _ := store.Get(ctx, "k")
	if string(got) != "v" {
		t.Fatalf("expected stored value untouched, got %s", got)
	}
}
