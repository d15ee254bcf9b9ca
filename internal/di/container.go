package di

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-quizpack/internal/commands"
	transfercmd "github.com/goliatone/go-quizpack/internal/commands/transfer"
	"github.com/goliatone/go-quizpack/internal/identity"
	"github.com/goliatone/go-quizpack/internal/kvstore"
	"github.com/goliatone/go-quizpack/internal/library"
	"github.com/goliatone/go-quizpack/internal/logging"
	"github.com/goliatone/go-quizpack/internal/logging/gologger"
	"github.com/goliatone/go-quizpack/internal/normalize"
	"github.com/goliatone/go-quizpack/internal/runtimeconfig"
	"github.com/goliatone/go-quizpack/internal/transfer"
	"github.com/goliatone/go-quizpack/pkg/interfaces"
)

// Container wires storage, services and command handlers from a Config.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logger         interfaces.Logger

	store         interfaces.Store
	bunDB         *bun.DB
	redisStore    *kvstore.RedisStore
	ownsDB        bool
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	ids        identity.Generator
	normalizer *normalize.Normalizer

	libraryService  library.Service
	transferService *transfer.Service

	importHandler *transfercmd.ImportHandler
	exportHandler *transfercmd.ExportHandler
}

// Option mutates the container before wiring.
type Option func(*Container)

// WithStore overrides the configured storage backend.
func WithStore(store interfaces.Store) Option {
	return func(c *Container) {
		if store != nil {
			c.store = store
		}
	}
}

// WithBunDB supplies an open bun handle for SQL storage.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the cache service used by SQL storage.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the configured logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithIDGenerator overrides the id generator selected by Import.LegacyIDs.
func WithIDGenerator(generator identity.Generator) Option {
	return func(c *Container) {
		if generator != nil {
			c.ids = generator
		}
	}
}

// NewContainer validates cfg and wires every dependency. Stored defaults
// are seeded before it returns.
func NewContainer(ctx context.Context, cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cacheTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.logger = logging.ModuleLogger(c.loggerProvider, "")

	if err := c.configureStore(ctx); err != nil {
		return nil, err
	}
	if err := c.configureServices(); err != nil {
		_ = c.Close()
		return nil, err
	}
	c.configureCommands()

	if err := c.libraryService.InitDefaults(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("di: seed defaults: %w", err)
	}

	c.logger.Debug("container.ready",
		"storage", normalized(cfg.Storage.Provider),
		"cache", cfg.Cache.Enabled,
		"legacy_ids", normalized(cfg.Import.LegacyIDs),
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	switch normalized(c.Config.Logging.Provider) {
	case "", runtimeconfig.LoggingNoop:
		return nil
	case runtimeconfig.LoggingGoLogger:
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
		return nil
	default:
		return fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, c.Config.Logging.Provider)
	}
}

func (c *Container) configureStore(ctx context.Context) error {
	if c.store != nil {
		return nil
	}
	storage := c.Config.Storage
	switch provider := normalized(storage.Provider); provider {
	case "", runtimeconfig.StorageMemory:
		c.store = kvstore.NewMemoryStore()
	case runtimeconfig.StorageSQLite, runtimeconfig.StoragePostgres:
		if c.bunDB == nil {
			db, err := kvstore.OpenBunDB(provider, storage.DSN)
			if err != nil {
				return err
			}
			c.bunDB = db
			c.ownsDB = true
		}
		if storage.AutoMigrate {
			if err := kvstore.EnsureSchema(ctx, c.bunDB); err != nil {
				_ = c.Close()
				return err
			}
		}
		c.configureCacheDefaults()
		var bunOpts []kvstore.BunOption
		if c.cacheService != nil && c.keySerializer != nil {
			bunOpts = append(bunOpts, kvstore.WithCache(c.cacheService, c.keySerializer))
		}
		c.store = kvstore.NewBunStore(c.bunDB, bunOpts...)
	case runtimeconfig.StorageRedis:
		store, err := kvstore.NewRedisStore(ctx, storage.RedisURL, storage.KeyPrefix)
		if err != nil {
			return err
		}
		c.redisStore = store
		c.store = store
	default:
		return fmt.Errorf("%w: %s", runtimeconfig.ErrStorageProviderUnknown, storage.Provider)
	}
	logging.StoreLogger(c.loggerProvider).Debug("store.configured", "provider", normalized(storage.Provider))
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		} else {
			c.logger.Warn("store.cache.disabled", "error", err)
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureServices() error {
	if c.ids == nil {
		switch normalized(c.Config.Import.LegacyIDs) {
		case runtimeconfig.LegacyIDsRandom:
			c.ids = identity.RandomIDs{}
		default:
			c.ids = identity.DeterministicIDs{}
		}
	}

	c.normalizer = normalize.New(
		normalize.WithIDGenerator(c.ids),
		normalize.WithLogger(logging.NormalizeLogger(c.loggerProvider)),
	)

	librarySvc, err := library.NewService(c.store,
		library.WithIDGenerator(c.ids),
		library.WithLogger(logging.LibraryLogger(c.loggerProvider)),
	)
	if err != nil {
		return err
	}
	c.libraryService = librarySvc

	transferSvc, err := transfer.NewService(c.store,
		transfer.WithNormalizer(c.normalizer),
		transfer.WithLogger(logging.TransferLogger(c.loggerProvider)),
		transfer.WithSelectedCategoryLimit(c.Config.Import.SelectedCategoryLimit),
	)
	if err != nil {
		return err
	}
	c.transferService = transferSvc
	return nil
}

func (c *Container) configureCommands() {
	logger := commands.CommandLogger(c.loggerProvider, "transfer")
	c.importHandler = transfercmd.NewImportHandler(c.transferService, logger)
	c.exportHandler = transfercmd.NewExportHandler(c.transferService, logger)
}

// Close releases connections opened by the container. Handles supplied
// through options are left to the caller.
func (c *Container) Close() error {
	var errs []error
	if c.redisStore != nil {
		errs = append(errs, c.redisStore.Close())
		c.redisStore = nil
	}
	if c.bunDB != nil && c.ownsDB {
		errs = append(errs, c.bunDB.Close())
		c.bunDB = nil
	}
	return errors.Join(errs...)
}

// Store returns the configured key-value store.
func (c *Container) Store() interfaces.Store {
	return c.store
}

// LoggerProvider returns the configured provider, nil when logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// IDGenerator returns the generator shared by import and library services.
func (c *Container) IDGenerator() identity.Generator {
	return c.ids
}

// Normalizer returns the import normalizer.
func (c *Container) Normalizer() *normalize.Normalizer {
	return c.normalizer
}

// LibraryService returns the pack and question service.
func (c *Container) LibraryService() library.Service {
	return c.libraryService
}

// TransferService returns the import/export service.
func (c *Container) TransferService() *transfer.Service {
	return c.transferService
}

// ImportHandler returns the import command handler.
func (c *Container) ImportHandler() *transfercmd.ImportHandler {
	return c.importHandler
}

// ExportHandler returns the export command handler.
func (c *Container) ExportHandler() *transfercmd.ExportHandler {
	return c.exportHandler
}

func normalized(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
