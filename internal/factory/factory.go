package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/libroquest/gamebook-server/internal/dependencies/clock"
	"github.com/libroquest/gamebook-server/internal/dependencies/random"
	"github.com/libroquest/gamebook-server/internal/services/auth"
	"github.com/libroquest/gamebook-server/internal/services/catalog"
	"github.com/libroquest/gamebook-server/internal/services/profile"
	"github.com/libroquest/gamebook-server/internal/services/progression"
	"github.com/libroquest/gamebook-server/internal/services/view"
	"github.com/libroquest/gamebook-server/internal/storage"
	"github.com/libroquest/gamebook-server/internal/storage/memory"
	redisstorage "github.com/libroquest/gamebook-server/internal/storage/redis"
	"github.com/libroquest/gamebook-server/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeSQLite = "sqlite"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	CatalogService     *catalog.Service
	Assembler          *view.Assembler
	AuthService        *auth.Service
	ProgressionService *progression.Service
	ProfileService     *profile.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "sqlite" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// SQLitePath is the database file path (required if StorageType is "sqlite")
	SQLitePath string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired and the default
// item catalog seeded.
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeSQLite:
		sqliteStore, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		store = sqliteStore
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'sqlite' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	app := newWithDependencies(store, clk, rnd, authCfg, logger)

	if err := app.CatalogService.EnsureDefaults(ctx); err != nil {
		return nil, err
	}

	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, authCfg auth.Config, logger *slog.Logger) *App {
	// Create services
	catalogService := catalog.New(store, logger)
	assembler := view.New(store)
	authService := auth.New(store, clk, rnd, authCfg)
	progressionService := progression.New(store)
	profileService := profile.New(store)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		CatalogService:     catalogService,
		Assembler:          assembler,
		AuthService:        authService,
		ProgressionService: progressionService,
		ProfileService:     profileService,
	}
}
