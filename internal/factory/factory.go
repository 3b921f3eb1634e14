package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/waymarkd/waymark/internal/dependencies/clock"
	"github.com/waymarkd/waymark/internal/model"
	"github.com/waymarkd/waymark/internal/services/identity"
	"github.com/waymarkd/waymark/internal/services/points"
	"github.com/waymarkd/waymark/internal/services/registry"
	"github.com/waymarkd/waymark/internal/storage"
	"github.com/waymarkd/waymark/internal/storage/memory"
	redisstorage "github.com/waymarkd/waymark/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	Resolver         *identity.Resolver
	PointsController *points.Controller
	Registry         *registry.Service
}

// Config holds configuration for the application factory
type Config struct {
	// OwnerCode is the fixed owner session code (required)
	OwnerCode model.SessionCode
	// AdminCode is the shared admin login secret
	AdminCode string
	// AdminCodeHash is a bcrypt hash of the admin secret; takes
	// precedence over AdminCode when set
	AdminCodeHash string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	if cfg.OwnerCode == "" {
		return nil, errors.New("OwnerCode is required")
	}

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
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	registryCfg := registry.Config{
		OwnerCode:     cfg.OwnerCode,
		AdminCode:     cfg.AdminCode,
		AdminCodeHash: cfg.AdminCodeHash,
	}

	return newWithDependencies(store, clock.New(), registryCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, registryCfg registry.Config, logger *slog.Logger) *App {
	resolver := identity.NewResolver(store, registryCfg.OwnerCode)
	pointsController := points.NewController(store, clk, logger)
	registryService := registry.New(store, clk, registryCfg, logger)

	return &App{
		Storage:          store,
		Clock:            clk,
		Resolver:         resolver,
		PointsController: pointsController,
		Registry:         registryService,
	}
}
