package factory

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/soltomm/PinoGPT/internal/dependencies/clock"
	"github.com/soltomm/PinoGPT/internal/services/auth"
	"github.com/soltomm/PinoGPT/internal/services/balancer"
	"github.com/soltomm/PinoGPT/internal/services/game"
	"github.com/soltomm/PinoGPT/internal/services/rating"
	"github.com/soltomm/PinoGPT/internal/services/roster"
	"github.com/soltomm/PinoGPT/internal/storage"
	filestorage "github.com/soltomm/PinoGPT/internal/storage/file"
	"github.com/soltomm/PinoGPT/internal/storage/memory"
	redisstorage "github.com/soltomm/PinoGPT/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeFile   = "file"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	RatingService   *rating.Service
	BalancerService *balancer.Service
	AuthService     *auth.Service
	RosterService   *roster.Service
	GameController  *game.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "file" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// SnapshotPath is the JSON document path (required if StorageType is "file")
	SnapshotPath string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// AuthConfig holds the admin credential settings (optional)
	AuthConfig auth.Config
	// KFactor is the Elo K-factor; non-positive selects the default
	KFactor int
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
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
	case StorageTypeFile:
		if cfg.SnapshotPath == "" {
			return nil, errors.New("SnapshotPath required when StorageType is file")
		}
		fileStore, err := filestorage.New(cfg.SnapshotPath)
		if err != nil {
			return nil, err
		}
		store = fileStore
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
		return nil, errors.New("invalid StorageType: must be 'memory', 'file' or 'redis'")
	}

	authService, err := auth.New(cfg.AuthConfig)
	if err != nil {
		return nil, err
	}

	return newWithDependencies(store, clock.New(), authService, cfg.KFactor, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, authService *auth.Service, kFactor int, logger *slog.Logger) *App {
	// The roster service and the game controller share one mutex: every
	// top-level engine operation runs in a single process-wide critical
	// section.
	mu := &sync.Mutex{}

	ratingService := rating.New(kFactor)
	balancerService := balancer.New()
	rosterService := roster.New(store, ratingService, authService, clk, mu, logger)
	gameController := game.New(store, ratingService, authService, clk, mu, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		RatingService:   ratingService,
		BalancerService: balancerService,
		AuthService:     authService,
		RosterService:   rosterService,
		GameController:  gameController,
	}
}
