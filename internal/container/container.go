package container

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"accessiai/internal/config"
	"accessiai/internal/notify"
	"accessiai/internal/presentation"
	"accessiai/internal/services"
	"accessiai/internal/storage"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
	"gorm.io/gorm"
)

// Container holds all dependencies for the application
type Container struct {
	config *config.Config
	db     *gorm.DB
	logger *slog.Logger

	store    storage.Store
	backend  string
	notifier *notify.Notifier
	applier  *presentation.EventApplier

	// Services
	settingsService  *services.SettingsService
	toolbarService   *services.ToolbarService
	languageService  *services.LanguageService
	profileService   *services.ProfileService
	emergencyService *services.EmergencyService
	usageService     *services.UsageService
}

// New creates a new dependency injection container that presents settings
// through the Wails runtime bound to ctx.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB) (*Container, error) {
	return NewWithEmitter(ctx, cfg, db, wailsruntime.EventsEmit)
}

// NewWithEmitter is New with the frontend event sink replaced.
func NewWithEmitter(ctx context.Context, cfg *config.Config, db *gorm.DB, emit presentation.EmitFunc) (*Container, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{
		config: cfg,
		db:     db,
		logger: logger,
	}

	c.store, c.backend = c.openStore(ctx)

	notifier, err := notify.New(
		notify.WithWorkers(cfg.NotifierWorkers),
		notify.WithLogger(logger),
	)
	if err != nil {
		c.closeStore()
		return nil, fmt.Errorf("create notifier: %w", err)
	}
	c.notifier = notifier
	c.applier = presentation.NewEventApplier(ctx, emit, logger)

	c.initServices()
	return c, nil
}

// openStore picks the backend named in the configuration. An unreachable
// Redis falls back to SQLite, and a missing database to memory.
func (c *Container) openStore(ctx context.Context) (storage.Store, string) {
	switch c.config.StorageBackend {
	case config.BackendMemory:
		return storage.NewMemoryStore(), config.BackendMemory

	case config.BackendRedis:
		store, err := storage.NewRedisStore(ctx, storage.RedisOptions{
			Addr:     c.config.RedisAddr,
			Password: c.config.RedisPassword,
			DB:       c.config.RedisDB,
			Prefix:   c.config.RedisPrefix,
		})
		if err == nil {
			return store, config.BackendRedis
		}
		c.logger.Warn("Redis unavailable, falling back to SQLite", "addr", c.config.RedisAddr, "error", err)
	}

	if c.db == nil {
		c.logger.Warn("No database available, preferences will not persist")
		return storage.NewMemoryStore(), config.BackendMemory
	}
	return storage.NewSQLiteStore(c.db), config.BackendSQLite
}

// initServices initializes all services with their dependencies
func (c *Container) initServices() {
	c.settingsService = services.NewSettingsService(c.store, c.applier, c.notifier, c.logger)
	c.toolbarService = services.NewToolbarService(c.store, c.applier, c.notifier, c.logger)
	c.languageService = services.NewLanguageService(c.store, c.notifier, c.logger)
	c.profileService = services.NewProfileService(c.store, c.settingsService, c.notifier, c.logger)
	c.emergencyService = services.NewEmergencyService(c.settingsService, c.notifier, c.logger)
	c.usageService = services.NewUsageService(c.store, c.notifier, c.logger)
}

func (c *Container) GetSettingsService() *services.SettingsService {
	return c.settingsService
}

func (c *Container) GetToolbarService() *services.ToolbarService {
	return c.toolbarService
}

func (c *Container) GetLanguageService() *services.LanguageService {
	return c.languageService
}

func (c *Container) GetProfileService() *services.ProfileService {
	return c.profileService
}

func (c *Container) GetEmergencyService() *services.EmergencyService {
	return c.emergencyService
}

func (c *Container) GetUsageService() *services.UsageService {
	return c.usageService
}

// GetNotifier returns the application event bus
func (c *Container) GetNotifier() *notify.Notifier {
	return c.notifier
}

// GetApplier returns the presentation applier
func (c *Container) GetApplier() *presentation.EventApplier {
	return c.applier
}

// GetStore returns the preference store in use
func (c *Container) GetStore() storage.Store {
	return c.store
}

// Backend names the storage backend actually in use
func (c *Container) Backend() string {
	return c.backend
}

// GetConfig returns the application configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// Close stops event delivery and releases the store. The database handle
// belongs to the caller.
func (c *Container) Close() {
	c.notifier.Close()
	c.closeStore()
}

func (c *Container) closeStore() {
	closer, ok := c.store.(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		c.logger.Error("Failed to close store", "error", err)
	}
}
