package container

import (
	"context"
	"testing"

	"accessiai/internal/config"
	"accessiai/internal/database"
	"accessiai/internal/notify"
	"accessiai/internal/storage"

	"gorm.io/gorm"
)

func discardEmit(ctx context.Context, eventName string, optionalData ...interface{}) {}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Initialize(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })
	return db
}

func newTestContainer(t *testing.T, cfg *config.Config, db *gorm.DB) *Container {
	t.Helper()
	c, err := NewWithEmitter(context.Background(), cfg, db, discardEmit)
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestNew_SQLiteBackend(t *testing.T) {
	cfg := &config.Config{StorageBackend: config.BackendSQLite}
	c := newTestContainer(t, cfg, setupTestDB(t))

	if c.Backend() != config.BackendSQLite {
		t.Errorf("Expected sqlite backend, got %s", c.Backend())
	}
	if _, ok := c.GetStore().(*storage.SQLiteStore); !ok {
		t.Errorf("Expected *storage.SQLiteStore, got %T", c.GetStore())
	}
	if c.GetSettingsService() == nil || c.GetToolbarService() == nil || c.GetLanguageService() == nil ||
		c.GetProfileService() == nil || c.GetEmergencyService() == nil || c.GetUsageService() == nil {
		t.Error("Expected every service to be wired")
	}
	if c.GetConfig() != cfg {
		t.Error("Expected container to keep the configuration")
	}
}

func TestNew_MemoryBackend(t *testing.T) {
	c := newTestContainer(t, &config.Config{StorageBackend: config.BackendMemory}, nil)

	if _, ok := c.GetStore().(*storage.MemoryStore); !ok {
		t.Errorf("Expected *storage.MemoryStore, got %T", c.GetStore())
	}
}

func TestNew_RedisFallsBackToSQLite(t *testing.T) {
	cfg := &config.Config{StorageBackend: config.BackendRedis, RedisAddr: "127.0.0.1:1"}
	c := newTestContainer(t, cfg, setupTestDB(t))

	if c.Backend() != config.BackendSQLite {
		t.Errorf("Expected fallback to sqlite, got %s", c.Backend())
	}
}

func TestNew_NoDatabaseUsesMemory(t *testing.T) {
	c := newTestContainer(t, &config.Config{StorageBackend: config.BackendSQLite}, nil)

	if c.Backend() != config.BackendMemory {
		t.Errorf("Expected memory backend without a database, got %s", c.Backend())
	}
}

func TestContainer_ServicesShareNotifier(t *testing.T) {
	c := newTestContainer(t, &config.Config{StorageBackend: config.BackendMemory, NotifierWorkers: 2}, nil)

	done := make(chan notify.Event, 1)
	c.GetNotifier().Subscribe(notify.EventSettingsReset, func(e notify.Event) { done <- e })

	c.GetSettingsService().ResetToDefaults()
	c.GetNotifier().Flush()

	select {
	case <-done:
	default:
		t.Error("Expected settingsReset to reach the container notifier")
	}
}

func TestContainer_CloseStopsNotifier(t *testing.T) {
	c, err := NewWithEmitter(context.Background(), &config.Config{StorageBackend: config.BackendMemory}, nil, discardEmit)
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}

	c.Close()

	if !c.GetNotifier().Closed() {
		t.Error("Expected notifier closed")
	}
}
