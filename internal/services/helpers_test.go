package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"accessiai/internal/database"
	"accessiai/internal/models"
	"accessiai/internal/notify"
	"accessiai/internal/storage"
)

type fakeApplier struct {
	mu        sync.Mutex
	applied   []models.Settings
	visual    []models.ContrastMode
	fontSizes []int
	announced []string
}

func (f *fakeApplier) Apply(s models.Settings) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applied = append(f.applied, s.Clone())
}

func (f *fakeApplier) ApplyVisual(fontSize int, contrast models.ContrastMode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fontSizes = append(f.fontSizes, fontSize)
	f.visual = append(f.visual, contrast)
}

func (f *fakeApplier) Announce(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.announced = append(f.announced, message)
}

func (f *fakeApplier) last() (models.Settings, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.applied) == 0 {
		return models.Settings{}, false
	}
	return f.applied[len(f.applied)-1], true
}

func (f *fakeApplier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.applied)
}

// failingStore wraps a store and fails writes while failSet is true.
type failingStore struct {
	storage.Store
	failSet bool
	failGet bool
}

var errStoreDown = errors.New("store unavailable")

func (f *failingStore) Set(ctx context.Context, key, value string) error {
	if f.failSet {
		return errStoreDown
	}
	return f.Store.Set(ctx, key, value)
}

func (f *failingStore) Get(ctx context.Context, key string) (string, error) {
	if f.failGet {
		return "", errStoreDown
	}
	return f.Store.Get(ctx, key)
}

func newTestNotifier(t *testing.T) *notify.Notifier {
	t.Helper()
	n, err := notify.New()
	if err != nil {
		t.Fatalf("Failed to create notifier: %v", err)
	}
	t.Cleanup(n.Close)
	return n
}

func setupTestStore(t *testing.T) storage.Store {
	t.Helper()
	db, err := database.Initialize(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })
	return storage.NewSQLiteStore(db)
}

type recorder struct {
	mu     sync.Mutex
	events []notify.Event
}

func record(n *notify.Notifier, names ...string) *recorder {
	r := &recorder{}
	for _, name := range names {
		n.Subscribe(name, func(e notify.Event) {
			r.mu.Lock()
			r.events = append(r.events, e)
			r.mu.Unlock()
		})
	}
	return r
}

func (r *recorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Name
	}
	return out
}

func (r *recorder) last() (notify.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return notify.Event{}, false
	}
	return r.events[len(r.events)-1], true
}
