package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"accessiai/internal/notify"
	"accessiai/internal/storage"
)

func TestUsage_MarkAndRead(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	n := newTestNotifier(t)
	rec := record(n, notify.EventFeatureUsed)
	usage := NewUsageService(store, n, nil)
	usage.now = func() time.Time { return time.Date(2024, 1, 15, 8, 45, 12, 500, time.UTC) }

	if _, ok, err := usage.LastUsed(ctx, "screen-reader"); ok || err != nil {
		t.Fatalf("Expected never used, got ok=%v err=%v", ok, err)
	}

	at, err := usage.MarkUsed(ctx, "screen-reader")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	want := time.Date(2024, 1, 15, 8, 45, 12, 0, time.UTC)
	if !at.Equal(want) {
		t.Errorf("Expected %v, got %v", want, at)
	}

	got, ok, err := usage.LastUsed(ctx, "screen-reader")
	if err != nil || !ok || !got.Equal(want) {
		t.Errorf("Expected %v, got %v ok=%v err=%v", want, got, ok, err)
	}

	ev, _ := rec.last()
	if payload := ev.Payload.(notify.FeatureUsed); payload.At != "2024-01-15T08:45:12Z" {
		t.Errorf("Expected RFC3339 stamp, got %q", payload.At)
	}
}

func TestUsage_EmptyFeature(t *testing.T) {
	usage := NewUsageService(storage.NewMemoryStore(), newTestNotifier(t), nil)

	if _, err := usage.MarkUsed(context.Background(), " "); !errors.Is(err, ErrEmptyFeature) {
		t.Errorf("Expected ErrEmptyFeature, got %v", err)
	}
}

func TestUsage_UnreadableStamp(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	store.Set(ctx, storage.UsageKey("voice"), "yesterday")
	usage := NewUsageService(store, newTestNotifier(t), nil)

	if _, ok, err := usage.LastUsed(ctx, "voice"); ok || err != nil {
		t.Errorf("Expected unreadable stamp treated as unused, got ok=%v err=%v", ok, err)
	}
}
