package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"accessiai/internal/notify"
	"accessiai/internal/storage"
)

// UsageService records when features were last used.
type UsageService struct {
	store    storage.Store
	notifier *notify.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewUsageService(store storage.Store, notifier *notify.Notifier, logger *slog.Logger) *UsageService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UsageService{store: store, notifier: notifier, logger: logger, now: time.Now}
}

// MarkUsed stores the current time for feature.
func (u *UsageService) MarkUsed(ctx context.Context, feature string) (time.Time, error) {
	feature = strings.TrimSpace(feature)
	if feature == "" {
		return time.Time{}, ErrEmptyFeature
	}

	at := u.now().UTC().Truncate(time.Second)
	stamp := at.Format(time.RFC3339)
	if err := u.store.Set(ctx, storage.UsageKey(feature), stamp); err != nil {
		return time.Time{}, NewPreferencesError("record usage", err)
	}

	u.notifier.Publish(notify.EventFeatureUsed, notify.FeatureUsed{Feature: feature, At: stamp})
	return at, nil
}

// LastUsed returns when feature was last marked, and false if never.
func (u *UsageService) LastUsed(ctx context.Context, feature string) (time.Time, bool, error) {
	v, err := u.store.Get(ctx, storage.UsageKey(strings.TrimSpace(feature)))
	if errors.Is(err, storage.ErrNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, NewPreferencesError("read usage", err)
	}

	at, err := time.Parse(time.RFC3339, v)
	if err != nil {
		u.logger.Warn("Ignoring unreadable usage timestamp", "feature", feature, "value", v)
		return time.Time{}, false, nil
	}
	return at, true, nil
}
