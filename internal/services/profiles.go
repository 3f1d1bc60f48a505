package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"accessiai/internal/common"
	"accessiai/internal/models"
	"accessiai/internal/notify"
	"accessiai/internal/storage"
)

const customProfileDescription = "Custom profile"

// ProfileService manages preset and user-created settings profiles.
// Applying a profile edits the working settings; it does not save them.
type ProfileService struct {
	store    storage.Store
	settings *SettingsService
	notifier *notify.Notifier
	logger   *slog.Logger

	mu  sync.Mutex
	now func() time.Time
}

func NewProfileService(store storage.Store, settings *SettingsService, notifier *notify.Notifier, logger *slog.Logger) *ProfileService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileService{
		store:    store,
		settings: settings,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// List returns the presets followed by custom profiles, oldest first.
func (p *ProfileService) List(ctx context.Context) ([]models.Profile, error) {
	custom, err := p.loadCustom(ctx)
	if err != nil {
		return nil, err
	}
	return append(models.PresetProfiles(), custom...), nil
}

// Create snapshots the working settings as a new custom profile.
func (p *ProfileService) Create(ctx context.Context, name string) (models.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Profile{}, ErrEmptyProfileName
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	custom, err := p.loadCustom(ctx)
	if err != nil {
		return models.Profile{}, err
	}

	snapshot := p.settings.Current()
	profile := models.Profile{
		ID:          "custom-" + common.GenerateUUID(),
		Name:        name,
		Description: customProfileDescription,
		Icon:        "User",
		Custom:      true,
		Settings:    &snapshot,
		CreatedAt:   p.now().UTC(),
	}

	if err := p.saveCustom(ctx, append(custom, profile)); err != nil {
		return models.Profile{}, err
	}
	p.logger.Info("Profile created", "id", profile.ID, "name", profile.Name)
	return profile, nil
}

// Delete removes a custom profile. Presets cannot be deleted.
func (p *ProfileService) Delete(ctx context.Context, id string) error {
	if isPreset(id) {
		return ErrPresetReadOnly
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	custom, err := p.loadCustom(ctx)
	if err != nil {
		return err
	}
	kept := custom[:0]
	found := false
	for _, c := range custom {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}
	return p.saveCustom(ctx, kept)
}

// Apply merges a preset's overrides field by field, or replaces the working
// settings with a custom profile's snapshot.
func (p *ProfileService) Apply(ctx context.Context, id string) (models.Settings, error) {
	profile, err := p.find(ctx, id)
	if err != nil {
		return models.Settings{}, err
	}

	var result models.Settings
	if profile.Settings != nil {
		result = p.settings.Replace(*profile.Settings)
	} else {
		result = p.settings.Current()
		for _, group := range models.Groups() {
			fields, ok := profile.Overrides[group]
			if !ok {
				continue
			}
			if result, err = p.settings.UpdateGroup(group, fields); err != nil {
				return models.Settings{}, fmt.Errorf("apply profile %s: %w", id, err)
			}
		}
	}

	p.notifier.Publish(notify.EventProfileApplied, notify.ProfileApplied{ID: profile.ID, Name: profile.Name})
	return result, nil
}

func (p *ProfileService) find(ctx context.Context, id string) (models.Profile, error) {
	all, err := p.List(ctx)
	if err != nil {
		return models.Profile{}, err
	}
	for _, profile := range all {
		if profile.ID == id {
			return profile, nil
		}
	}
	return models.Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
}

func (p *ProfileService) loadCustom(ctx context.Context) ([]models.Profile, error) {
	var custom []models.Profile
	err := storage.GetJSON(ctx, p.store, storage.KeyProfiles, &custom)

	var decodeErr *storage.DecodeError
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		return nil, nil
	case errors.As(err, &decodeErr):
		p.logger.Warn("Discarding unreadable custom profiles", "error", err)
		return nil, nil
	default:
		return nil, NewPreferencesError("load profiles", err)
	}

	for i := range custom {
		custom[i].Custom = true
		if custom[i].Settings != nil {
			custom[i].Settings.Normalize()
		}
	}
	sort.SliceStable(custom, func(i, j int) bool {
		return custom[i].CreatedAt.Before(custom[j].CreatedAt)
	})
	return custom, nil
}

func (p *ProfileService) saveCustom(ctx context.Context, custom []models.Profile) error {
	if custom == nil {
		custom = []models.Profile{}
	}
	if err := storage.SetJSON(ctx, p.store, storage.KeyProfiles, custom); err != nil {
		return NewPreferencesError("save profiles", err)
	}
	return nil
}

func isPreset(id string) bool {
	for _, preset := range models.PresetProfiles() {
		if preset.ID == id {
			return true
		}
	}
	return false
}
