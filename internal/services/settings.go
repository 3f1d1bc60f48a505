package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strings"
	"sync"

	"accessiai/internal/models"
	"accessiai/internal/notify"
	"accessiai/internal/storage"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// MessageSaved is announced after saving when voice commands are on.
const MessageSaved = "Settings saved successfully"

type settingsApplier interface {
	Apply(settings models.Settings)
	Announce(message string)
}

// SettingsService owns the working copy of the accessibility settings,
// the unsaved-changes flag and preview mode.
type SettingsService struct {
	store    storage.Store
	applier  settingsApplier
	notifier *notify.Notifier
	logger   *slog.Logger

	mu      sync.Mutex
	current models.Settings
	dirty   bool
	preview bool
}

func NewSettingsService(store storage.Store, applier settingsApplier, notifier *notify.Notifier, logger *slog.Logger) *SettingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsService{
		store:    store,
		applier:  applier,
		notifier: notifier,
		logger:   logger,
		current:  models.Defaults(),
	}
}

// Load reads the persisted settings, falling back to the defaults when
// nothing is stored or the stored value is unreadable, and applies them.
func (s *SettingsService) Load(ctx context.Context) models.Settings {
	loaded := s.readPersisted(ctx)

	s.mu.Lock()
	s.current = loaded
	s.dirty = false
	s.mu.Unlock()

	s.applier.Apply(loaded)
	return loaded.Clone()
}

func (s *SettingsService) readPersisted(ctx context.Context) models.Settings {
	loaded := models.Defaults()
	err := storage.GetJSON(ctx, s.store, storage.KeySettings, &loaded)
	switch {
	case err == nil:
		loaded.Normalize()
		return loaded
	case errors.Is(err, storage.ErrNotFound):
		s.logger.Debug("No saved settings, using defaults")
	default:
		s.logger.Warn("Failed to read saved settings, using defaults", "error", err)
	}
	return models.Defaults()
}

// Current returns a copy of the working settings.
func (s *SettingsService) Current() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// IsDirty reports whether there are changes since the last load or save.
func (s *SettingsService) IsDirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

func (s *SettingsService) PreviewMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview
}

// UpdateGroup merges fields into one group and leaves every other group
// untouched. Field names are the JSON names of the group. The merged group
// is normalized. On error nothing changes.
func (s *SettingsService) UpdateGroup(group models.Group, fields map[string]any) (models.Settings, error) {
	if !group.Valid() {
		return models.Settings{}, fmt.Errorf("%w: %q", ErrUnknownGroup, group)
	}

	s.mu.Lock()
	next, err := mergeGroup(s.current, group, fields)
	if err != nil {
		s.mu.Unlock()
		return models.Settings{}, err
	}
	s.current = next
	s.dirty = true
	preview := s.preview
	s.mu.Unlock()

	if preview {
		s.applier.Apply(next)
	}
	return next.Clone(), nil
}

func mergeGroup(current models.Settings, group models.Group, fields map[string]any) (models.Settings, error) {
	next := current.Clone()
	raw, err := next.GroupJSON(group)
	if err != nil {
		return models.Settings{}, err
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if !isPlainField(k) || !gjson.GetBytes(raw, k).Exists() {
			return models.Settings{}, fmt.Errorf("%w: %s.%s", ErrUnknownField, group, k)
		}
		raw, err = sjson.SetBytes(raw, k, fields[k])
		if err != nil {
			return models.Settings{}, fmt.Errorf("%w: %s.%s: %v", ErrInvalidValue, group, k, err)
		}
	}

	if err := next.SetGroupJSON(group, raw); err != nil {
		return models.Settings{}, fmt.Errorf("%w: %s: %v", ErrInvalidValue, group, err)
	}
	return next, nil
}

// isPlainField rejects names that gjson/sjson would read as a path.
func isPlainField(k string) bool {
	return k != "" && !strings.ContainsAny(k, ".*?|#@\\!=<>%")
}

// Replace swaps in a complete settings value, normalized.
func (s *SettingsService) Replace(next models.Settings) models.Settings {
	next = next.Clone()
	next.Normalize()

	s.mu.Lock()
	s.current = next
	s.dirty = true
	preview := s.preview
	s.mu.Unlock()

	if preview {
		s.applier.Apply(next)
	}
	return next.Clone()
}

// Save persists the working settings, clears the dirty flag and applies
// the persisted value. On failure the working copy and dirty flag are kept.
func (s *SettingsService) Save(ctx context.Context) error {
	snapshot := s.Current()

	if err := storage.SetJSON(ctx, s.store, storage.KeySettings, snapshot); err != nil {
		s.logger.Error("Failed to save settings", "error", err)
		return NewPreferencesError("save", err)
	}

	s.mu.Lock()
	// edits made while persisting stay unsaved
	if reflect.DeepEqual(s.current, snapshot) {
		s.dirty = false
	}
	s.mu.Unlock()

	s.applier.Apply(snapshot)
	if snapshot.Audio.VoiceCommands {
		s.applier.Announce(MessageSaved)
	}
	s.notifier.Publish(notify.EventSettingsSaved, snapshot)
	s.logger.Info("Settings saved")
	return nil
}

// ResetToDefaults replaces the working settings with the defaults. The
// reset is not persisted until Save.
func (s *SettingsService) ResetToDefaults() models.Settings {
	next := s.Replace(models.Defaults())
	s.notifier.Publish(notify.EventSettingsReset, next)
	return next
}

// Export encodes the working settings as indented JSON.
func (s *SettingsService) Export() ([]byte, error) {
	return json.MarshalIndent(s.Current(), "", "  ")
}

// Import replaces the working settings with a previously exported
// document. Groups or fields missing from data keep their default values;
// out-of-range numbers are clamped and unknown enum values reset. Any
// error leaves the working settings unchanged and matches
// ErrInvalidFileFormat.
func (s *SettingsService) Import(data []byte) (models.Settings, error) {
	if !gjson.ValidBytes(data) {
		return models.Settings{}, &ImportError{Err: errors.New("not valid JSON")}
	}
	if !gjson.ParseBytes(data).IsObject() {
		return models.Settings{}, &ImportError{Err: errors.New("top level is not an object")}
	}

	imported := models.Defaults()
	if err := json.Unmarshal(data, &imported); err != nil {
		return models.Settings{}, &ImportError{Err: err}
	}

	if err := models.Validate(imported); err != nil {
		s.logger.Warn("Imported settings adjusted to supported values", "error", err)
	}

	next := s.Replace(imported)
	s.notifier.Publish(notify.EventSettingsImported, next)
	return next, nil
}

// SetPreviewMode turns live preview on or off. Turning it on applies the
// working settings; turning it off re-applies what is persisted, leaving
// unsaved edits in place.
func (s *SettingsService) SetPreviewMode(ctx context.Context, on bool) {
	s.mu.Lock()
	s.preview = on
	current := s.current.Clone()
	s.mu.Unlock()

	if on {
		s.applier.Apply(current)
	} else {
		s.applier.Apply(s.readPersisted(ctx))
	}
	s.notifier.Publish(notify.EventPreviewModeChange, notify.PreviewModeChange{Enabled: on})
}

// TogglePreviewMode flips preview mode and returns the new state.
func (s *SettingsService) TogglePreviewMode(ctx context.Context) bool {
	on := !s.PreviewMode()
	s.SetPreviewMode(ctx, on)
	return on
}
