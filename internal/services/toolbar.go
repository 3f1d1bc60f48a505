package services

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"accessiai/internal/models"
	"accessiai/internal/notify"
	"accessiai/internal/storage"
)

// MessageVoiceEnabled is spoken when voice feedback is switched on.
const MessageVoiceEnabled = "Voice feedback enabled"

// Toolbar positions on screen.
const (
	PositionTopLeft     = "top-left"
	PositionTopRight    = "top-right"
	PositionBottomLeft  = "bottom-left"
	PositionBottomRight = "bottom-right"
)

type visualApplier interface {
	ApplyVisual(fontSize int, contrast models.ContrastMode)
	Announce(message string)
}

// QuickPreferences are the global toolbar values. They are stored under
// their own keys, apart from the full settings document.
type QuickPreferences struct {
	FontSize     int                 `json:"fontSize"`
	Contrast     models.ContrastMode `json:"contrast"`
	VoiceEnabled bool                `json:"voiceEnabled"`
}

// ToolbarLayout is where the quick access toolbar sits and whether it shows.
type ToolbarLayout struct {
	Position string `json:"position"`
	Visible  bool   `json:"visible"`
}

// ToolbarService backs the always-visible accessibility toolbar.
type ToolbarService struct {
	store    storage.Store
	applier  visualApplier
	notifier *notify.Notifier
	logger   *slog.Logger
}

func NewToolbarService(store storage.Store, applier visualApplier, notifier *notify.Notifier, logger *slog.Logger) *ToolbarService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ToolbarService{store: store, applier: applier, notifier: notifier, logger: logger}
}

// Get reads the toolbar values, substituting defaults for anything missing
// or unreadable.
func (t *ToolbarService) Get(ctx context.Context) QuickPreferences {
	prefs := QuickPreferences{FontSize: models.DefaultFontSize, Contrast: models.ContrastNormal}

	if v, ok := t.read(ctx, storage.KeyFontSize); ok {
		if n, err := strconv.Atoi(v); err == nil {
			prefs.FontSize = models.ClampFontSize(n)
		} else {
			t.logger.Warn("Ignoring stored font size", "value", v)
		}
	}
	if v, ok := t.read(ctx, storage.KeyContrast); ok {
		switch models.ContrastMode(v) {
		case models.ContrastNormal, models.ContrastHigh, models.ContrastExtraHigh:
			prefs.Contrast = models.ContrastMode(v)
		}
	}
	if v, ok := t.read(ctx, storage.KeyVoice); ok {
		prefs.VoiceEnabled = v == "true"
	}
	return prefs
}

// Restore applies the stored toolbar values, as done once at startup.
func (t *ToolbarService) Restore(ctx context.Context) QuickPreferences {
	prefs := t.Get(ctx)
	t.applier.ApplyVisual(prefs.FontSize, prefs.Contrast)
	return prefs
}

func (t *ToolbarService) IncreaseFontSize(ctx context.Context) (QuickPreferences, error) {
	prefs := t.Get(ctx)
	return t.SetFontSize(ctx, prefs.FontSize+models.FontSizeStep)
}

func (t *ToolbarService) DecreaseFontSize(ctx context.Context) (QuickPreferences, error) {
	prefs := t.Get(ctx)
	return t.SetFontSize(ctx, prefs.FontSize-models.FontSizeStep)
}

func (t *ToolbarService) ResetFontSize(ctx context.Context) (QuickPreferences, error) {
	return t.SetFontSize(ctx, models.DefaultFontSize)
}

// SetFontSize stores px clamped to the supported range and applies it.
func (t *ToolbarService) SetFontSize(ctx context.Context, px int) (QuickPreferences, error) {
	prefs := t.Get(ctx)
	prefs.FontSize = models.ClampFontSize(px)

	if err := t.store.Set(ctx, storage.KeyFontSize, strconv.Itoa(prefs.FontSize)); err != nil {
		return prefs, NewPreferencesError("set font size", err)
	}
	t.changed(prefs)
	return prefs, nil
}

// ToggleContrast switches between normal and high contrast. Extra-high
// goes back to normal.
func (t *ToolbarService) ToggleContrast(ctx context.Context) (QuickPreferences, error) {
	prefs := t.Get(ctx)
	if prefs.Contrast == models.ContrastNormal {
		prefs.Contrast = models.ContrastHigh
	} else {
		prefs.Contrast = models.ContrastNormal
	}

	if err := t.store.Set(ctx, storage.KeyContrast, string(prefs.Contrast)); err != nil {
		return prefs, NewPreferencesError("set contrast", err)
	}
	t.changed(prefs)
	return prefs, nil
}

// ToggleVoice flips voice feedback and announces when it comes on.
func (t *ToolbarService) ToggleVoice(ctx context.Context) (QuickPreferences, error) {
	prefs := t.Get(ctx)
	prefs.VoiceEnabled = !prefs.VoiceEnabled

	if err := t.store.Set(ctx, storage.KeyVoice, strconv.FormatBool(prefs.VoiceEnabled)); err != nil {
		return prefs, NewPreferencesError("set voice", err)
	}
	if prefs.VoiceEnabled {
		t.applier.Announce(MessageVoiceEnabled)
	}
	t.notifier.Publish(notify.EventQuickPreferencesChange, prefs)
	return prefs, nil
}

// Layout returns the stored toolbar placement, bottom-right and visible by
// default.
func (t *ToolbarService) Layout(ctx context.Context) ToolbarLayout {
	layout := ToolbarLayout{Position: PositionBottomRight, Visible: true}
	if v, ok := t.read(ctx, storage.KeyToolbarPosition); ok && validPosition(v) {
		layout.Position = v
	}
	if v, ok := t.read(ctx, storage.KeyToolbarVisible); ok {
		layout.Visible = v != "false"
	}
	return layout
}

func (t *ToolbarService) SetPosition(ctx context.Context, position string) (ToolbarLayout, error) {
	if !validPosition(position) {
		return t.Layout(ctx), ErrInvalidPosition
	}
	if err := t.store.Set(ctx, storage.KeyToolbarPosition, position); err != nil {
		return t.Layout(ctx), NewPreferencesError("set toolbar position", err)
	}
	return t.Layout(ctx), nil
}

func (t *ToolbarService) SetVisible(ctx context.Context, visible bool) (ToolbarLayout, error) {
	if err := t.store.Set(ctx, storage.KeyToolbarVisible, strconv.FormatBool(visible)); err != nil {
		return t.Layout(ctx), NewPreferencesError("set toolbar visibility", err)
	}
	return t.Layout(ctx), nil
}

func validPosition(p string) bool {
	switch p {
	case PositionTopLeft, PositionTopRight, PositionBottomLeft, PositionBottomRight:
		return true
	}
	return false
}

func (t *ToolbarService) changed(prefs QuickPreferences) {
	t.applier.ApplyVisual(prefs.FontSize, prefs.Contrast)
	t.notifier.Publish(notify.EventQuickPreferencesChange, prefs)
}

func (t *ToolbarService) read(ctx context.Context, key string) (string, bool) {
	v, err := t.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			t.logger.Warn("Failed to read preference", "key", key, "error", err)
		}
		return "", false
	}
	return v, true
}
