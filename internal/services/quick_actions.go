package services

import (
	"fmt"

	"accessiai/internal/models"
)

// QuickAction is a one-tap shortcut on the settings page toolbar.
type QuickAction string

const (
	QuickActionFontSize    QuickAction = "font-size"
	QuickActionContrast    QuickAction = "contrast"
	QuickActionVoice       QuickAction = "voice"
	QuickActionReadingMode QuickAction = "reading-mode"
)

var contrastCycle = []models.ContrastMode{models.ContrastNormal, models.ContrastHigh, models.ContrastExtraHigh}

// RunQuickAction applies a shortcut through UpdateGroup, so it marks the
// settings dirty like any other edit.
func (s *SettingsService) RunQuickAction(action QuickAction) (models.Settings, error) {
	cur := s.Current()

	switch action {
	case QuickActionFontSize:
		size := cur.Visual.FontSize + models.FontSizeStep
		if cur.Visual.FontSize >= models.MaxFontSize {
			size = models.MinFontSize
		}
		return s.UpdateGroup(models.GroupVisual, map[string]any{"fontSize": size})

	case QuickActionContrast:
		next := contrastCycle[0]
		for i, mode := range contrastCycle {
			if mode == cur.Visual.Contrast {
				next = contrastCycle[(i+1)%len(contrastCycle)]
				break
			}
		}
		return s.UpdateGroup(models.GroupVisual, map[string]any{"contrast": string(next)})

	case QuickActionVoice:
		return s.UpdateGroup(models.GroupAudio, map[string]any{"voiceCommands": !cur.Audio.VoiceCommands})

	case QuickActionReadingMode:
		return s.UpdateGroup(models.GroupCognitive, map[string]any{"simplifiedLanguage": !cur.Cognitive.SimplifiedLanguage})
	}

	return models.Settings{}, fmt.Errorf("%w: %q", ErrUnknownQuickAction, action)
}
