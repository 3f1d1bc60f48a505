package models

import "time"

// Profile is a named bundle of settings. Presets carry partial Overrides
// merged field by field; custom profiles carry a full Settings snapshot.
type Profile struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Icon        string                   `json:"icon,omitempty"`
	Custom      bool                     `json:"custom"`
	Overrides   map[Group]map[string]any `json:"overrides,omitempty"`
	Settings    *Settings                `json:"settings,omitempty"`
	CreatedAt   time.Time                `json:"createdAt"`
}

// PresetProfiles returns the built-in profiles, freshly allocated.
func PresetProfiles() []Profile {
	return []Profile{
		{
			ID:          "visual-impairment",
			Name:        "Visual Impairment",
			Description: "High contrast, large fonts, screen reader",
			Icon:        "Eye",
			Overrides: map[Group]map[string]any{
				GroupVisual:    {"fontSize": 20, "contrast": "high", "screenReader": true, "largeButtons": true},
				GroupAudio:     {"volume": 80, "speechSpeed": 100, "audioDescriptions": true},
				GroupMotor:     {"gestureSensitivity": 5, "dwellTime": 1000},
				GroupCognitive: {"complexity": "simple", "simplifiedLanguage": true},
			},
		},
		{
			ID:          "hearing-impairment",
			Name:        "Hearing Impairment",
			Description: "Visual cues, vibration, captions",
			Icon:        "Ear",
			Overrides: map[Group]map[string]any{
				GroupVisual:    {"focusIndicators": true},
				GroupAudio:     {"volume": 0, "soundEffects": false},
				GroupCognitive: {"visualCues": true, "preferImages": true},
				GroupEmergency: {"vibration": true},
			},
		},
		{
			ID:          "motor-impairment",
			Name:        "Motor Impairment",
			Description: "Voice control, large buttons, dwell click",
			Icon:        "Hand",
			Overrides: map[Group]map[string]any{
				GroupVisual:    {"largeButtons": true, "fontSize": 18},
				GroupAudio:     {"voiceCommands": true},
				GroupMotor:     {"clickAssistance": "dwell", "dwellTime": 1500, "stickyKeys": true},
				GroupCognitive: {"taskBreakdown": true},
			},
		},
		{
			ID:          "cognitive-support",
			Name:        "Cognitive Support",
			Description: "Simple interface, memory aids, progress indicators",
			Icon:        "Brain",
			Overrides: map[Group]map[string]any{
				GroupVisual: {"fontSize": 16, "animations": false},
				GroupCognitive: {
					"complexity":         "simple",
					"simplifiedLanguage": true,
					"memoryAids":         true,
					"progressIndicators": true,
					"taskBreakdown":      true,
					"reminderFrequency":  "high",
				},
			},
		},
	}
}
