package notify

// Event names published by the application.
const (
	EventLanguageChange         = "languageChange"
	EventEmergencyAccess        = "emergencyAccess"
	EventSettingsSaved          = "settingsSaved"
	EventSettingsReset          = "settingsReset"
	EventSettingsImported       = "settingsImported"
	EventPreviewModeChange      = "previewModeChange"
	EventQuickPreferencesChange = "quickPreferencesChange"
	EventProfileApplied         = "profileApplied"
	EventFeatureUsed            = "featureUsed"
)

// Names lists every event name above.
func Names() []string {
	return []string{
		EventLanguageChange,
		EventEmergencyAccess,
		EventSettingsSaved,
		EventSettingsReset,
		EventSettingsImported,
		EventPreviewModeChange,
		EventQuickPreferencesChange,
		EventProfileApplied,
		EventFeatureUsed,
	}
}

// LanguageChange is the payload of EventLanguageChange.
type LanguageChange struct {
	Language string `json:"language"`
}

// PreviewModeChange is the payload of EventPreviewModeChange.
type PreviewModeChange struct {
	Enabled bool `json:"enabled"`
}

// FeatureUsed is the payload of EventFeatureUsed.
type FeatureUsed struct {
	Feature string `json:"feature"`
	At      string `json:"at"`
}

// ProfileApplied is the payload of EventProfileApplied.
type ProfileApplied struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
