package services

import (
	"log/slog"
	"time"

	"accessiai/internal/models"
	"accessiai/internal/notify"
)

// EmergencyAlert is the payload of an emergencyAccess event.
type EmergencyAlert struct {
	Source      string                    `json:"source"`
	Trigger     models.TriggerMethod      `json:"trigger"`
	Message     string                    `json:"message"`
	Contacts    []models.EmergencyContact `json:"contacts"`
	MedicalInfo string                    `json:"medicalInfo,omitempty"`
	Location    bool                      `json:"shareLocation"`
	Flashlight  bool                      `json:"flashlight"`
	LoudAlarm   bool                      `json:"loudAlarm"`
	ScreenFlash bool                      `json:"screenFlash"`
	Vibration   bool                      `json:"vibration"`
	At          time.Time                 `json:"at"`
}

// EmergencyService raises emergency alerts from the current settings.
type EmergencyService struct {
	settings *SettingsService
	notifier *notify.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewEmergencyService(settings *SettingsService, notifier *notify.Notifier, logger *slog.Logger) *EmergencyService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmergencyService{settings: settings, notifier: notifier, logger: logger, now: time.Now}
}

// Trigger publishes an emergencyAccess event built from the working
// emergency settings. source names what raised it, e.g. "button".
func (e *EmergencyService) Trigger(source string) EmergencyAlert {
	em := e.settings.Current().Emergency

	alert := EmergencyAlert{
		Source:      source,
		Trigger:     em.TriggerMethod,
		Message:     em.EmergencyMessage,
		Contacts:    em.EmergencyContacts,
		MedicalInfo: em.MedicalInfo,
		Location:    em.AutoLocation,
		Flashlight:  em.Flashlight,
		LoudAlarm:   em.LoudAlarm,
		ScreenFlash: em.ScreenFlash,
		Vibration:   em.Vibration,
		At:          e.now().UTC(),
	}
	if alert.Message == "" {
		alert.Message = models.DefaultEmergencyMessage
	}

	e.logger.Warn("Emergency access triggered", "source", source, "contacts", len(alert.Contacts))
	e.notifier.Publish(notify.EventEmergencyAccess, alert)
	return alert
}
