package application

import (
	"context"
	"sync"

	"accessiai/internal/notify"
	"accessiai/internal/transport"
)

// SessionStats counts what happened since the app started.
type SessionStats struct {
	SettingsSaved    int `json:"settings_saved"`
	SettingsImported int `json:"settings_imported"`
	SettingsReset    int `json:"settings_reset"`
	ProfilesApplied  int `json:"profiles_applied"`
	LanguageChanges  int `json:"language_changes"`
	EmergencyAlerts  int `json:"emergency_alerts"`
	FeaturesUsed     int `json:"features_used"`
}

// StatsManager tallies application events into SessionStats and pushes
// each update to the frontend.
type StatsManager struct {
	ctx  context.Context
	emit transport.EmitFunc
	sub  *notify.Subscription

	mu    sync.Mutex
	stats SessionStats
}

func NewStatsManager(ctx context.Context, n *notify.Notifier, emit transport.EmitFunc) *StatsManager {
	m := &StatsManager{
		ctx:  ctx,
		emit: emit,
	}
	m.sub = n.SubscribeAll(m.record)
	return m
}

func (m *StatsManager) record(e notify.Event) {
	m.mu.Lock()
	switch e.Name {
	case notify.EventSettingsSaved:
		m.stats.SettingsSaved++
	case notify.EventSettingsImported:
		m.stats.SettingsImported++
	case notify.EventSettingsReset:
		m.stats.SettingsReset++
	case notify.EventProfileApplied:
		m.stats.ProfilesApplied++
	case notify.EventLanguageChange:
		m.stats.LanguageChanges++
	case notify.EventEmergencyAccess:
		m.stats.EmergencyAlerts++
	case notify.EventFeatureUsed:
		m.stats.FeaturesUsed++
	default:
		m.mu.Unlock()
		return
	}
	snapshot := m.stats
	m.mu.Unlock()

	if m.emit != nil {
		m.emit(m.ctx, EventStatsUpdate, snapshot)
	}
}

func (m *StatsManager) GetStats() SessionStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// Stop detaches the manager from the notifier.
func (m *StatsManager) Stop() {
	m.sub.Unsubscribe()
}
