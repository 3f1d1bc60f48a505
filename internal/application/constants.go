package application

const (
	// Frontend event names
	EventStatsUpdate = "stats:update"

	// Status values reported by GetAppStatus
	StatusRunning  = "running"
	StatusStarting = "starting"
	StatusDegraded = "degraded"
)
