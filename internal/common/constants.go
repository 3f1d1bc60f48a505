package common

const (
	// Application identity
	AppName    = "AccessiAI"
	AppVersion = "0.1.0"

	// Import/export
	ExportFileName = "accessibility-settings.json"

	// File operation constants
	DefaultFilePermissions = 0644
	DefaultDirPermissions  = 0755
)
