package application

import (
	"context"
	"log/slog"
	"time"

	"accessiai/internal/common"
	"accessiai/internal/config"
	"accessiai/internal/container"
	"accessiai/internal/database"
	"accessiai/internal/models"
	"accessiai/internal/presentation"
	"accessiai/internal/services"
	"accessiai/internal/transport"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
	"gorm.io/gorm"
)

// runtimeHooks are the frontend-facing pieces of the Wails runtime.
type runtimeHooks struct {
	emit    transport.EmitFunc
	on      transport.OnFunc
	dialogs transport.DialogHandler
}

// App is bound to the frontend. Every exported method is callable from
// JavaScript once OnStartup has run.
type App struct {
	ctx       context.Context
	config    *config.Config
	db        *gorm.DB
	container *container.Container
	bridge    *transport.Bridge
	dialogs   transport.DialogHandler
	stats     *StatsManager
	logger    *slog.Logger
	startedAt time.Time
}

func NewApp() *App {
	return &App{logger: slog.Default()}
}

func (a *App) OnStartup(ctx context.Context) {
	// Initialize configuration
	cfg := config.New()

	// Initialize database; without one the container keeps preferences in memory
	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		cfg.Logger.Error("Failed to initialize database", "error", err)
		db = nil
	}

	a.start(ctx, cfg, db, runtimeHooks{
		emit:    wailsruntime.EventsEmit,
		on:      wailsruntime.EventsOn,
		dialogs: transport.NewDialogsHandler(ctx),
	})
}

func (a *App) start(ctx context.Context, cfg *config.Config, db *gorm.DB, hooks runtimeHooks) {
	a.ctx = ctx
	a.config = cfg
	a.db = db
	a.dialogs = hooks.dialogs
	a.startedAt = time.Now()
	if cfg.Logger != nil {
		a.logger = cfg.Logger
	}

	// Initialize dependency container
	c, err := container.NewWithEmitter(ctx, cfg, db, presentation.EmitFunc(hooks.emit))
	if err != nil {
		a.logger.Error("Failed to initialize services", "error", err)
		return
	}
	a.container = c

	// Apply persisted settings, then the toolbar values on top
	c.GetSettingsService().Load(ctx)
	c.GetToolbarService().Restore(ctx)

	emergency := c.GetEmergencyService()
	a.bridge = transport.NewBridge(ctx, c.GetNotifier(), func(source string) {
		emergency.Trigger(source)
	}, hooks.emit, hooks.on, a.logger)
	a.bridge.Start()

	a.stats = NewStatsManager(ctx, c.GetNotifier(), hooks.emit)

	a.logger.Info("AccessiAI initialized successfully")
	a.logger.Info("Application configuration",
		"app_data_dir", cfg.AppDataDir,
		"database_path", cfg.DatabasePath,
		"storage_backend", c.Backend(),
		"notifier_workers", cfg.NotifierWorkers)
}

// OnShutdown releases frontend listeners, the notifier, the store and the
// database, in that order.
func (a *App) OnShutdown(ctx context.Context) {
	if a.bridge != nil {
		a.bridge.Close()
	}
	if a.stats != nil {
		a.stats.Stop()
	}
	if a.container != nil {
		if a.container.GetSettingsService().IsDirty() {
			a.logger.Warn("Discarding unsaved settings changes")
		}
		a.container.Close()
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			a.logger.Error("Failed to close database", "error", err)
		}
	}
}

func (a *App) ready() error {
	if a.container == nil {
		return ErrNotInitialized
	}
	return nil
}

// Settings

func (a *App) GetSettings() (models.Settings, error) {
	if err := a.ready(); err != nil {
		return models.Settings{}, err
	}
	return a.container.GetSettingsService().Current(), nil
}

func (a *App) UpdateSettings(group string, fields map[string]interface{}) (models.Settings, error) {
	if err := a.ready(); err != nil {
		return models.Settings{}, err
	}
	return a.container.GetSettingsService().UpdateGroup(models.Group(group), fields)
}

// SaveSettings persists the working settings and returns the confirmation
// message shown to the user.
func (a *App) SaveSettings() (string, error) {
	if err := a.ready(); err != nil {
		return "", err
	}
	if err := a.container.GetSettingsService().Save(a.ctx); err != nil {
		a.logger.Error("Failed to save settings", "error", err)
		return "", err
	}
	return services.MessageSaved, nil
}

func (a *App) ResetSettings() (models.Settings, error) {
	if err := a.ready(); err != nil {
		return models.Settings{}, err
	}
	return a.container.GetSettingsService().ResetToDefaults(), nil
}

func (a *App) HasUnsavedChanges() bool {
	return a.ready() == nil && a.container.GetSettingsService().IsDirty()
}

func (a *App) SetPreviewMode(on bool) error {
	if err := a.ready(); err != nil {
		return err
	}
	a.container.GetSettingsService().SetPreviewMode(a.ctx, on)
	return nil
}

func (a *App) TogglePreviewMode() (bool, error) {
	if err := a.ready(); err != nil {
		return false, err
	}
	return a.container.GetSettingsService().TogglePreviewMode(a.ctx), nil
}

func (a *App) RunQuickAction(action string) (models.Settings, error) {
	if err := a.ready(); err != nil {
		return models.Settings{}, err
	}
	return a.container.GetSettingsService().RunQuickAction(services.QuickAction(action))
}

// GetPresentation returns what was last pushed to the frontend.
func (a *App) GetPresentation() (presentation.Projection, error) {
	if err := a.ready(); err != nil {
		return presentation.Projection{}, err
	}
	p, _ := a.container.GetApplier().Current()
	return p, nil
}

// ExportSettings asks for a destination and writes the working settings
// there. It returns the chosen path, or "" if the user cancelled.
func (a *App) ExportSettings() (string, error) {
	if err := a.ready(); err != nil {
		return "", err
	}
	path, err := a.dialogs.ChooseExportPath()
	if err != nil {
		return "", NewTransferError("export", "", err)
	}
	if path == "" {
		return "", nil
	}
	return path, a.exportTo(path)
}

func (a *App) exportTo(path string) error {
	data, err := a.container.GetSettingsService().Export()
	if err != nil {
		return NewTransferError("export", path, err)
	}
	if err := transport.WriteExport(path, data); err != nil {
		return NewTransferError("export", path, err)
	}
	a.logger.Info("Settings exported", "path", path)
	return nil
}

// ImportSettings asks for a settings file and loads it into the working
// settings. Cancelling leaves everything unchanged.
func (a *App) ImportSettings() (models.Settings, error) {
	if err := a.ready(); err != nil {
		return models.Settings{}, err
	}
	path, err := a.dialogs.ChooseImportPath()
	if err != nil {
		return models.Settings{}, NewTransferError("import", "", err)
	}
	if path == "" {
		return a.container.GetSettingsService().Current(), nil
	}
	return a.importFrom(path)
}

func (a *App) importFrom(path string) (models.Settings, error) {
	data, err := transport.ReadImport(path)
	if err != nil {
		return models.Settings{}, NewTransferError("import", path, err)
	}
	settings, err := a.container.GetSettingsService().Import(data)
	if err != nil {
		a.logger.Warn("Rejected settings import", "path", path, "error", err)
		return models.Settings{}, NewTransferError("import", path, err)
	}
	return settings, nil
}

// Toolbar

func (a *App) GetQuickPreferences() (services.QuickPreferences, error) {
	if err := a.ready(); err != nil {
		return services.QuickPreferences{}, err
	}
	return a.container.GetToolbarService().Get(a.ctx), nil
}

func (a *App) IncreaseFontSize() (services.QuickPreferences, error) {
	if err := a.ready(); err != nil {
		return services.QuickPreferences{}, err
	}
	return a.container.GetToolbarService().IncreaseFontSize(a.ctx)
}

func (a *App) DecreaseFontSize() (services.QuickPreferences, error) {
	if err := a.ready(); err != nil {
		return services.QuickPreferences{}, err
	}
	return a.container.GetToolbarService().DecreaseFontSize(a.ctx)
}

func (a *App) ResetFontSize() (services.QuickPreferences, error) {
	if err := a.ready(); err != nil {
		return services.QuickPreferences{}, err
	}
	return a.container.GetToolbarService().ResetFontSize(a.ctx)
}

func (a *App) ToggleContrast() (services.QuickPreferences, error) {
	if err := a.ready(); err != nil {
		return services.QuickPreferences{}, err
	}
	return a.container.GetToolbarService().ToggleContrast(a.ctx)
}

func (a *App) ToggleVoice() (services.QuickPreferences, error) {
	if err := a.ready(); err != nil {
		return services.QuickPreferences{}, err
	}
	return a.container.GetToolbarService().ToggleVoice(a.ctx)
}

func (a *App) GetToolbarLayout() (services.ToolbarLayout, error) {
	if err := a.ready(); err != nil {
		return services.ToolbarLayout{}, err
	}
	return a.container.GetToolbarService().Layout(a.ctx), nil
}

func (a *App) SetToolbarPosition(position string) (services.ToolbarLayout, error) {
	if err := a.ready(); err != nil {
		return services.ToolbarLayout{}, err
	}
	return a.container.GetToolbarService().SetPosition(a.ctx, position)
}

func (a *App) SetToolbarVisible(visible bool) (services.ToolbarLayout, error) {
	if err := a.ready(); err != nil {
		return services.ToolbarLayout{}, err
	}
	return a.container.GetToolbarService().SetVisible(a.ctx, visible)
}

// Language

func (a *App) GetLanguages() ([]services.LanguageOption, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	return a.container.GetLanguageService().Supported(), nil
}

func (a *App) GetLanguage() (string, error) {
	if err := a.ready(); err != nil {
		return "", err
	}
	return a.container.GetLanguageService().Get(a.ctx), nil
}

func (a *App) SetLanguage(code string) (string, error) {
	if err := a.ready(); err != nil {
		return "", err
	}
	return a.container.GetLanguageService().Set(a.ctx, code)
}

// Profiles

func (a *App) ListProfiles() ([]models.Profile, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	return a.container.GetProfileService().List(a.ctx)
}

func (a *App) CreateProfile(name string) (models.Profile, error) {
	if err := a.ready(); err != nil {
		return models.Profile{}, err
	}
	return a.container.GetProfileService().Create(a.ctx, name)
}

func (a *App) DeleteProfile(id string) error {
	if err := a.ready(); err != nil {
		return err
	}
	return a.container.GetProfileService().Delete(a.ctx, id)
}

func (a *App) ApplyProfile(id string) (models.Settings, error) {
	if err := a.ready(); err != nil {
		return models.Settings{}, err
	}
	return a.container.GetProfileService().Apply(a.ctx, id)
}

// Emergency and usage

func (a *App) TriggerEmergency(source string) (services.EmergencyAlert, error) {
	if err := a.ready(); err != nil {
		return services.EmergencyAlert{}, err
	}
	return a.container.GetEmergencyService().Trigger(source), nil
}

// MarkFeatureUsed records feature as used now and returns the RFC 3339
// timestamp stored.
func (a *App) MarkFeatureUsed(feature string) (string, error) {
	if err := a.ready(); err != nil {
		return "", err
	}
	at, err := a.container.GetUsageService().MarkUsed(a.ctx, feature)
	if err != nil {
		return "", err
	}
	return at.Format(time.RFC3339), nil
}

// GetFeatureLastUsed returns the RFC 3339 time feature was last used, or
// "" if it never was.
func (a *App) GetFeatureLastUsed(feature string) (string, error) {
	if err := a.ready(); err != nil {
		return "", err
	}
	at, ok, err := a.container.GetUsageService().LastUsed(a.ctx, feature)
	if err != nil || !ok {
		return "", err
	}
	return at.Format(time.RFC3339), nil
}

// Status

func (a *App) GetStats() SessionStats {
	if a.stats == nil {
		return SessionStats{}
	}
	return a.stats.GetStats()
}

func (a *App) GetAppStatus() map[string]interface{} {
	status := map[string]interface{}{
		"status":      StatusStarting,
		"framework":   "Wails",
		"app_name":    common.AppName,
		"app_version": common.AppVersion,
	}
	if a.config != nil {
		status["app_data_dir"] = a.config.AppDataDir
		status["database_path"] = a.config.DatabasePath
	}
	if a.container == nil {
		if a.config != nil {
			status["status"] = StatusDegraded
		}
		return status
	}

	status["status"] = StatusRunning
	status["storage_backend"] = a.container.Backend()
	status["configured_backend"] = a.config.StorageBackend
	status["unsaved_changes"] = a.container.GetSettingsService().IsDirty()
	status["preview_mode"] = a.container.GetSettingsService().PreviewMode()
	status["uptime_seconds"] = int64(time.Since(a.startedAt).Seconds())
	if a.container.Backend() != a.config.StorageBackend {
		status["status"] = StatusDegraded
	}
	return status
}
