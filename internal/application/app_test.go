package application

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"accessiai/internal/config"
	"accessiai/internal/database"
	"accessiai/internal/models"
	"accessiai/internal/notify"
	"accessiai/internal/presentation"
	"accessiai/internal/services"
	"accessiai/internal/transport"
)

type fakeRuntime struct {
	mu        sync.Mutex
	emitted   []string
	listeners map[string]func(optionalData ...interface{})
}

func (f *fakeRuntime) emit(ctx context.Context, eventName string, optionalData ...interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emitted = append(f.emitted, eventName)
}

func (f *fakeRuntime) on(ctx context.Context, eventName string, callback func(optionalData ...interface{})) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listeners == nil {
		f.listeners = map[string]func(optionalData ...interface{}){}
	}
	f.listeners[eventName] = callback
	return func() {}
}

func (f *fakeRuntime) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.emitted {
		if e == name {
			n++
		}
	}
	return n
}

type fakeDialogs struct {
	exportPath string
	importPath string
	err        error
}

func (d *fakeDialogs) ChooseExportPath() (string, error) { return d.exportPath, d.err }
func (d *fakeDialogs) ChooseImportPath() (string, error) { return d.importPath, d.err }

func startTestApp(t *testing.T, dialogs *fakeDialogs) (*App, *fakeRuntime) {
	t.Helper()
	rt := &fakeRuntime{}
	app := NewApp()
	app.start(context.Background(), &config.Config{StorageBackend: config.BackendMemory}, nil, runtimeHooks{
		emit:    rt.emit,
		on:      rt.on,
		dialogs: dialogs,
	})
	t.Cleanup(func() { app.OnShutdown(context.Background()) })
	return app, rt
}

func TestApp_NotInitialized(t *testing.T) {
	app := NewApp()

	if _, err := app.GetSettings(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}
	if app.HasUnsavedChanges() {
		t.Error("Expected no unsaved changes before startup")
	}
	if status := app.GetAppStatus(); status["status"] != StatusStarting {
		t.Errorf("Expected starting status, got %v", status["status"])
	}
	app.OnShutdown(context.Background())
}

func TestApp_StartupAppliesSettings(t *testing.T) {
	app, rt := startTestApp(t, &fakeDialogs{})

	settings, err := app.GetSettings()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if settings.Visual.FontSize != models.DefaultFontSize {
		t.Errorf("Expected default settings, got font size %d", settings.Visual.FontSize)
	}
	if rt.count(presentation.EventApply) == 0 {
		t.Error("Expected settings applied to the frontend on startup")
	}

	status := app.GetAppStatus()
	if status["status"] != StatusRunning || status["storage_backend"] != config.BackendMemory {
		t.Errorf("Unexpected status: %v", status)
	}
}

func TestApp_UpdateAndSave(t *testing.T) {
	app, rt := startTestApp(t, &fakeDialogs{})

	if _, err := app.UpdateSettings("audio", map[string]interface{}{"volume": 40}); err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}
	if !app.HasUnsavedChanges() {
		t.Error("Expected unsaved changes after update")
	}

	msg, err := app.SaveSettings()
	if err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	if msg != services.MessageSaved {
		t.Errorf("Expected %q, got %q", services.MessageSaved, msg)
	}
	if app.HasUnsavedChanges() {
		t.Error("Expected no unsaved changes after save")
	}
	if rt.count(notify.EventSettingsSaved) != 1 {
		t.Error("Expected settingsSaved forwarded to the frontend")
	}
	if app.GetStats().SettingsSaved != 1 || rt.count(EventStatsUpdate) == 0 {
		t.Errorf("Expected stats to record the save, got %+v", app.GetStats())
	}
}

func TestApp_UpdateUnknownGroup(t *testing.T) {
	app, _ := startTestApp(t, &fakeDialogs{})

	if _, err := app.UpdateSettings("haptics", map[string]interface{}{"x": 1}); !errors.Is(err, services.ErrUnknownGroup) {
		t.Errorf("Expected ErrUnknownGroup, got %v", err)
	}
}

func TestApp_ExportImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accessibility-settings.json")
	dialogs := &fakeDialogs{exportPath: path, importPath: path}
	app, _ := startTestApp(t, dialogs)

	app.UpdateSettings("visual", map[string]interface{}{"fontSize": 22, "contrast": "high"})
	got, err := app.ExportSettings()
	if err != nil || got != path {
		t.Fatalf("Expected export to %s, got %q (%v)", path, got, err)
	}

	app.ResetSettings()
	imported, err := app.ImportSettings()
	if err != nil {
		t.Fatalf("ImportSettings failed: %v", err)
	}
	if imported.Visual.FontSize != 22 || imported.Visual.Contrast != models.ContrastHigh {
		t.Errorf("Expected exported values back, got %+v", imported.Visual)
	}
	if app.GetStats().SettingsImported != 1 {
		t.Error("Expected import counted")
	}
}

func TestApp_CancelledDialogs(t *testing.T) {
	app, _ := startTestApp(t, &fakeDialogs{})

	path, err := app.ExportSettings()
	if err != nil || path != "" {
		t.Errorf("Expected cancelled export to be a no-op, got %q (%v)", path, err)
	}

	before, _ := app.GetSettings()
	after, err := app.ImportSettings()
	if err != nil || after.Visual != before.Visual {
		t.Errorf("Expected cancelled import to keep settings, got %v", err)
	}
}

func TestApp_ImportInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("[1, 2"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	app, _ := startTestApp(t, &fakeDialogs{importPath: path})

	_, err := app.ImportSettings()

	var transferErr *TransferError
	if !errors.As(err, &transferErr) || transferErr.FilePath != path {
		t.Fatalf("Expected *TransferError for %s, got %v", path, err)
	}
	if !errors.Is(err, services.ErrInvalidFileFormat) {
		t.Errorf("Expected ErrInvalidFileFormat, got %v", err)
	}
}

func TestApp_DialogError(t *testing.T) {
	dialogErr := errors.New("dialog failed")
	app, _ := startTestApp(t, &fakeDialogs{err: dialogErr})

	if _, err := app.ExportSettings(); !errors.Is(err, dialogErr) {
		t.Errorf("Expected dialog error, got %v", err)
	}
}

func TestApp_FrontendEmergencyTrigger(t *testing.T) {
	app, rt := startTestApp(t, &fakeDialogs{})

	rt.mu.Lock()
	trigger := rt.listeners[transport.EventEmergencyTrigger]
	rt.mu.Unlock()
	if trigger == nil {
		t.Fatal("Expected emergency listener registered")
	}

	trigger("shortcut")

	if app.GetStats().EmergencyAlerts != 1 {
		t.Errorf("Expected one emergency alert, got %+v", app.GetStats())
	}
	if rt.count(notify.EventEmergencyAccess) != 1 {
		t.Error("Expected emergencyAccess forwarded to the frontend")
	}
}

func TestApp_ToolbarLanguageProfilesUsage(t *testing.T) {
	app, _ := startTestApp(t, &fakeDialogs{})

	prefs, err := app.IncreaseFontSize()
	if err != nil || prefs.FontSize != 18 {
		t.Errorf("Expected 18px, got %d (%v)", prefs.FontSize, err)
	}

	code, err := app.SetLanguage("hi-IN")
	if err != nil || code != "hi" {
		t.Errorf("Expected hi, got %q (%v)", code, err)
	}

	settings, err := app.ApplyProfile("motor-impairment")
	if err != nil || settings.Motor.ClickAssistance != models.ClickAssistDwell {
		t.Errorf("Expected dwell click assistance, got %s (%v)", settings.Motor.ClickAssistance, err)
	}

	stamp, err := app.MarkFeatureUsed("magnifier")
	if err != nil {
		t.Fatalf("MarkFeatureUsed failed: %v", err)
	}
	last, err := app.GetFeatureLastUsed("magnifier")
	if err != nil || last != stamp {
		t.Errorf("Expected %s, got %s (%v)", stamp, last, err)
	}
	if never, _ := app.GetFeatureLastUsed("unused"); never != "" {
		t.Errorf("Expected empty stamp for unused feature, got %q", never)
	}
}

func TestApp_StartupWithDatabase(t *testing.T) {
	db, err := database.Initialize(filepath.Join(t.TempDir(), "accessiai.db"))
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	rt := &fakeRuntime{}
	app := NewApp()
	app.start(context.Background(), &config.Config{StorageBackend: config.BackendSQLite}, db, runtimeHooks{
		emit: rt.emit, on: rt.on, dialogs: &fakeDialogs{},
	})
	defer app.OnShutdown(context.Background())

	if status := app.GetAppStatus(); status["storage_backend"] != config.BackendSQLite {
		t.Errorf("Expected sqlite backend, got %v", status["storage_backend"])
	}
}
