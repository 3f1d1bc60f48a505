package transport

import "context"

// DialogHandler opens the native file dialogs used by import and export.
// An empty path with a nil error means the user cancelled.
type DialogHandler interface {
	ChooseExportPath() (string, error)
	ChooseImportPath() (string, error)
}

// EmitFunc matches wailsruntime.EventsEmit.
type EmitFunc func(ctx context.Context, eventName string, optionalData ...interface{})

// OnFunc matches wailsruntime.EventsOn.
type OnFunc func(ctx context.Context, eventName string, callback func(optionalData ...interface{})) func()
