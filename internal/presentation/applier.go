package presentation

import (
	"context"
	"log/slog"
	"sync"

	"accessiai/internal/models"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// Frontend event names.
const (
	EventApply    = "presentation:apply"
	EventAnnounce = "presentation:announce"
)

// Applier pushes settings onto the live environment.
type Applier interface {
	Apply(settings models.Settings)
}

// EmitFunc matches wailsruntime.EventsEmit.
type EmitFunc func(ctx context.Context, eventName string, optionalData ...interface{})

// EventApplier projects settings and sends the projection to the frontend
// as an event. Applying the same settings twice emits the same projection.
type EventApplier struct {
	ctx    context.Context
	emit   EmitFunc
	logger *slog.Logger

	mu      sync.Mutex
	last    Projection
	applied bool
}

func NewEventApplier(ctx context.Context, emit EmitFunc, logger *slog.Logger) *EventApplier {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventApplier{ctx: ctx, emit: emit, logger: logger}
}

// NewWailsApplier emits through the Wails runtime bound to ctx.
func NewWailsApplier(ctx context.Context, logger *slog.Logger) *EventApplier {
	return NewEventApplier(ctx, wailsruntime.EventsEmit, logger)
}

func (a *EventApplier) Apply(settings models.Settings) {
	p := Project(settings)

	a.mu.Lock()
	a.last = p
	a.applied = true
	a.mu.Unlock()

	a.send(EventApply, p)
}

// ApplyVisual updates only font size and contrast on top of the last
// applied projection (or the defaults if nothing was applied yet).
func (a *EventApplier) ApplyVisual(fontSize int, contrast models.ContrastMode) {
	a.mu.Lock()
	base := a.last
	if !a.applied {
		base = Project(models.Defaults())
	}
	p := base.WithVisual(fontSize, contrast)
	a.last = p
	a.applied = true
	a.mu.Unlock()

	a.send(EventApply, p)
}

// Announce asks the frontend to speak message.
func (a *EventApplier) Announce(message string) {
	a.send(EventAnnounce, message)
}

// Current returns the last applied projection.
func (a *EventApplier) Current() (Projection, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last, a.applied
}

func (a *EventApplier) send(name string, data any) {
	if a.emit == nil || a.ctx == nil {
		return
	}
	a.logger.Debug("Emitting presentation event", "event", name)
	a.emit(a.ctx, name, data)
}
