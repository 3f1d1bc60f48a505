package transport

import (
	"context"
	"log/slog"
	"sync"

	"accessiai/internal/notify"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// EventEmergencyTrigger is sent by the frontend when the user invokes
// emergency access. Its optional argument names the source.
const EventEmergencyTrigger = "emergency:trigger"

const defaultEmergencySource = "frontend"

// TriggerFunc raises an emergency alert for source.
type TriggerFunc func(source string)

// Bridge forwards notifier events to the frontend under the same names and
// routes frontend requests back into the services.
type Bridge struct {
	ctx    context.Context
	emit   EmitFunc
	on     OnFunc
	logger *slog.Logger

	scope   *notify.Scope
	trigger TriggerFunc

	mu      sync.Mutex
	cancels []func()
	started bool
}

func NewBridge(ctx context.Context, n *notify.Notifier, trigger TriggerFunc, emit EmitFunc, on OnFunc, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{
		ctx:     ctx,
		emit:    emit,
		on:      on,
		logger:  logger,
		scope:   notify.NewScope(n),
		trigger: trigger,
	}
}

// NewWailsBridge uses the Wails runtime bound to ctx.
func NewWailsBridge(ctx context.Context, n *notify.Notifier, trigger TriggerFunc, logger *slog.Logger) *Bridge {
	return NewBridge(ctx, n, trigger, wailsruntime.EventsEmit, wailsruntime.EventsOn, logger)
}

// Start subscribes to every application event and listens for frontend
// requests. Calling it again has no effect.
func (b *Bridge) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started {
		return
	}
	b.started = true

	for _, name := range notify.Names() {
		b.scope.Subscribe(name, b.forward)
	}

	if b.on != nil && b.trigger != nil {
		cancel := b.on(b.ctx, EventEmergencyTrigger, func(data ...interface{}) {
			source := defaultEmergencySource
			if len(data) > 0 {
				if s, ok := data[0].(string); ok && s != "" {
					source = s
				}
			}
			b.trigger(source)
		})
		if cancel != nil {
			b.cancels = append(b.cancels, cancel)
		}
	}
}

func (b *Bridge) forward(e notify.Event) {
	if b.emit == nil {
		return
	}
	b.emit(b.ctx, e.Name, e.Payload)
}

// Subscriptions returns how many notifier subscriptions the bridge holds.
func (b *Bridge) Subscriptions() int {
	return b.scope.Len()
}

// Close releases every subscription and frontend listener.
func (b *Bridge) Close() {
	b.scope.Close()

	b.mu.Lock()
	cancels := b.cancels
	b.cancels = nil
	b.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}
