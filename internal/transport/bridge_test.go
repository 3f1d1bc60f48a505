package transport

import (
	"context"
	"sync"
	"testing"

	"accessiai/internal/notify"
)

type fakeFrontend struct {
	mu        sync.Mutex
	emitted   []string
	payloads  []interface{}
	listeners map[string]func(optionalData ...interface{})
	cancelled int
}

func newFakeFrontend() *fakeFrontend {
	return &fakeFrontend{listeners: map[string]func(optionalData ...interface{}){}}
}

func (f *fakeFrontend) emit(ctx context.Context, eventName string, optionalData ...interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emitted = append(f.emitted, eventName)
	if len(optionalData) > 0 {
		f.payloads = append(f.payloads, optionalData[0])
	}
}

func (f *fakeFrontend) on(ctx context.Context, eventName string, callback func(optionalData ...interface{})) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listeners[eventName] = callback
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.listeners, eventName)
		f.cancelled++
	}
}

func (f *fakeFrontend) send(eventName string, data ...interface{}) {
	f.mu.Lock()
	cb := f.listeners[eventName]
	f.mu.Unlock()
	if cb != nil {
		cb(data...)
	}
}

func newTestNotifier(t *testing.T) *notify.Notifier {
	t.Helper()
	n, err := notify.New()
	if err != nil {
		t.Fatalf("Failed to create notifier: %v", err)
	}
	t.Cleanup(n.Close)
	return n
}

func TestBridge_ForwardsEvents(t *testing.T) {
	n := newTestNotifier(t)
	fe := newFakeFrontend()
	bridge := NewBridge(context.Background(), n, nil, fe.emit, fe.on, nil)
	bridge.Start()
	defer bridge.Close()

	n.Publish(notify.EventLanguageChange, notify.LanguageChange{Language: "hi"})

	if len(fe.emitted) != 1 || fe.emitted[0] != notify.EventLanguageChange {
		t.Fatalf("Expected languageChange forwarded, got %v", fe.emitted)
	}
	if payload, ok := fe.payloads[0].(notify.LanguageChange); !ok || payload.Language != "hi" {
		t.Errorf("Expected payload forwarded unchanged, got %#v", fe.payloads[0])
	}
	if bridge.Subscriptions() != len(notify.Names()) {
		t.Errorf("Expected one subscription per event, got %d", bridge.Subscriptions())
	}
}

func TestBridge_StartTwice(t *testing.T) {
	n := newTestNotifier(t)
	fe := newFakeFrontend()
	bridge := NewBridge(context.Background(), n, nil, fe.emit, fe.on, nil)
	bridge.Start()
	bridge.Start()
	defer bridge.Close()

	n.Publish(notify.EventSettingsSaved, nil)

	if len(fe.emitted) != 1 {
		t.Errorf("Expected a single forward, got %d", len(fe.emitted))
	}
}

func TestBridge_EmergencyTrigger(t *testing.T) {
	n := newTestNotifier(t)
	fe := newFakeFrontend()

	var sources []string
	trigger := func(source string) { sources = append(sources, source) }

	bridge := NewBridge(context.Background(), n, trigger, fe.emit, fe.on, nil)
	bridge.Start()

	fe.send(EventEmergencyTrigger, "shortcut")
	fe.send(EventEmergencyTrigger)
	fe.send(EventEmergencyTrigger, 42)

	expected := []string{"shortcut", "frontend", "frontend"}
	if len(sources) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, sources)
	}
	for i := range expected {
		if sources[i] != expected[i] {
			t.Errorf("Expected %v, got %v", expected, sources)
		}
	}

	bridge.Close()
	if fe.cancelled != 1 {
		t.Errorf("Expected frontend listener cancelled, got %d", fe.cancelled)
	}
}

func TestBridge_CloseStopsForwarding(t *testing.T) {
	n := newTestNotifier(t)
	fe := newFakeFrontend()
	bridge := NewBridge(context.Background(), n, nil, fe.emit, fe.on, nil)
	bridge.Start()

	bridge.Close()
	bridge.Close()
	n.Publish(notify.EventSettingsReset, nil)

	if len(fe.emitted) != 0 {
		t.Errorf("Expected nothing forwarded after Close, got %v", fe.emitted)
	}
	if n.SubscriberCount(notify.EventSettingsReset) != 0 {
		t.Error("Expected bridge subscriptions released")
	}
}
