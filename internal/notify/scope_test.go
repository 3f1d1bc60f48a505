package notify

import "testing"

func TestScope_CloseReleasesAll(t *testing.T) {
	n := newNotifier(t)
	scope := NewScope(n)

	var count int
	scope.Subscribe(EventLanguageChange, func(Event) { count++ })
	scope.Subscribe(EventEmergencyAccess, func(Event) { count++ })
	scope.SubscribeAll(func(Event) { count++ })

	if scope.Len() != 3 {
		t.Errorf("Expected 3 tracked subscriptions, got %d", scope.Len())
	}

	scope.Close()
	n.Publish(EventLanguageChange, nil)
	n.Publish(EventEmergencyAccess, nil)

	if count != 0 {
		t.Errorf("Expected no deliveries after scope close, got %d", count)
	}
	if n.SubscriberCount(EventLanguageChange) != 0 {
		t.Error("Expected scope close to remove subscribers from the notifier")
	}
}

func TestScope_LeavesOtherSubscribers(t *testing.T) {
	n := newNotifier(t)
	scope := NewScope(n)

	var outside int
	n.Subscribe(EventLanguageChange, func(Event) { outside++ })
	scope.Subscribe(EventLanguageChange, func(Event) {})

	scope.Close()
	n.Publish(EventLanguageChange, nil)

	if outside != 1 {
		t.Errorf("Expected subscriber outside scope to still receive, got %d", outside)
	}
}

func TestScope_SubscribeAfterClose(t *testing.T) {
	n := newNotifier(t)
	scope := NewScope(n)
	scope.Close()
	scope.Close()

	var called bool
	sub := scope.Subscribe(EventLanguageChange, func(Event) { called = true })
	n.Publish(EventLanguageChange, nil)

	if called || sub.Active() {
		t.Error("Expected subscription on a closed scope to be inert")
	}
}
