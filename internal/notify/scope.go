package notify

import "sync"

// Scope groups the subscriptions of one view or component so they can be
// released together when it goes away.
//
//	scope := notify.NewScope(n)
//	defer scope.Close()
//	scope.Subscribe(EventLanguageChange, onLanguage)
type Scope struct {
	notifier *Notifier

	mu     sync.Mutex
	subs   []*Subscription
	closed bool
}

// NewScope creates a scope bound to n.
func NewScope(n *Notifier) *Scope {
	return &Scope{notifier: n}
}

// Subscribe subscribes handler to name for the lifetime of the scope.
// Subscribing on a closed scope returns an inactive subscription.
func (s *Scope) Subscribe(name string, handler Handler) *Subscription {
	return s.track(func() *Subscription { return s.notifier.Subscribe(name, handler) })
}

// SubscribeAll subscribes handler to every event for the lifetime of the scope.
func (s *Scope) SubscribeAll(handler Handler) *Subscription {
	return s.track(func() *Subscription { return s.notifier.SubscribeAll(handler) })
}

func (s *Scope) track(subscribe func() *Subscription) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return &Subscription{entry: &entry{}}
	}
	sub := subscribe()
	s.subs = append(s.subs, sub)
	return sub
}

// Len returns the number of subscriptions held by the scope.
func (s *Scope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Close unsubscribes everything acquired through the scope. It is
// idempotent.
func (s *Scope) Close() {
	s.mu.Lock()
	subs := s.subs
	s.subs = nil
	s.closed = true
	s.mu.Unlock()

	for _, sub := range subs {
		sub.Unsubscribe()
	}
}
