// Package notify provides named-event publish/subscribe between the
// components of the application.
//
// A Notifier is an ordinary value owned by whoever constructs it; there is
// no package-level bus. Handlers subscribe to one event name (or to every
// event) and receive each later Publish of that name at most once. Nothing
// is buffered for late subscribers.
package notify

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
)

// Event is a single published notification.
type Event struct {
	// Name identifies the kind of event, for example "languageChange".
	Name string

	// Payload is the event detail. Its type depends on Name.
	Payload any

	// Time is when Publish was called.
	Time time.Time
}

// Handler receives published events.
type Handler func(Event)

type entry struct {
	id      uint64
	name    string // empty for wildcard subscriptions
	handler Handler
	active  atomic.Bool
}

// Subscription is the token returned by Subscribe.
type Subscription struct {
	entry    *entry
	notifier *Notifier
	once     sync.Once
}

// Unsubscribe removes the subscription. It is safe to call more than once.
// After it returns the handler is not invoked by any publish that starts
// afterwards, and a publish in progress skips it if it has not reached it.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.notifier == nil {
		return
	}
	s.once.Do(func() {
		s.entry.active.Store(false)
		s.notifier.unsubscribe(s.entry)
	})
}

// Active reports whether the subscription still receives events.
func (s *Subscription) Active() bool {
	return s != nil && s.entry != nil && s.entry.active.Load()
}

// Notifier fans published events out to subscribers.
type Notifier struct {
	mu sync.RWMutex

	// Subscribers by event name, each slice in subscription order.
	named map[string][]*entry

	// Subscribers that receive every event.
	wildcard []*entry

	nextID uint64
	closed bool

	logger *slog.Logger

	// Worker pool for asynchronous delivery; nil means synchronous.
	pool    *ants.Pool
	workers int
	pending inflight
}

// inflight counts deliveries that have been scheduled but not finished.
// Unlike sync.WaitGroup it tolerates Add racing with Wait.
type inflight struct {
	mu   sync.Mutex
	cond *sync.Cond
	n    int
}

func (f *inflight) Add(k int) {
	f.mu.Lock()
	f.n += k
	f.mu.Unlock()
}

func (f *inflight) Done() {
	f.mu.Lock()
	f.n--
	if f.n <= 0 && f.cond != nil {
		f.cond.Broadcast()
	}
	f.mu.Unlock()
}

func (f *inflight) Wait() {
	f.mu.Lock()
	if f.cond == nil {
		f.cond = sync.NewCond(&f.mu)
	}
	for f.n > 0 {
		f.cond.Wait()
	}
	f.mu.Unlock()
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithWorkers delivers events on a pool of n goroutines instead of on the
// publishing goroutine. Delivery order across handlers is then not
// guaranteed. n <= 0 keeps synchronous delivery.
func WithWorkers(n int) Option {
	return func(nt *Notifier) {
		nt.workers = n
	}
}

// WithLogger sets the logger used to report handler panics.
func WithLogger(logger *slog.Logger) Option {
	return func(nt *Notifier) {
		if logger != nil {
			nt.logger = logger
		}
	}
}

// New creates a Notifier.
func New(opts ...Option) (*Notifier, error) {
	n := &Notifier{
		named:  make(map[string][]*entry),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(n)
	}

	if n.workers > 0 {
		pool, err := ants.NewPool(n.workers, ants.WithPanicHandler(func(p any) {
			n.logger.Error("Event handler panicked", "panic", p)
		}))
		if err != nil {
			return nil, err
		}
		n.pool = pool
	}

	return n, nil
}

// Subscribe registers handler for events called name.
func (n *Notifier) Subscribe(name string, handler Handler) *Subscription {
	return n.add(name, handler)
}

// SubscribeAll registers handler for every event.
func (n *Notifier) SubscribeAll(handler Handler) *Subscription {
	return n.add("", handler)
}

func (n *Notifier) add(name string, handler Handler) *Subscription {
	e := &entry{name: name, handler: handler}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed || handler == nil {
		return &Subscription{entry: e}
	}

	n.nextID++
	e.id = n.nextID
	e.active.Store(true)
	if name == "" {
		n.wildcard = append(n.wildcard, e)
	} else {
		n.named[name] = append(n.named[name], e)
	}

	return &Subscription{entry: e, notifier: n}
}

func (n *Notifier) unsubscribe(e *entry) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if e.name == "" {
		n.wildcard = remove(n.wildcard, e)
		return
	}
	list := remove(n.named[e.name], e)
	if len(list) == 0 {
		delete(n.named, e.name)
	} else {
		n.named[e.name] = list
	}
}

func remove(list []*entry, e *entry) []*entry {
	for i, cur := range list {
		if cur == e {
			out := make([]*entry, 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...)
		}
	}
	return list
}

// Publish delivers an event to the current subscribers of name and to
// wildcard subscribers. Named subscribers run first, each group in
// subscription order. Publishing on a closed Notifier does nothing.
func (n *Notifier) Publish(name string, payload any) {
	ev := Event{Name: name, Payload: payload, Time: time.Now()}

	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	targets := make([]*entry, 0, len(n.named[name])+len(n.wildcard))
	targets = append(targets, n.named[name]...)
	targets = append(targets, n.wildcard...)
	if n.pool != nil {
		n.pending.Add(len(targets))
	}
	n.mu.RUnlock()

	for _, e := range targets {
		if n.pool == nil {
			n.deliver(e, ev)
			continue
		}
		e := e
		err := n.pool.Submit(func() {
			defer n.pending.Done()
			n.deliver(e, ev)
		})
		if err != nil {
			n.logger.Warn("Dropping event delivery", "event", name, "error", err)
			n.pending.Done()
		}
	}
}

func (n *Notifier) deliver(e *entry, ev Event) {
	if !e.active.Load() {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("Event handler panicked", "event", ev.Name, "panic", r)
		}
	}()
	e.handler(ev)
}

// Flush blocks until every delivery scheduled so far has finished. With
// synchronous delivery that is already true when Publish returns.
func (n *Notifier) Flush() {
	n.pending.Wait()
}

// SubscriberCount returns the number of active subscribers for name,
// excluding wildcard subscribers.
func (n *Notifier) SubscriberCount(name string) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.named[name])
}

// Close drops every subscription, waits for in-flight deliveries and
// stops the worker pool. Close is idempotent. With WithWorkers it must not
// be called from inside a handler.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	for _, list := range n.named {
		for _, e := range list {
			e.active.Store(false)
		}
	}
	for _, e := range n.wildcard {
		e.active.Store(false)
	}
	n.named = make(map[string][]*entry)
	n.wildcard = nil
	n.mu.Unlock()

	n.pending.Wait()
	if n.pool != nil {
		n.pool.Release()
	}
}

// Closed reports whether Close has been called.
func (n *Notifier) Closed() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.closed
}
