// Package lifecycle provides one-shot readiness signals with queued callbacks.
//
// A Broadcaster tracks two independent signals: Ready (the document's
// structural tree has been parsed) and Load (all subordinate resources have
// been fetched). Callbacks registered before a signal fires are queued and run
// in registration order when it does; callbacks registered after it fires run
// immediately, synchronously, on the calling goroutine. Signals never reset.
package lifecycle

import "sync"

// signal is a one-shot flag plus the callbacks waiting on it.
type signal struct {
	fired bool
	queue []func()
}

// subscribe either runs fn immediately (signal already fired) or enqueues it.
// Returns the callback to invoke outside the lock, or nil if it was enqueued.
func (s *signal) subscribe(fn func()) func() {
	if s.fired {
		return fn
	}
	s.queue = append(s.queue, fn)
	return nil
}

// fire transitions the signal to its terminal state and hands back the
// pending queue. Subsequent calls return nil.
func (s *signal) fire() []func() {
	if s.fired {
		return nil
	}
	s.fired = true
	q := s.queue
	s.queue = nil
	return q
}

// Broadcaster multiplexes the two readiness signals of a single document.
// The zero value is not usable; construct with New.
type Broadcaster struct {
	mu    sync.Mutex
	ready signal
	load  signal
}

// New creates a Broadcaster with both signals pending.
func New() *Broadcaster {
	return &Broadcaster{}
}

// OnReady runs fn once the structural tree is parsed. If that already
// happened, fn runs synchronously before OnReady returns.
func (b *Broadcaster) OnReady(fn func()) {
	b.on(&b.ready, fn)
}

// OnLoad runs fn once all subordinate resources are fetched. If that already
// happened, fn runs synchronously before OnLoad returns.
func (b *Broadcaster) OnLoad(fn func()) {
	b.on(&b.load, fn)
}

func (b *Broadcaster) on(s *signal, fn func()) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	immediate := s.subscribe(fn)
	b.mu.Unlock()
	if immediate != nil {
		immediate()
	}
}

// NotifyReady fires the ready signal, draining its queue in registration
// order. Only the first call has any effect.
func (b *Broadcaster) NotifyReady() {
	b.notify(&b.ready)
}

// NotifyLoad fires the load signal, draining its queue in registration
// order. Only the first call has any effect.
func (b *Broadcaster) NotifyLoad() {
	b.notify(&b.load)
}

func (b *Broadcaster) notify(s *signal) {
	b.mu.Lock()
	q := s.fire()
	b.mu.Unlock()
	for _, fn := range q {
		fn()
	}
}

// ReadyFired reports whether the ready signal has fired.
func (b *Broadcaster) ReadyFired() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ready.fired
}

// LoadFired reports whether the load signal has fired.
func (b *Broadcaster) LoadFired() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.load.fired
}
