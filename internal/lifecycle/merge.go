package lifecycle

import "sync"

// Merge funnels any number of concurrent producers into a single ordered
// Event stream with one consumer. Publish order is delivery order: the
// channel send under the mutex serializes producers, so relative arrival
// order across the four OS notification channels is preserved with no
// per-channel priority.
type Merge struct {
	mu     sync.Mutex
	events chan Event
	stop   chan struct{}
	once   sync.Once
	closed bool
}

// NewMerge creates a merged source. buffer bounds how far producers can run
// ahead of the dispatcher; <= 0 falls back to a sensible default.
func NewMerge(buffer int) *Merge {
	if buffer <= 0 {
		buffer = 64
	}
	return &Merge{events: make(chan Event, buffer), stop: make(chan struct{})}
}

// Publish enqueues one event. Publishing after Close is a silent no-op so
// platform adapters do not race teardown. A publisher parked on a full
// buffer is released by Close via the stop channel, so teardown can never
// wait on the consumer.
func (m *Merge) Publish(kind Kind, pid int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	select {
	case m.events <- Event{Kind: kind, PID: pid}:
	case <-m.stop:
	}
}

func (m *Merge) Events() <-chan Event { return m.events }

// Close stops delivery. Idempotent. The stop channel is closed before the
// mutex is taken so any publisher blocked inside Publish unparks and
// releases the lock first; the events channel itself is only closed under
// the mutex, after which no send can race it.
func (m *Merge) Close() error {
	m.once.Do(func() { close(m.stop) })
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.events)
	}
	return nil
}
