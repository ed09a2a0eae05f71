package midi

import (
	"context"
	"sync"
	"time"

	"go-pianoroll/debug"
)

// PortEvent is emitted when an output port appears or goes away
type PortEvent struct {
	Type PortEventType
	Name string
}

type PortEventType int

const (
	PortConnected PortEventType = iota
	PortDisconnected
)

func (t PortEventType) String() string {
	if t == PortDisconnected {
		return "disconnected"
	}
	return "connected"
}

// PortWatcher polls the output ports and reports hot-plug changes
type PortWatcher struct {
	list     func() []string
	pollRate time.Duration

	mu     sync.RWMutex
	known  map[string]bool
	events chan PortEvent
}

// WatcherOption configures a PortWatcher
type WatcherOption func(*PortWatcher)

// WithPortLister replaces the gomidi port scan
func WithPortLister(list func() []string) WatcherOption {
	return func(w *PortWatcher) {
		w.list = list
	}
}

func WithPollRate(d time.Duration) WatcherOption {
	return func(w *PortWatcher) {
		w.pollRate = d
	}
}

// NewPortWatcher creates a watcher polling once a second
func NewPortWatcher(opts ...WatcherOption) *PortWatcher {
	w := &PortWatcher{
		list:     OutPortNames,
		pollRate: time.Second,
		known:    make(map[string]bool),
		events:   make(chan PortEvent, 16),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Events returns the connect/disconnect stream. It closes when Run returns.
func (w *PortWatcher) Events() <-chan PortEvent {
	return w.events
}

// Ports returns the ports seen by the last scan
func (w *PortWatcher) Ports() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	names := make([]string, 0, len(w.known))
	for name := range w.known {
		names = append(names, name)
	}
	return names
}

// Run polls until ctx is done (blocking - run in goroutine)
func (w *PortWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.pollRate)
	defer ticker.Stop()
	defer close(w.events)

	// Initial scan
	w.scan(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

func (w *PortWatcher) scan(ctx context.Context) {
	names := w.list()
	if names == nil {
		// scan hung or no driver; keep the last known state
		return
	}

	seen := make(map[string]bool, len(names))
	for _, name := range names {
		seen[name] = true
	}

	var changes []PortEvent
	w.mu.Lock()
	for name := range seen {
		if !w.known[name] {
			changes = append(changes, PortEvent{Type: PortConnected, Name: name})
		}
	}
	for name := range w.known {
		if !seen[name] {
			changes = append(changes, PortEvent{Type: PortDisconnected, Name: name})
		}
	}
	w.known = seen
	w.mu.Unlock()

	for _, ev := range changes {
		debug.Log("midi", "port %s: %s", ev.Type, ev.Name)
		select {
		case w.events <- ev:
		case <-ctx.Done():
			return
		}
	}
}
