package midi

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePorts struct {
	mu    sync.Mutex
	names []string
}

func (f *fakePorts) set(names ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.names = names
}

func (f *fakePorts) list() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.names...)
}

func next(t *testing.T, w *PortWatcher) PortEvent {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev
	case <-time.After(2 * time.Second):
		require.FailNow(t, "no port event")
	}
	return PortEvent{}
}

func TestPortWatcherReportsHotPlug(t *testing.T) {
	ports := &fakePorts{}
	ports.set("Synth A")
	w := NewPortWatcher(WithPortLister(ports.list), WithPollRate(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	go w.Run(ctx)

	assert.Equal(t, PortEvent{Type: PortConnected, Name: "Synth A"}, next(t, w))

	ports.set("Synth A", "Synth B")
	assert.Equal(t, PortEvent{Type: PortConnected, Name: "Synth B"}, next(t, w))

	ports.set("Synth B")
	assert.Equal(t, PortEvent{Type: PortDisconnected, Name: "Synth A"}, next(t, w))
	assert.Equal(t, []string{"Synth B"}, w.Ports())

	cancel()
	require.Eventually(t, func() bool {
		_, open := <-w.Events()
		return !open
	}, time.Second, 5*time.Millisecond)
}
