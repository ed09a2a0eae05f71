package config

import (
	"sync"
	"time"

	"github.com/bep/debounce"

	"go-pianoroll/debug"
)

// DefaultSaveDelay coalesces bursts of tempo/zoom tweaks into one write
const DefaultSaveDelay = 500 * time.Millisecond

// Saver writes config snapshots to disk, debounced
type Saver struct {
	path     string
	debounce func(func())

	mu      sync.Mutex
	pending *Config
	lastErr error
}

// NewSaver creates a saver for path (ConfigPath when empty)
func NewSaver(path string, delay time.Duration) (*Saver, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &Saver{
		path:     path,
		debounce: debounce.New(delay),
	}, nil
}

func (s *Saver) Path() string {
	return s.path
}

// Save schedules a write of a copy of cfg
func (s *Saver) Save(cfg Config) {
	s.mu.Lock()
	s.pending = &cfg
	s.mu.Unlock()
	s.debounce(func() { s.Flush() })
}

// Flush writes the pending snapshot now, if any
func (s *Saver) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return s.lastErr
	}
	cfg := s.pending
	s.pending = nil

	s.lastErr = cfg.SaveTo(s.path)
	if s.lastErr != nil {
		debug.Log("config", "save failed: %v", s.lastErr)
	} else {
		debug.Log("config", "saved %s", s.path)
	}
	return s.lastErr
}

// Err is the result of the most recent write
func (s *Saver) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
