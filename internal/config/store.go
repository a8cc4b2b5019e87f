package config

import (
	"sync"
	"sync/atomic"
	"time"
)

// Observer is called after the live configuration changes.
type Observer func(old, updated Config)

// Store holds the live configuration. Reads are lock-free.
type Store struct {
	current atomic.Pointer[Config]

	mu        sync.Mutex
	nextID    uint64
	observers map[uint64]Observer
}

// NewStore creates a store holding cfg.
func NewStore(cfg Config) *Store {
	s := &Store{observers: make(map[uint64]Observer)}
	s.current.Store(&cfg)
	return s
}

// Get returns the current configuration.
func (s *Store) Get() Config {
	return *s.current.Load()
}

// Set replaces the configuration and notifies observers synchronously.
func (s *Store) Set(cfg Config) {
	old := s.current.Swap(&cfg)

	s.mu.Lock()
	observers := make([]Observer, 0, len(s.observers))
	for _, o := range s.observers {
		observers = append(observers, o)
	}
	s.mu.Unlock()

	for _, o := range observers {
		o(*old, cfg)
	}
}

// OnChange registers o and returns a function that removes it.
func (s *Store) OnChange(o Observer) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.observers[id] = o
	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// DoubleClickInterval returns the current double-click interval. It reads
// the live value on every call.
func (s *Store) DoubleClickInterval() time.Duration {
	return s.current.Load().DoubleClickInterval()
}
