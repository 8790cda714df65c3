package events

import (
	"context"
	"fmt"
	"sync"
)

// Filter selects events when reading across streams.
type Filter struct {
	// StreamID limits results to a single stream. Empty matches all.
	StreamID string

	// Types limits results to the given event types. Empty matches all.
	Types []string
}

func (f Filter) matches(e *Event) bool {
	if f.StreamID != "" && e.StreamID != f.StreamID {
		return false
	}
	if len(f.Types) > 0 {
		found := false
		for _, t := range f.Types {
			if e.Type == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Store persists event streams with optimistic concurrency control.
type Store interface {
	// Append adds events to a stream. expectedVersion is the version of
	// the last event already in the stream (-1 for a new stream). Returns
	// the version of the last appended event, or ErrConcurrencyConflict
	// if the stream has moved past expectedVersion.
	Append(ctx context.Context, streamID string, expectedVersion int, events []*Event) (int, error)

	// Read returns events in a stream starting at fromVersion, in order.
	Read(ctx context.Context, streamID string, fromVersion int) ([]*Event, error)

	// ReadAll returns events across streams matching the filter, ordered
	// by append time.
	ReadAll(ctx context.Context, filter Filter) ([]*Event, error)

	// StreamVersion returns the version of the last event in a stream,
	// or -1 if the stream does not exist.
	StreamVersion(ctx context.Context, streamID string) (int, error)

	// DeleteStream removes a stream and all its events. Deleting a
	// stream that does not exist returns ErrStreamNotFound.
	DeleteStream(ctx context.Context, streamID string) error

	// Close releases store resources.
	Close() error
}

// MemoryStore is an in-memory Store, suitable for tests and replay
// scratch space.
type MemoryStore struct {
	mu      sync.RWMutex
	streams map[string][]*Event
	order   []*Event // global append order for ReadAll
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		streams: make(map[string][]*Event),
	}
}

// Append implements Store.
func (s *MemoryStore) Append(ctx context.Context, streamID string, expectedVersion int, events []*Event) (int, error) {
	if len(events) == 0 {
		return expectedVersion, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stream := s.streams[streamID]
	current := len(stream) - 1
	if current != expectedVersion {
		return 0, ErrConcurrencyConflict
	}

	version := current
	for _, e := range events {
		version++
		e.StreamID = streamID
		e.Version = version
		stream = append(stream, e)
		s.order = append(s.order, e)
	}
	s.streams[streamID] = stream

	return version, nil
}

// Read implements Store.
func (s *MemoryStore) Read(ctx context.Context, streamID string, fromVersion int) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stream := s.streams[streamID]
	var out []*Event
	for _, e := range stream {
		if e.Version >= fromVersion {
			out = append(out, e)
		}
	}
	return out, nil
}

// ReadAll implements Store.
func (s *MemoryStore) ReadAll(ctx context.Context, filter Filter) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Event
	for _, e := range s.order {
		if filter.matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// StreamVersion implements Store.
func (s *MemoryStore) StreamVersion(ctx context.Context, streamID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.streams[streamID]) - 1, nil
}

// DeleteStream implements Store.
func (s *MemoryStore) DeleteStream(ctx context.Context, streamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.streams[streamID]; !ok {
		return fmt.Errorf("delete stream %s: %w", streamID, ErrStreamNotFound)
	}
	delete(s.streams, streamID)

	kept := s.order[:0]
	for _, e := range s.order {
		if e.StreamID != streamID {
			kept = append(kept, e)
		}
	}
	s.order = kept
	return nil
}

// Close implements Store. It is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
