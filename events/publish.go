package events

import (
	"context"
	"sync"
)

// Publisher appends events to a single stream, tracking the stream
// version across publishes.
type Publisher struct {
	mu       sync.Mutex
	store    Store
	streamID string
	version  int
	primed   bool
}

// NewPublisher creates a publisher for a stream. The stream's current
// version is read lazily on first publish.
func NewPublisher(store Store, streamID string) *Publisher {
	return &Publisher{
		store:    store,
		streamID: streamID,
		version:  -1,
	}
}

// Publish appends one event to the stream.
func (p *Publisher) Publish(ctx context.Context, eventType string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.primed {
		version, err := p.store.StreamVersion(ctx, p.streamID)
		if err != nil {
			return err
		}
		p.version = version
		p.primed = true
	}

	e, err := New(p.streamID, eventType, payload)
	if err != nil {
		return err
	}

	version, err := p.store.Append(ctx, p.streamID, p.version, []*Event{e})
	if err != nil {
		return err
	}
	p.version = version
	return nil
}
