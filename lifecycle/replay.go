package lifecycle

import (
	"context"
	"fmt"

	"github.com/pflow-xyz/go-mintgate/events"
	"github.com/pflow-xyz/go-mintgate/token"
)

// Replay rebuilds a manager from an event stream. The configured sink
// is attached only after the stream has been applied, so replay itself
// never re-publishes.
func Replay(ctx context.Context, store events.Store, streamID string, cfg Config) (*Manager, error) {
	sink := cfg.Sink
	cfg.Sink = nil

	m, err := New(cfg)
	if err != nil {
		return nil, err
	}

	evs, err := store.Read(ctx, streamID, 0)
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", streamID, err)
	}

	for _, e := range evs {
		if err := m.apply(e); err != nil {
			return nil, fmt.Errorf("replay %s at version %d: %w", streamID, e.Version, err)
		}
	}

	m.sink = sink
	return m, nil
}

// apply folds one recorded event into manager state, bypassing the
// precondition checks that guarded the original call. The transition
// table still applies: a stream that moves a token out of its terminal
// state is corrupt.
func (m *Manager) apply(e *events.Event) error {
	switch e.Type {
	case events.TypeTokenMinted:
		var p events.TokenMinted
		if err := e.Decode(&p); err != nil {
			return err
		}
		if !canTransition(m.TokenState(p.TokenID), StateMinted) {
			return fmt.Errorf("token %d: mint from state %s", p.TokenID, m.TokenState(p.TokenID))
		}
		if err := m.ledger.CreateToken(token.Address(p.To), p.TokenID); err != nil {
			return err
		}
		m.mu.Lock()
		m.uris[p.TokenID] = p.URI
		m.usedURIs[p.URI] = true
		if p.TokenID >= m.counter {
			m.counter = p.TokenID + 1
		}
		m.mu.Unlock()

	case events.TypeTokenBurned:
		var p events.TokenBurned
		if err := e.Decode(&p); err != nil {
			return err
		}
		if !canTransition(m.TokenState(p.TokenID), StateBurned) {
			return fmt.Errorf("token %d: burn from state %s", p.TokenID, m.TokenState(p.TokenID))
		}
		if err := m.ledger.DestroyToken(p.TokenID); err != nil {
			return err
		}
		m.mu.Lock()
		delete(m.uris, p.TokenID)
		m.mu.Unlock()

	case events.TypeMetadataFrozen:
		var p events.MetadataFrozen
		if err := e.Decode(&p); err != nil {
			return err
		}
		// Freeze is idempotent on a live token; anything else is corrupt.
		if st := m.TokenState(p.TokenID); st != StateMinted && st != StateFrozen {
			return fmt.Errorf("token %d: freeze from state %s", p.TokenID, st)
		}
		m.mu.Lock()
		m.frozen[p.TokenID] = true
		m.mu.Unlock()

	case events.TypeTokenURIUpdated:
		var p events.TokenURIUpdated
		if err := e.Decode(&p); err != nil {
			return err
		}
		if st := m.TokenState(p.TokenID); st != StateMinted {
			return fmt.Errorf("token %d: uri update from state %s", p.TokenID, st)
		}
		m.mu.Lock()
		m.uris[p.TokenID] = p.URI
		m.mu.Unlock()

	case events.TypeContractPaused:
		m.pause.SetPaused(true)

	case events.TypeContractUnpaused:
		m.pause.SetPaused(false)

	case events.TypeRoleGranted:
		var p events.RoleGranted
		if err := e.Decode(&p); err != nil {
			return err
		}
		if err := m.roles.Grant(p.Role, token.Address(p.Address)); err != nil {
			return err
		}

	default:
		return fmt.Errorf("unknown event type %q", e.Type)
	}

	return nil
}
