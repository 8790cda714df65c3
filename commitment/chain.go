// Package commitment computes a running MiMC commitment over an event
// stream. Each event folds into the chain as a field-element leaf, so
// two stores hold the same history iff their commitments match, and a
// commitment can be re-verified in-circuit with the same hash.
package commitment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-mintgate/events"
)

var ErrUnknownEventType = errors.New("commitment: unknown event type")

// Chain is a running commitment. The zero value starts at the genesis
// commitment (the zero field element).
type Chain struct {
	state fr.Element
	count int
}

// NewChain creates a chain at the genesis commitment.
func NewChain() *Chain {
	return &Chain{}
}

// Fold absorbs one event into the chain: state' = MiMC(state, leaf).
func (c *Chain) Fold(e *events.Event) error {
	leaf, err := EventLeaf(e)
	if err != nil {
		return err
	}

	h := mimc.NewMiMC()
	h.Write(c.state.Marshal())
	h.Write(leaf.Marshal())
	c.state.SetBytes(h.Sum(nil))
	c.count++
	return nil
}

// Count returns the number of events folded so far.
func (c *Chain) Count() int {
	return c.count
}

// Hex returns the current commitment as a 0x-prefixed hex string.
func (c *Chain) Hex() string {
	b := c.state.Bytes()
	return "0x" + hex.EncodeToString(b[:])
}

// Element returns the current commitment as a field element.
func (c *Chain) Element() fr.Element {
	return c.state
}

// Compute folds an entire stream from the store and returns the final
// commitment.
func Compute(ctx context.Context, store events.Store, streamID string) (*Chain, error) {
	evs, err := store.Read(ctx, streamID, 0)
	if err != nil {
		return nil, err
	}

	chain := NewChain()
	for _, e := range evs {
		if err := chain.Fold(e); err != nil {
			return nil, fmt.Errorf("fold version %d: %w", e.Version, err)
		}
	}
	return chain, nil
}

// Verify recomputes a stream's commitment and compares it to want.
func Verify(ctx context.Context, store events.Store, streamID, want string) (bool, error) {
	chain, err := Compute(ctx, store, streamID)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(chain.Hex(), want), nil
}

// EventLeaf hashes an event's semantic fields into one field element.
// Only the replayable fields participate: type, version, and payload.
// Wall-clock timestamps and random event ids stay out so that the
// commitment is a function of history alone.
func EventLeaf(e *events.Event) (fr.Element, error) {
	h := mimc.NewMiMC()
	write := func(el fr.Element) {
		h.Write(el.Marshal())
	}

	write(stringScalar(e.Type))
	write(uintScalar(uint64(e.Version)))

	switch e.Type {
	case events.TypeTokenMinted:
		var p events.TokenMinted
		if err := e.Decode(&p); err != nil {
			return fr.Element{}, err
		}
		write(addressScalar(p.To))
		write(uintScalar(p.TokenID))
		write(stringScalar(p.URI))

	case events.TypeTokenBurned:
		var p events.TokenBurned
		if err := e.Decode(&p); err != nil {
			return fr.Element{}, err
		}
		write(uintScalar(p.TokenID))

	case events.TypeMetadataFrozen:
		var p events.MetadataFrozen
		if err := e.Decode(&p); err != nil {
			return fr.Element{}, err
		}
		write(uintScalar(p.TokenID))

	case events.TypeTokenURIUpdated:
		var p events.TokenURIUpdated
		if err := e.Decode(&p); err != nil {
			return fr.Element{}, err
		}
		write(uintScalar(p.TokenID))
		write(stringScalar(p.URI))

	case events.TypeContractPaused:
		var p events.ContractPaused
		if err := e.Decode(&p); err != nil {
			return fr.Element{}, err
		}
		write(addressScalar(p.Admin))

	case events.TypeContractUnpaused:
		var p events.ContractUnpaused
		if err := e.Decode(&p); err != nil {
			return fr.Element{}, err
		}
		write(addressScalar(p.Admin))

	case events.TypeRoleGranted:
		var p events.RoleGranted
		if err := e.Decode(&p); err != nil {
			return fr.Element{}, err
		}
		write(stringScalar(p.Role))
		write(addressScalar(p.Address))

	default:
		return fr.Element{}, fmt.Errorf("%w: %q", ErrUnknownEventType, e.Type)
	}

	var leaf fr.Element
	leaf.SetBytes(h.Sum(nil))
	return leaf, nil
}

// addressScalar maps a hex address into the scalar field. Addresses
// that don't parse as hex fall back to string hashing.
func addressScalar(addr string) fr.Element {
	if strings.HasPrefix(addr, "0x") || strings.HasPrefix(addr, "0X") {
		if v, err := uint256.FromHex(addr); err == nil {
			var el fr.Element
			b := v.Bytes32()
			el.SetBytes(b[:])
			return el
		}
	}
	return stringScalar(addr)
}

// stringScalar maps an arbitrary string into the scalar field via
// SHA-256, reduced mod the field order.
func stringScalar(s string) fr.Element {
	sum := sha256.Sum256([]byte(s))
	var el fr.Element
	el.SetBytes(sum[:])
	return el
}

// uintScalar maps a uint64 into the scalar field.
func uintScalar(v uint64) fr.Element {
	var el fr.Element
	el.SetUint64(v)
	return el
}
