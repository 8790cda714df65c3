package proof

import (
	"context"
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"

	"github.com/pflow-xyz/go-mintgate/commitment"
	"github.com/pflow-xyz/go-mintgate/events"
)

// SupplyCapName is the registry name of the supply cap circuit.
const SupplyCapName = "supply-cap"

// SupplyCapCircuit proves that the lifetime mint count does not exceed
// the cap. Both values are public: the statement is the invariant
// itself, not a hidden witness.
type SupplyCapCircuit struct {
	Minted frontend.Variable `gnark:",public"`
	Cap    frontend.Variable `gnark:",public"`
}

// Define asserts minted <= cap.
func (c *SupplyCapCircuit) Define(api frontend.API) error {
	api.AssertIsLessOrEqual(c.Minted, c.Cap)
	return nil
}

// ChainCircuit proves that folding a window of event leaves from the
// genesis state yields the public commitment. The leaves are private;
// the endpoints are public.
type ChainCircuit struct {
	Leaves []frontend.Variable

	Genesis    frontend.Variable `gnark:",public"`
	Commitment frontend.Variable `gnark:",public"`
}

// NewChainCircuit allocates a chain circuit template for a window of n
// leaves.
func NewChainCircuit(n int) *ChainCircuit {
	return &ChainCircuit{Leaves: make([]frontend.Variable, n)}
}

// Define folds state' = MiMC(state, leaf) across the window, matching
// the native chain in the commitment package.
func (c *ChainCircuit) Define(api frontend.API) error {
	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}

	state := c.Genesis
	for _, leaf := range c.Leaves {
		h.Reset()
		h.Write(state, leaf)
		state = h.Sum()
	}

	api.AssertIsEqual(state, c.Commitment)
	return nil
}

// chainCircuitName names the per-window-size chain circuit.
func chainCircuitName(n int) string {
	return fmt.Sprintf("lifecycle-chain-%d", n)
}

// ProveSupplyCap proves minted <= cap, registering the circuit on
// first use.
func ProveSupplyCap(p *Prover, minted, cap uint64) (*Proof, error) {
	if !p.HasCircuit(SupplyCapName) {
		if err := p.RegisterCircuit(SupplyCapName, &SupplyCapCircuit{}); err != nil {
			return nil, err
		}
	}
	return p.Prove(SupplyCapName, &SupplyCapCircuit{
		Minted: minted,
		Cap:    cap,
	})
}

// ProveChain proves that a stream's events fold to their commitment.
// A circuit is compiled per window size and cached in the prover.
func ProveChain(ctx context.Context, p *Prover, store events.Store, streamID string) (*Proof, string, error) {
	evs, err := store.Read(ctx, streamID, 0)
	if err != nil {
		return nil, "", err
	}
	if len(evs) == 0 {
		return nil, "", fmt.Errorf("stream %s is empty", streamID)
	}

	chain := commitment.NewChain()
	leaves := make([]frontend.Variable, len(evs))
	for i, e := range evs {
		leaf, err := commitment.EventLeaf(e)
		if err != nil {
			return nil, "", err
		}
		leaves[i] = leaf.BigInt(new(big.Int))
		if err := chain.Fold(e); err != nil {
			return nil, "", err
		}
	}

	name := chainCircuitName(len(evs))
	if !p.HasCircuit(name) {
		if err := p.RegisterCircuit(name, NewChainCircuit(len(evs))); err != nil {
			return nil, "", err
		}
	}

	final := chain.Element()
	pr, err := p.Prove(name, &ChainCircuit{
		Leaves:     leaves,
		Genesis:    0,
		Commitment: final.BigInt(new(big.Int)),
	})
	if err != nil {
		return nil, "", err
	}
	return pr, chain.Hex(), nil
}
