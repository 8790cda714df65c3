// Package proof generates zero-knowledge proofs about the token
// lifecycle: that the lifetime mint count respects the supply cap, and
// that a claimed commitment is the MiMC fold of a given event window.
package proof

import (
	"fmt"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
)

// Prover manages circuit compilation, setup, and proof generation.
type Prover struct {
	mu       sync.RWMutex
	circuits map[string]*CompiledCircuit
	curve    ecc.ID
}

// CompiledCircuit holds a compiled constraint system and its keys.
type CompiledCircuit struct {
	Name         string
	CS           constraint.ConstraintSystem
	ProvingKey   groth16.ProvingKey
	VerifyingKey groth16.VerifyingKey
	Constraints  int
}

// Proof is a generated proof together with its public witness.
type Proof struct {
	CircuitName string
	proof       groth16.Proof
	public      witness.Witness
}

// NewProver creates a prover on BN254.
func NewProver() *Prover {
	return &Prover{
		circuits: make(map[string]*CompiledCircuit),
		curve:    ecc.BN254,
	}
}

// RegisterCircuit compiles a circuit and runs trusted setup, storing
// the result under name. Registering an existing name replaces it.
func (p *Prover) RegisterCircuit(name string, circuit frontend.Circuit) error {
	cs, err := frontend.Compile(p.curve.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return fmt.Errorf("circuit compilation failed: %w", err)
	}

	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}

	p.mu.Lock()
	p.circuits[name] = &CompiledCircuit{
		Name:         name,
		CS:           cs,
		ProvingKey:   pk,
		VerifyingKey: vk,
		Constraints:  cs.GetNbConstraints(),
	}
	p.mu.Unlock()
	return nil
}

// HasCircuit reports whether a circuit is registered under name.
func (p *Prover) HasCircuit(name string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.circuits[name]
	return ok
}

// Prove generates a Groth16 proof for a registered circuit.
func (p *Prover) Prove(circuitName string, assignment frontend.Circuit) (*Proof, error) {
	p.mu.RLock()
	cc, ok := p.circuits[circuitName]
	p.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("circuit %q not registered", circuitName)
	}

	w, err := frontend.NewWitness(assignment, p.curve.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("witness creation failed: %w", err)
	}

	proof, err := groth16.Prove(cc.CS, cc.ProvingKey, w)
	if err != nil {
		return nil, fmt.Errorf("proof generation failed: %w", err)
	}

	public, err := w.Public()
	if err != nil {
		return nil, fmt.Errorf("public witness extraction failed: %w", err)
	}

	return &Proof{
		CircuitName: circuitName,
		proof:       proof,
		public:      public,
	}, nil
}

// Verify checks a proof against its circuit's verifying key.
func (p *Prover) Verify(pr *Proof) error {
	p.mu.RLock()
	cc, ok := p.circuits[pr.CircuitName]
	p.mu.RUnlock()
	if !ok {
		return fmt.Errorf("circuit %q not registered", pr.CircuitName)
	}

	if err := groth16.Verify(pr.proof, cc.VerifyingKey, pr.public); err != nil {
		return fmt.Errorf("proof verification failed: %w", err)
	}
	return nil
}
