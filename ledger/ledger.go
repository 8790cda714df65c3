// Package ledger provides the in-memory ownership ledger: token id to
// owner records plus the approval state needed to authorize burns.
//
// The ledger is a primitive. It performs no role or pause checks; those
// belong to the lifecycle manager sitting above it.
package ledger

import (
	"errors"
	"sync"

	"github.com/pflow-xyz/go-mintgate/token"
)

var (
	ErrTokenNotFound = errors.New("ledger: token does not exist")
	ErrTokenExists   = errors.New("ledger: token already exists")
	ErrZeroAddress   = errors.New("ledger: zero address")
)

// Ledger maps token ids to owners and tracks per-token and per-owner
// approvals.
type Ledger struct {
	mu        sync.RWMutex
	owners    map[token.ID]token.Address
	approved  map[token.ID]token.Address
	operators map[token.Address]map[token.Address]bool
	balances  map[token.Address]uint64
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{
		owners:    make(map[token.ID]token.Address),
		approved:  make(map[token.ID]token.Address),
		operators: make(map[token.Address]map[token.Address]bool),
		balances:  make(map[token.Address]uint64),
	}
}

// CreateToken records ownership of a fresh token id.
func (l *Ledger) CreateToken(owner token.Address, id token.ID) error {
	if owner.IsZero() {
		return ErrZeroAddress
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.owners[id]; ok {
		return ErrTokenExists
	}
	l.owners[id] = owner
	l.balances[owner]++
	return nil
}

// OwnerOf returns the owner of a token. Absence is an error, not a zero
// value: callers use the failure itself as the non-existence signal.
func (l *Ledger) OwnerOf(id token.ID) (token.Address, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	owner, ok := l.owners[id]
	if !ok {
		return token.ZeroAddress, ErrTokenNotFound
	}
	return owner, nil
}

// DestroyToken removes a token's ownership record and clears its
// per-token approval.
func (l *Ledger) DestroyToken(id token.ID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	owner, ok := l.owners[id]
	if !ok {
		return ErrTokenNotFound
	}
	delete(l.owners, id)
	delete(l.approved, id)
	if l.balances[owner] > 0 {
		l.balances[owner]--
	}
	return nil
}

// Approve sets the single approved address for a token.
func (l *Ledger) Approve(id token.ID, spender token.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.owners[id]; !ok {
		return ErrTokenNotFound
	}
	if spender.IsZero() {
		delete(l.approved, id)
		return nil
	}
	l.approved[id] = spender
	return nil
}

// GetApproved returns the approved address for a token, or the zero
// address if none is set.
func (l *Ledger) GetApproved(id token.ID) (token.Address, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, ok := l.owners[id]; !ok {
		return token.ZeroAddress, ErrTokenNotFound
	}
	return l.approved[id], nil
}

// SetApprovalForAll grants or revokes operator standing over every token
// the owner holds.
func (l *Ledger) SetApprovalForAll(owner, operator token.Address, approved bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ops, ok := l.operators[owner]
	if !ok {
		if !approved {
			return
		}
		ops = make(map[token.Address]bool)
		l.operators[owner] = ops
	}
	if approved {
		ops[operator] = true
	} else {
		delete(ops, operator)
	}
}

// IsApprovedForAll reports whether operator may act on all of owner's
// tokens.
func (l *Ledger) IsApprovedForAll(owner, operator token.Address) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.operators[owner][operator]
}

// BalanceOf returns the number of live tokens held by owner.
func (l *Ledger) BalanceOf(owner token.Address) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[owner]
}

// LiveSupply returns the number of tokens currently in existence.
func (l *Ledger) LiveSupply() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.owners)
}
