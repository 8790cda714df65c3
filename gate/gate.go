// Package gate provides the two boolean guards consulted by the
// lifecycle manager: a process-wide pause flag and a scoped reentrancy
// guard.
package gate

import (
	"errors"
	"sync"
)

var ErrReentrantCall = errors.New("gate: reentrant call")

// PauseFlag is a single admin-controlled gate. The zero value is
// unpaused and ready to use.
type PauseFlag struct {
	mu     sync.RWMutex
	paused bool
}

// IsPaused reports whether the gate is set.
func (p *PauseFlag) IsPaused() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.paused
}

// SetPaused sets or clears the gate.
func (p *PauseFlag) SetPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = paused
}

// ReentrancyGuard blocks nested entry into a guarded operation during
// its own execution. The zero value is ready to use.
//
// The guard is scoped to one logical call: TryEnter fails only while a
// previous entry has not yet released, never across completed calls.
type ReentrancyGuard struct {
	mu      sync.Mutex
	entered bool
}

// TryEnter acquires the guard. The returned release function must be
// called on every exit path; releasing twice is a no-op.
func (g *ReentrancyGuard) TryEnter() (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.entered {
		return nil, ErrReentrantCall
	}
	g.entered = true

	var once sync.Once
	release := func() {
		once.Do(func() {
			g.mu.Lock()
			g.entered = false
			g.mu.Unlock()
		})
	}
	return release, nil
}
