package gate

import "testing"

func TestPauseFlag(t *testing.T) {
	var p PauseFlag

	if p.IsPaused() {
		t.Error("expected unpaused zero value")
	}
	p.SetPaused(true)
	if !p.IsPaused() {
		t.Error("expected paused after set")
	}
	p.SetPaused(false)
	if p.IsPaused() {
		t.Error("expected unpaused after clear")
	}
}

func TestReentrancyGuard(t *testing.T) {
	var g ReentrancyGuard

	release, err := g.TryEnter()
	if err != nil {
		t.Fatalf("first entry failed: %v", err)
	}

	if _, err := g.TryEnter(); err != ErrReentrantCall {
		t.Errorf("expected ErrReentrantCall on nested entry, got %v", err)
	}

	release()
	release() // double release is a no-op

	release2, err := g.TryEnter()
	if err != nil {
		t.Fatalf("entry after release failed: %v", err)
	}
	release2()
}
