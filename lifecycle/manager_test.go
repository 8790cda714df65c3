package lifecycle_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/pflow-xyz/go-mintgate/events"
	"github.com/pflow-xyz/go-mintgate/gate"
	"github.com/pflow-xyz/go-mintgate/ledger"
	"github.com/pflow-xyz/go-mintgate/lifecycle"
	"github.com/pflow-xyz/go-mintgate/roles"
	"github.com/pflow-xyz/go-mintgate/token"
)

const (
	deployer = token.Address("0xdeb")
	alice    = token.Address("0xa11ce")
	bob      = token.Address("0xb0b")
	carol    = token.Address("0xca201")
)

func newManager(t *testing.T) *lifecycle.Manager {
	t.Helper()
	m, err := lifecycle.New(lifecycle.Config{Deployer: deployer})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return m
}

func TestMintSequentialIDs(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	for i := uint64(0); i < lifecycle.DefaultMaxSupply; i++ {
		id, err := m.Mint(ctx, deployer, alice, fmt.Sprintf("ipfs://token/%d", i))
		if err != nil {
			t.Fatalf("mint %d failed: %v", i, err)
		}
		if id != i {
			t.Errorf("expected id %d, got %d", i, id)
		}
	}
	if got := m.Minted(); got != lifecycle.DefaultMaxSupply {
		t.Errorf("expected %d minted, got %d", lifecycle.DefaultMaxSupply, got)
	}
}

func TestMintSupplyCapIsLifetime(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	for i := 0; i < lifecycle.DefaultMaxSupply; i++ {
		if _, err := m.Mint(ctx, deployer, deployer, fmt.Sprintf("uri-%d", i)); err != nil {
			t.Fatalf("mint %d failed: %v", i, err)
		}
	}

	// Burning does not free capacity: the cap counts lifetime mints.
	if err := m.Burn(ctx, deployer, 0); err != nil {
		t.Fatalf("burn failed: %v", err)
	}
	_, err := m.Mint(ctx, deployer, deployer, "uri-after-burn")
	if !errors.Is(err, lifecycle.ErrMaxSupplyReached) {
		t.Errorf("expected ErrMaxSupplyReached, got %v", err)
	}
}

func TestMintRequiresMinterRole(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	_, err := m.Mint(ctx, alice, alice, "uri-0")
	if !errors.Is(err, lifecycle.ErrNotAuthorized) {
		t.Errorf("expected ErrNotAuthorized, got %v", err)
	}
}

func TestMintURIUniqueness(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	if _, err := m.Mint(ctx, deployer, alice, "uri-0"); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	_, err := m.Mint(ctx, deployer, bob, "uri-0")
	if !errors.Is(err, lifecycle.ErrURIAlreadyUsed) {
		t.Errorf("expected ErrURIAlreadyUsed, got %v", err)
	}

	// The record outlives the token.
	if err := m.Burn(ctx, alice, 0); err != nil {
		t.Fatalf("burn failed: %v", err)
	}
	_, err = m.Mint(ctx, deployer, bob, "uri-0")
	if !errors.Is(err, lifecycle.ErrURIAlreadyUsed) {
		t.Errorf("expected ErrURIAlreadyUsed after burn, got %v", err)
	}
	if !m.URIUsed("uri-0") {
		t.Error("expected uri-0 to remain used after burn")
	}
}

func TestMintZeroAddress(t *testing.T) {
	m := newManager(t)
	_, err := m.Mint(context.Background(), deployer, token.ZeroAddress, "uri-0")
	if !errors.Is(err, lifecycle.ErrZeroAddress) {
		t.Errorf("expected ErrZeroAddress, got %v", err)
	}
}

func TestFreezeMetadata(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	if _, err := m.Mint(ctx, deployer, alice, "uri-0"); err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if err := m.FreezeMetadata(ctx, deployer, 0); err != nil {
		t.Fatalf("freeze failed: %v", err)
	}
	if !m.IsFrozen(0) {
		t.Error("expected token 0 frozen")
	}

	// Idempotent: a second freeze is a no-op success.
	if err := m.FreezeMetadata(ctx, deployer, 0); err != nil {
		t.Errorf("second freeze failed: %v", err)
	}

	err := m.UpdateTokenURI(ctx, deployer, 0, "uri-x")
	if !errors.Is(err, lifecycle.ErrMetadataFrozen) {
		t.Errorf("expected ErrMetadataFrozen, got %v", err)
	}

	if err := m.FreezeMetadata(ctx, deployer, 9); !errors.Is(err, lifecycle.ErrTokenNotFound) {
		t.Errorf("expected ErrTokenNotFound, got %v", err)
	}
	if err := m.FreezeMetadata(ctx, alice, 0); !errors.Is(err, lifecycle.ErrNotAuthorized) {
		t.Errorf("expected ErrNotAuthorized, got %v", err)
	}
}

func TestUpdateTokenURI(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	if _, err := m.Mint(ctx, deployer, alice, "uri-0"); err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if err := m.UpdateTokenURI(ctx, deployer, 0, "uri-1"); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	uri, err := m.TokenURI(0)
	if err != nil {
		t.Fatalf("tokenURI failed: %v", err)
	}
	if uri != "uri-1" {
		t.Errorf("expected uri-1, got %s", uri)
	}

	// Update does not participate in uniqueness: the new URI is not
	// reserved and the old one is not released.
	if m.URIUsed("uri-1") {
		t.Error("updated uri must not enter the used set")
	}
	if !m.URIUsed("uri-0") {
		t.Error("original uri must stay in the used set")
	}

	if err := m.UpdateTokenURI(ctx, deployer, 9, "x"); !errors.Is(err, lifecycle.ErrTokenNotFound) {
		t.Errorf("expected ErrTokenNotFound, got %v", err)
	}
	if err := m.UpdateTokenURI(ctx, alice, 0, "x"); !errors.Is(err, lifecycle.ErrNotAuthorized) {
		t.Errorf("expected ErrNotAuthorized, got %v", err)
	}
}

func TestBurnAuthorization(t *testing.T) {
	led := ledger.New()
	m, err := lifecycle.New(lifecycle.Config{Deployer: deployer, Ledger: led})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	ctx := context.Background()

	for i, uri := range []string{"uri-0", "uri-1", "uri-2"} {
		if _, err := m.Mint(ctx, deployer, alice, uri); err != nil {
			t.Fatalf("mint %d failed: %v", i, err)
		}
	}

	// A stranger cannot burn.
	if err := m.Burn(ctx, carol, 0); !errors.Is(err, lifecycle.ErrNotAuthorized) {
		t.Errorf("expected ErrNotAuthorized, got %v", err)
	}

	// The owner can.
	if err := m.Burn(ctx, alice, 0); err != nil {
		t.Fatalf("owner burn failed: %v", err)
	}
	if _, err := led.OwnerOf(0); err == nil {
		t.Error("expected ownerOf to fail after burn")
	}

	// The approved address can.
	if err := led.Approve(1, bob); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if err := m.Burn(ctx, bob, 1); err != nil {
		t.Fatalf("approved burn failed: %v", err)
	}

	// An operator can.
	led.SetApprovalForAll(alice, carol, true)
	if err := m.Burn(ctx, carol, 2); err != nil {
		t.Fatalf("operator burn failed: %v", err)
	}

	// Burning a burned token fails as non-existent.
	if err := m.Burn(ctx, alice, 0); !errors.Is(err, lifecycle.ErrTokenNotFound) {
		t.Errorf("expected ErrTokenNotFound, got %v", err)
	}
}

func TestPauseGatesMintOnly(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	if _, err := m.Mint(ctx, deployer, alice, "uri-0"); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if _, err := m.Mint(ctx, deployer, alice, "uri-1"); err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if err := m.Pause(ctx, alice); !errors.Is(err, lifecycle.ErrNotAuthorized) {
		t.Errorf("expected ErrNotAuthorized, got %v", err)
	}
	if err := m.Pause(ctx, deployer); err != nil {
		t.Fatalf("pause failed: %v", err)
	}
	if err := m.Pause(ctx, deployer); !errors.Is(err, lifecycle.ErrAlreadyPaused) {
		t.Errorf("expected ErrAlreadyPaused, got %v", err)
	}

	// Mint is gated regardless of role.
	if _, err := m.Mint(ctx, deployer, alice, "uri-2"); !errors.Is(err, lifecycle.ErrPaused) {
		t.Errorf("expected ErrPaused, got %v", err)
	}

	// Freeze, update, and burn are not.
	if err := m.FreezeMetadata(ctx, deployer, 0); err != nil {
		t.Errorf("freeze while paused failed: %v", err)
	}
	if err := m.UpdateTokenURI(ctx, deployer, 1, "uri-1b"); err != nil {
		t.Errorf("update while paused failed: %v", err)
	}
	if err := m.Burn(ctx, alice, 1); err != nil {
		t.Errorf("burn while paused failed: %v", err)
	}

	if err := m.Unpause(ctx, deployer); err != nil {
		t.Fatalf("unpause failed: %v", err)
	}
	if err := m.Unpause(ctx, deployer); !errors.Is(err, lifecycle.ErrNotPaused) {
		t.Errorf("expected ErrNotPaused, got %v", err)
	}
	if _, err := m.Mint(ctx, deployer, alice, "uri-2"); err != nil {
		t.Errorf("mint after unpause failed: %v", err)
	}
}

func TestReentrantMintBlocked(t *testing.T) {
	var guard gate.ReentrancyGuard
	var m *lifecycle.Manager

	led := &reentrantLedger{inner: ledger.New()}
	mgr, err := lifecycle.New(lifecycle.Config{
		Deployer:   deployer,
		Ledger:     led,
		Reentrancy: &guard,
	})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	m = mgr

	// The ledger calls back into Mint during CreateToken; the nested
	// call must be rejected while the outer one succeeds.
	led.onCreate = func() {
		_, nested := m.Mint(context.Background(), deployer, alice, "uri-nested")
		if !errors.Is(nested, gate.ErrReentrantCall) {
			t.Errorf("expected ErrReentrantCall for nested mint, got %v", nested)
		}
	}

	if _, err := m.Mint(context.Background(), deployer, alice, "uri-0"); err != nil {
		t.Fatalf("outer mint failed: %v", err)
	}

	// The guard is scoped to a single call, not held across calls.
	if _, err := m.Mint(context.Background(), deployer, alice, "uri-1"); err != nil {
		t.Fatalf("mint after release failed: %v", err)
	}
}

func TestTokenStateMachine(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	if got := m.TokenState(0); got != lifecycle.StateUnminted {
		t.Errorf("expected unminted, got %s", got)
	}

	m.Mint(ctx, deployer, alice, "uri-0")
	if got := m.TokenState(0); got != lifecycle.StateMinted {
		t.Errorf("expected minted, got %s", got)
	}

	m.FreezeMetadata(ctx, deployer, 0)
	if got := m.TokenState(0); got != lifecycle.StateFrozen {
		t.Errorf("expected frozen, got %s", got)
	}

	m.Burn(ctx, alice, 0)
	if got := m.TokenState(0); got != lifecycle.StateBurned {
		t.Errorf("expected burned, got %s", got)
	}

	// Frozen flag survives burn as a historical fact.
	if !m.IsFrozen(0) {
		t.Error("expected frozen flag to survive burn")
	}
}

// TestLifecycleScenario walks the reference sequence end to end:
// mint two tokens, freeze one, fail to update it, burn it, then fail
// to reuse its URI.
func TestLifecycleScenario(t *testing.T) {
	store := events.NewMemoryStore()
	sink := events.NewPublisher(store, "contract-1")
	m, err := lifecycle.New(lifecycle.Config{Deployer: deployer, Sink: sink})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	ctx := context.Background()

	id0, err := m.Mint(ctx, deployer, alice, "uri0")
	if err != nil || id0 != 0 {
		t.Fatalf("expected id 0, got %d (%v)", id0, err)
	}
	id1, err := m.Mint(ctx, deployer, alice, "uri1")
	if err != nil || id1 != 1 {
		t.Fatalf("expected id 1, got %d (%v)", id1, err)
	}

	if err := m.FreezeMetadata(ctx, deployer, 0); err != nil {
		t.Fatalf("freeze failed: %v", err)
	}
	if err := m.UpdateTokenURI(ctx, deployer, 0, "uriX"); !errors.Is(err, lifecycle.ErrMetadataFrozen) {
		t.Errorf("expected ErrMetadataFrozen, got %v", err)
	}
	if err := m.Burn(ctx, alice, 0); err != nil {
		t.Fatalf("burn failed: %v", err)
	}
	if _, err := m.Mint(ctx, deployer, bob, "uri0"); !errors.Is(err, lifecycle.ErrURIAlreadyUsed) {
		t.Errorf("expected ErrURIAlreadyUsed for burned token's uri, got %v", err)
	}

	evs, err := store.Read(ctx, "contract-1", 0)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	wantTypes := []string{
		events.TypeTokenMinted,
		events.TypeTokenMinted,
		events.TypeMetadataFrozen,
		events.TypeTokenBurned,
	}
	if len(evs) != len(wantTypes) {
		t.Fatalf("expected %d events, got %d", len(wantTypes), len(evs))
	}
	for i, want := range wantTypes {
		if evs[i].Type != want {
			t.Errorf("event %d: expected %s, got %s", i, want, evs[i].Type)
		}
	}
}

func TestGrantRole(t *testing.T) {
	reg := roles.NewRegistry()
	m, err := lifecycle.New(lifecycle.Config{Deployer: deployer, Roles: reg})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	ctx := context.Background()

	if err := m.GrantRole(ctx, alice, roles.Minter, bob); !errors.Is(err, lifecycle.ErrNotAuthorized) {
		t.Errorf("expected ErrNotAuthorized, got %v", err)
	}
	if err := m.GrantRole(ctx, deployer, roles.Minter, bob); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if _, err := m.Mint(ctx, bob, bob, "uri-0"); err != nil {
		t.Errorf("mint by granted minter failed: %v", err)
	}
}

func TestGrantRoleUnknownRoleLeavesNoEvents(t *testing.T) {
	ctx := context.Background()
	store := events.NewMemoryStore()
	m, err := lifecycle.New(lifecycle.Config{
		Deployer: deployer,
		Sink:     events.NewPublisher(store, "contract-1"),
	})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	if err := m.GrantRole(ctx, deployer, "bogus", alice); !errors.Is(err, roles.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}

	evs, err := store.Read(ctx, "contract-1", 0)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(evs) != 0 {
		t.Fatalf("failed grant appended %d event(s), want 0", len(evs))
	}

	// The stream must still replay and accept further work.
	if _, err := m.Mint(ctx, deployer, alice, "uri-0"); err != nil {
		t.Fatalf("mint after failed grant: %v", err)
	}
	replayed, err := lifecycle.Replay(ctx, store, "contract-1", lifecycle.Config{Deployer: deployer})
	if err != nil {
		t.Fatalf("replay after failed grant: %v", err)
	}
	if replayed.Minted() != 1 {
		t.Errorf("expected 1 minted after replay, got %d", replayed.Minted())
	}
}

// reentrantLedger wraps the real ledger and invokes a callback during
// CreateToken, simulating a collaborator that calls back into the
// manager mid-mint.
type reentrantLedger struct {
	inner    *ledger.Ledger
	onCreate func()
}

func (r *reentrantLedger) CreateToken(owner token.Address, id token.ID) error {
	if r.onCreate != nil {
		cb := r.onCreate
		r.onCreate = nil
		cb()
	}
	return r.inner.CreateToken(owner, id)
}

func (r *reentrantLedger) OwnerOf(id token.ID) (token.Address, error) {
	return r.inner.OwnerOf(id)
}

func (r *reentrantLedger) GetApproved(id token.ID) (token.Address, error) {
	return r.inner.GetApproved(id)
}

func (r *reentrantLedger) IsApprovedForAll(owner, operator token.Address) bool {
	return r.inner.IsApprovedForAll(owner, operator)
}

func (r *reentrantLedger) DestroyToken(id token.ID) error {
	return r.inner.DestroyToken(id)
}
