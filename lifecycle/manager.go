// Package lifecycle implements the token lifecycle manager: the rules
// that move a token id from unminted to minted, optionally frozen, and
// finally burned, while enforcing the supply cap and global URI
// uniqueness.
//
// The manager owns the mint counter, the used-URI set, the frozen set,
// and the per-token metadata. Ownership records, role membership, the
// pause flag, and the reentrancy guard are collaborators consumed
// through interfaces. Every mutating call checks all of its
// preconditions before touching any state, so a failed call leaves
// nothing half-applied.
package lifecycle

import (
	"context"
	"fmt"
	"sync"

	"github.com/pflow-xyz/go-mintgate/events"
	"github.com/pflow-xyz/go-mintgate/gate"
	"github.com/pflow-xyz/go-mintgate/ledger"
	"github.com/pflow-xyz/go-mintgate/roles"
	"github.com/pflow-xyz/go-mintgate/token"
)

// DefaultMaxSupply is the lifetime mint cap when none is configured.
const DefaultMaxSupply = 5

// OwnershipLedger is the token ownership collaborator.
type OwnershipLedger interface {
	CreateToken(owner token.Address, id token.ID) error
	OwnerOf(id token.ID) (token.Address, error)
	GetApproved(id token.ID) (token.Address, error)
	IsApprovedForAll(owner, operator token.Address) bool
	DestroyToken(id token.ID) error
}

// RoleRegistry is the role membership collaborator.
type RoleRegistry interface {
	HasRole(roleID string, addr token.Address) bool
	Defined(roleID string) bool
	Grant(roleID string, addr token.Address) error
}

// PauseFlag is the process-wide pause gate collaborator.
type PauseFlag interface {
	IsPaused() bool
	SetPaused(paused bool)
}

// ReentrancyGuard blocks nested entry into a guarded operation.
type ReentrancyGuard interface {
	TryEnter() (func(), error)
}

// EventSink receives lifecycle notifications. Publish is the commit
// point of each mutating call: the state change is applied only after
// the event is accepted.
type EventSink interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// Config assembles a manager. Nil collaborators get in-process
// defaults; a zero MaxSupply gets DefaultMaxSupply.
type Config struct {
	Deployer   token.Address
	MaxSupply  uint64
	Ledger     OwnershipLedger
	Roles      RoleRegistry
	Pause      PauseFlag
	Reentrancy ReentrancyGuard
	Sink       EventSink
}

// Manager orchestrates mint, freeze, metadata update, burn, and pause
// against the collaborator services.
type Manager struct {
	ledger     OwnershipLedger
	roles      RoleRegistry
	pause      PauseFlag
	reentrancy ReentrancyGuard
	sink       EventSink

	mu        sync.Mutex
	maxSupply uint64
	counter   uint64 // next id to assign; also the lifetime mint count
	uris      map[token.ID]string
	usedURIs  map[string]bool
	frozen    map[token.ID]bool
}

// New creates a manager and grants the deployer the admin and minter
// roles.
func New(cfg Config) (*Manager, error) {
	if cfg.Deployer.IsZero() {
		return nil, fmt.Errorf("new manager: %w", ErrZeroAddress)
	}
	if cfg.Ledger == nil {
		cfg.Ledger = ledger.New()
	}
	if cfg.Roles == nil {
		cfg.Roles = roles.NewRegistry()
	}
	if cfg.Pause == nil {
		cfg.Pause = &gate.PauseFlag{}
	}
	if cfg.Reentrancy == nil {
		cfg.Reentrancy = &gate.ReentrancyGuard{}
	}
	if cfg.MaxSupply == 0 {
		cfg.MaxSupply = DefaultMaxSupply
	}

	m := &Manager{
		ledger:     cfg.Ledger,
		roles:      cfg.Roles,
		pause:      cfg.Pause,
		reentrancy: cfg.Reentrancy,
		sink:       cfg.Sink,
		maxSupply:  cfg.MaxSupply,
		uris:       make(map[token.ID]string),
		usedURIs:   make(map[string]bool),
		frozen:     make(map[token.ID]bool),
	}

	if err := m.roles.Grant(roles.Admin, cfg.Deployer); err != nil {
		return nil, fmt.Errorf("grant admin: %w", err)
	}
	if err := m.roles.Grant(roles.Minter, cfg.Deployer); err != nil {
		return nil, fmt.Errorf("grant minter: %w", err)
	}

	return m, nil
}

// Mint creates the next token id for an owner. Ids are dense and
// sequential from 0 and are never reused; the cap counts lifetime
// mints, so burning never frees capacity.
func (m *Manager) Mint(ctx context.Context, caller, to token.Address, uri string) (token.ID, error) {
	if !m.roles.HasRole(roles.Minter, caller) {
		return 0, fmt.Errorf("mint: %w", ErrNotAuthorized)
	}
	if m.pause.IsPaused() {
		return 0, fmt.Errorf("mint: %w", ErrPaused)
	}

	release, err := m.reentrancy.TryEnter()
	if err != nil {
		return 0, fmt.Errorf("mint: %w", err)
	}
	defer release()

	if to.IsZero() {
		return 0, fmt.Errorf("mint: %w", ErrZeroAddress)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.counter >= m.maxSupply {
		return 0, fmt.Errorf("mint: %w", ErrMaxSupplyReached)
	}

	id := m.counter
	if m.frozen[id] {
		return 0, fmt.Errorf("mint token %d: %w", id, ErrMetadataFrozen)
	}
	if m.usedURIs[uri] {
		return 0, fmt.Errorf("mint: %q: %w", uri, ErrURIAlreadyUsed)
	}

	if err := m.publish(ctx, events.TypeTokenMinted, events.TokenMinted{
		To:      string(to),
		TokenID: id,
		URI:     uri,
	}); err != nil {
		return 0, fmt.Errorf("mint: publish: %w", err)
	}

	if err := m.ledger.CreateToken(to, id); err != nil {
		return 0, fmt.Errorf("mint: create token: %w", err)
	}
	m.uris[id] = uri
	m.usedURIs[uri] = true
	m.counter++

	return id, nil
}

// FreezeMetadata makes a token's URI immutable until burn. Freezing an
// already-frozen token is a no-op success.
func (m *Manager) FreezeMetadata(ctx context.Context, caller token.Address, id token.ID) error {
	if !m.roles.HasRole(roles.Minter, caller) {
		return fmt.Errorf("freeze metadata: %w", ErrNotAuthorized)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Existence is checked under the lock so a concurrent burn cannot
	// land between the check and the publish.
	if _, err := m.ledger.OwnerOf(id); err != nil {
		return fmt.Errorf("freeze metadata token %d: %w", id, ErrTokenNotFound)
	}

	if err := m.publish(ctx, events.TypeMetadataFrozen, events.MetadataFrozen{TokenID: id}); err != nil {
		return fmt.Errorf("freeze metadata: publish: %w", err)
	}
	m.frozen[id] = true
	return nil
}

// UpdateTokenURI overwrites a token's URI. The new URI is not checked
// against the used-URI set and the old one is not released from it;
// only mint participates in global uniqueness.
func (m *Manager) UpdateTokenURI(ctx context.Context, caller token.Address, id token.ID, newURI string) error {
	if !m.roles.HasRole(roles.Minter, caller) {
		return fmt.Errorf("update token uri: %w", ErrNotAuthorized)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.ledger.OwnerOf(id); err != nil {
		return fmt.Errorf("update token %d: %w", id, ErrTokenNotFound)
	}
	if m.frozen[id] {
		return fmt.Errorf("update token %d: %w", id, ErrMetadataFrozen)
	}

	if err := m.publish(ctx, events.TypeTokenURIUpdated, events.TokenURIUpdated{
		TokenID: id,
		URI:     newURI,
	}); err != nil {
		return fmt.Errorf("update token uri: publish: %w", err)
	}
	m.uris[id] = newURI
	return nil
}

// Burn destroys a token. The caller must be the owner, the approved
// address for the token, or an operator for the owner; no role is
// required and the pause gate does not apply. The frozen flag and
// used-URI record persist as historical facts.
func (m *Manager) Burn(ctx context.Context, caller token.Address, id token.ID) error {
	owner, err := m.ledger.OwnerOf(id)
	if err != nil {
		return fmt.Errorf("burn token %d: %w", id, ErrTokenNotFound)
	}

	authorized := caller == owner || m.ledger.IsApprovedForAll(owner, caller)
	if !authorized {
		approved, err := m.ledger.GetApproved(id)
		if err != nil {
			return fmt.Errorf("burn token %d: %w", id, ErrTokenNotFound)
		}
		authorized = !approved.IsZero() && approved == caller
	}
	if !authorized {
		return fmt.Errorf("burn token %d: %w", id, ErrNotAuthorized)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Re-check existence under the lock: a concurrent burn may have
	// destroyed the token since the authorization reads.
	if _, err := m.ledger.OwnerOf(id); err != nil {
		return fmt.Errorf("burn token %d: %w", id, ErrTokenNotFound)
	}

	if err := m.publish(ctx, events.TypeTokenBurned, events.TokenBurned{TokenID: id}); err != nil {
		return fmt.Errorf("burn: publish: %w", err)
	}

	if err := m.ledger.DestroyToken(id); err != nil {
		return fmt.Errorf("burn: destroy token: %w", err)
	}
	delete(m.uris, id)
	return nil
}

// Pause closes the mint gate. Freeze, update, and burn stay available.
func (m *Manager) Pause(ctx context.Context, caller token.Address) error {
	if !m.roles.HasRole(roles.Admin, caller) {
		return fmt.Errorf("pause: %w", ErrNotAuthorized)
	}
	if m.pause.IsPaused() {
		return fmt.Errorf("pause: %w", ErrAlreadyPaused)
	}
	if err := m.publish(ctx, events.TypeContractPaused, events.ContractPaused{Admin: string(caller)}); err != nil {
		return fmt.Errorf("pause: publish: %w", err)
	}
	m.pause.SetPaused(true)
	return nil
}

// Unpause reopens the mint gate.
func (m *Manager) Unpause(ctx context.Context, caller token.Address) error {
	if !m.roles.HasRole(roles.Admin, caller) {
		return fmt.Errorf("unpause: %w", ErrNotAuthorized)
	}
	if !m.pause.IsPaused() {
		return fmt.Errorf("unpause: %w", ErrNotPaused)
	}
	if err := m.publish(ctx, events.TypeContractUnpaused, events.ContractUnpaused{Admin: string(caller)}); err != nil {
		return fmt.Errorf("unpause: publish: %w", err)
	}
	m.pause.SetPaused(false)
	return nil
}

// GrantRole grants a role to an address. Only admins may grant. The
// role id is validated before the event is published so a failed grant
// never reaches the stream.
func (m *Manager) GrantRole(ctx context.Context, caller token.Address, roleID string, addr token.Address) error {
	if !m.roles.HasRole(roles.Admin, caller) {
		return fmt.Errorf("grant role: %w", ErrNotAuthorized)
	}
	if !m.roles.Defined(roleID) {
		return fmt.Errorf("grant role %q: %w", roleID, roles.ErrUnknownRole)
	}
	if err := m.publish(ctx, events.TypeRoleGranted, events.RoleGranted{
		Role:    roleID,
		Address: string(addr),
	}); err != nil {
		return fmt.Errorf("grant role: publish: %w", err)
	}
	if err := m.roles.Grant(roleID, addr); err != nil {
		return fmt.Errorf("grant role: %w", err)
	}
	return nil
}

// TokenURI returns the metadata URI of a live token.
func (m *Manager) TokenURI(id token.ID) (string, error) {
	if _, err := m.ledger.OwnerOf(id); err != nil {
		return "", fmt.Errorf("token uri %d: %w", id, ErrTokenNotFound)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.uris[id], nil
}

// IsFrozen reports whether a token id's metadata has ever been frozen.
// The flag survives burn.
func (m *Manager) IsFrozen(id token.ID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frozen[id]
}

// URIUsed reports whether a URI has ever been assigned by mint.
func (m *Manager) URIUsed(uri string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.usedURIs[uri]
}

// Minted returns the lifetime number of mints, which is also the next
// token id.
func (m *Manager) Minted() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counter
}

// MaxSupply returns the lifetime mint cap.
func (m *Manager) MaxSupply() uint64 {
	return m.maxSupply
}

// Paused reports whether the mint gate is closed.
func (m *Manager) Paused() bool {
	return m.pause.IsPaused()
}

// TokenState derives the lifecycle state of a token id.
func (m *Manager) TokenState(id token.ID) State {
	m.mu.Lock()
	minted := id < m.counter
	frozen := m.frozen[id]
	m.mu.Unlock()

	if !minted {
		return StateUnminted
	}
	if _, err := m.ledger.OwnerOf(id); err != nil {
		return StateBurned
	}
	if frozen {
		return StateFrozen
	}
	return StateMinted
}

func (m *Manager) publish(ctx context.Context, eventType string, payload any) error {
	if m.sink == nil {
		return nil
	}
	return m.sink.Publish(ctx, eventType, payload)
}
