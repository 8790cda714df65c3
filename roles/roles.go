// Package roles provides the role registry consulted by the lifecycle
// manager before every privileged operation.
//
// Roles are flat named capabilities with optional inheritance: granting
// a role also grants every role it inherits, transitively. The admin
// role inherits minter, so an admin can mint without a separate grant.
package roles

import (
	"errors"
	"sync"

	"github.com/pflow-xyz/go-mintgate/token"
)

// The two fixed roles of the lifecycle manager.
const (
	Admin  = "admin"
	Minter = "minter"
)

var ErrUnknownRole = errors.New("roles: unknown role")

// Role defines a named role for access control.
type Role struct {
	ID       string   `json:"id"`
	Name     string   `json:"name,omitempty"`
	Inherits []string `json:"inherits,omitempty"` // roles implied by this one
}

// Registry maps (role, address) to a granted flag.
type Registry struct {
	mu     sync.RWMutex
	roles  map[string]Role
	grants map[string]map[token.Address]bool
}

// NewRegistry creates a registry with the admin and minter roles
// defined. Admin inherits minter.
func NewRegistry() *Registry {
	r := &Registry{
		roles:  make(map[string]Role),
		grants: make(map[string]map[token.Address]bool),
	}
	r.Define(Role{ID: Minter, Name: "Minter"})
	r.Define(Role{ID: Admin, Name: "Admin", Inherits: []string{Minter}})
	return r
}

// Define registers or replaces a role definition.
func (r *Registry) Define(role Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roles[role.ID] = role
}

// Defined reports whether a role id has a definition.
func (r *Registry) Defined(roleID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.roles[roleID]
	return ok
}

// Grant marks an address as holding a role.
func (r *Registry) Grant(roleID string, addr token.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.roles[roleID]; !ok {
		return ErrUnknownRole
	}
	grants, ok := r.grants[roleID]
	if !ok {
		grants = make(map[token.Address]bool)
		r.grants[roleID] = grants
	}
	grants[addr] = true
	return nil
}

// Revoke removes a direct grant. Grants implied through inheritance are
// unaffected.
func (r *Registry) Revoke(roleID string, addr token.Address) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.grants[roleID], addr)
}

// HasRole reports whether an address holds a role, either directly or
// through a granted role that inherits it.
func (r *Registry) HasRole(roleID string, addr token.Address) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for granted, members := range r.grants {
		if !members[addr] {
			continue
		}
		if granted == roleID || r.inheritsLocked(granted, roleID) {
			return true
		}
	}
	return false
}

// inheritsLocked reports whether role from transitively inherits role
// to. Callers hold r.mu.
func (r *Registry) inheritsLocked(from, to string) bool {
	visited := make(map[string]bool)
	stack := []string{from}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		visited[id] = true

		role, ok := r.roles[id]
		if !ok {
			continue
		}
		for _, parent := range role.Inherits {
			if parent == to {
				return true
			}
			stack = append(stack, parent)
		}
	}
	return false
}
