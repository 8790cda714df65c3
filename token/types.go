// Package token defines the identifier types shared by the ledger,
// role registry, and lifecycle manager.
package token

// ID identifies one non-fungible unit. IDs are assigned sequentially
// starting at 0 and are never reused, including after a burn.
type ID = uint64

// Address identifies an account, as a hex string (0x-prefixed).
type Address string

// ZeroAddress is the null account. Tokens can never be owned by it.
const ZeroAddress Address = ""

// IsZero reports whether the address is the null account.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}
