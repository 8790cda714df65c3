// Package events provides the append-only record of token lifecycle
// notifications. Every mutating operation on the lifecycle manager is
// published here as an immutable event with fixed fields, and manager
// state can be rebuilt by replaying a stream from version 0.
package events

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common store errors.
var (
	ErrConcurrencyConflict = errors.New("events: stream version conflict")
	ErrStreamNotFound      = errors.New("events: stream not found")
)

// Lifecycle event types.
const (
	TypeTokenMinted      = "TokenMinted"
	TypeTokenBurned      = "TokenBurned"
	TypeMetadataFrozen   = "MetadataFrozen"
	TypeContractPaused   = "ContractPaused"
	TypeContractUnpaused = "ContractUnpaused"

	// Record types kept for replay. The contract surface does not
	// announce these; the stream needs them to rebuild state.
	TypeTokenURIUpdated = "TokenURIUpdated"
	TypeRoleGranted     = "RoleGranted"
)

// Event is a single immutable record in a stream.
type Event struct {
	ID        string          `json:"id"`
	StreamID  string          `json:"stream_id"`
	Type      string          `json:"type"`
	Version   int             `json:"version"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// New creates an event for a stream. Version is assigned by the store
// on append.
func New(streamID, eventType string, data any) (*Event, error) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = b
	}

	return &Event{
		ID:        uuid.New().String(),
		StreamID:  streamID,
		Type:      eventType,
		Version:   -1,
		Timestamp: time.Now().UTC(),
		Data:      raw,
	}, nil
}

// Decode unmarshals the event payload into v.
func (e *Event) Decode(v any) error {
	if len(e.Data) == 0 {
		return nil
	}
	return json.Unmarshal(e.Data, v)
}

// TokenMinted is the payload for TypeTokenMinted.
type TokenMinted struct {
	To      string `json:"to"`
	TokenID uint64 `json:"token_id"`
	URI     string `json:"uri"`
}

// TokenBurned is the payload for TypeTokenBurned.
type TokenBurned struct {
	TokenID uint64 `json:"token_id"`
}

// MetadataFrozen is the payload for TypeMetadataFrozen.
type MetadataFrozen struct {
	TokenID uint64 `json:"token_id"`
}

// ContractPaused is the payload for TypeContractPaused.
type ContractPaused struct {
	Admin string `json:"admin"`
}

// ContractUnpaused is the payload for TypeContractUnpaused.
type ContractUnpaused struct {
	Admin string `json:"admin"`
}

// TokenURIUpdated is the payload for TypeTokenURIUpdated.
type TokenURIUpdated struct {
	TokenID uint64 `json:"token_id"`
	URI     string `json:"uri"`
}

// RoleGranted is the payload for TypeRoleGranted.
type RoleGranted struct {
	Role    string `json:"role"`
	Address string `json:"address"`
}
