package lifecycle

import "errors"

var (
	// Authorization failures.
	ErrNotAuthorized = errors.New("lifecycle: caller not authorized")

	// State failures.
	ErrPaused         = errors.New("lifecycle: minting is paused")
	ErrAlreadyPaused  = errors.New("lifecycle: already paused")
	ErrNotPaused      = errors.New("lifecycle: not paused")
	ErrTokenNotFound  = errors.New("lifecycle: token does not exist")
	ErrMetadataFrozen = errors.New("lifecycle: metadata is frozen")
	ErrZeroAddress    = errors.New("lifecycle: zero address")

	// Capacity failure.
	ErrMaxSupplyReached = errors.New("lifecycle: max supply reached")

	// Uniqueness failure.
	ErrURIAlreadyUsed = errors.New("lifecycle: uri already used")
)
