package model

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by the core wraps exactly one of them,
// so callers can branch with errors.Is(err, model.ErrValidation).
var (
	// ErrValidation: malformed input, detected before any state mutation.
	ErrValidation = errors.New("validation failure")
	// ErrConstraint: well-formed input that the current state does not allow.
	ErrConstraint = errors.New("constraint failure")
	// ErrInvariant: programming error inside a simulation run. Fatal, never retried.
	ErrInvariant = errors.New("simulation invariant violation")
)

// Validation failures.
var (
	ErrInvalidMaterial = fmt.Errorf("%w: invalid material", ErrValidation)
	ErrInvalidItem     = fmt.Errorf("%w: invalid item", ErrValidation)
	ErrInvalidName     = fmt.Errorf("%w: invalid avatar name", ErrValidation)
	ErrNotEquippable   = fmt.Errorf("%w: item cannot be equipped", ErrValidation)
	ErrUnknownRow      = fmt.Errorf("%w: unknown table row", ErrValidation)
)

// Constraint failures.
var (
	ErrItemNotFound      = fmt.Errorf("%w: item not found", ErrConstraint)
	ErrAvatarNotFound    = fmt.Errorf("%w: avatar not found", ErrConstraint)
	ErrAvatarExists      = fmt.Errorf("%w: avatar already exists", ErrConstraint)
	ErrMaxLevelReached   = fmt.Errorf("%w: max level reached", ErrConstraint)
	ErrInsufficientFunds = fmt.Errorf("%w: insufficient funds", ErrConstraint)
	ErrStageLocked       = fmt.Errorf("%w: stage not unlocked", ErrConstraint)
)
