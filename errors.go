package dict

import (
	"errors"
	"fmt"
)

var (
	ErrCapacityExceeded = errors.New("dictionary is full")
	ErrDuplicateKey     = errors.New("duplicate key rejected")
	ErrAllocationFailed = errors.New("node allocation failed")
	ErrMembership       = errors.New("node in wrong attachment state")
	ErrIncompatible     = errors.New("dictionaries are not similar")
	ErrNotEmpty         = errors.New("dictionary is not empty")
	ErrDestroyed        = errors.New("dictionary was destroyed")

	// ErrInvariantViolation is wrapped by every error Verify reports.
	ErrInvariantViolation = errors.New("invariant violation")
)

var (
	ErrSentinelColor       = fmt.Errorf("%w: sentinel is not black", ErrInvariantViolation)
	ErrRootColor           = fmt.Errorf("%w: root is not black", ErrInvariantViolation)
	ErrRedViolation        = fmt.Errorf("%w: red node has red child", ErrInvariantViolation)
	ErrBlackHeightMismatch = fmt.Errorf("%w: black height mismatch", ErrInvariantViolation)
	ErrOrderViolation      = fmt.Errorf("%w: keys out of order", ErrInvariantViolation)
	ErrParentLink          = fmt.Errorf("%w: broken parent link", ErrInvariantViolation)
	ErrCountMismatch       = fmt.Errorf("%w: node count mismatch", ErrInvariantViolation)
	ErrOwnerMismatch       = fmt.Errorf("%w: node not attached to this dictionary", ErrInvariantViolation)
)
