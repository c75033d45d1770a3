package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the core wraps exactly one of these so
// callers can branch with errors.Is instead of matching strings.
var (
	ErrNotFound              = errors.New("not found")
	ErrInvalidState          = errors.New("invalid state")
	ErrConflict              = errors.New("conflict")
	ErrRejected              = errors.New("rejected")
	ErrPayoutExecutionFailed = errors.New("payout execution failed")
	ErrInvalidInput          = errors.New("invalid input")
)

var (
	ErrBudgetExceeded    = fmt.Errorf("%w: campaign budget exceeded", ErrConflict)
	ErrAlreadySettled    = fmt.Errorf("%w: contract already settled", ErrConflict)
	ErrScoreTooLow       = fmt.Errorf("%w: audit score below minimum", ErrRejected)
	ErrRailNotConfigured = fmt.Errorf("%w: payment rail credentials not configured", ErrPayoutExecutionFailed)
)

var kinds = []error{
	ErrNotFound,
	ErrInvalidState,
	ErrConflict,
	ErrRejected,
	ErrPayoutExecutionFailed,
	ErrInvalidInput,
}

// KindOf returns the error kind err wraps, or nil when err is nil or carries
// no known kind.
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
