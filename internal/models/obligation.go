package models

import (
	"fmt"
)

// ObligationStatus is the lifecycle state of a planned expense or income.
//
// The state machine is pending → confirmed and pending → skipped, both
// terminal. Edits to a confirmed obligation's actual amount do not change
// its state.
type ObligationStatus string

const (
	ObligationStatusPending   ObligationStatus = "pending"
	ObligationStatusConfirmed ObligationStatus = "confirmed"
	ObligationStatusSkipped   ObligationStatus = "skipped"
)

var (
	ErrAlreadyConfirmed     = fmt.Errorf("%w: the obligation has already been confirmed", ErrInvalidState)
	ErrAlreadySkipped       = fmt.Errorf("%w: the obligation has already been skipped", ErrInvalidState)
	ErrFundedExceedsActual  = fmt.Errorf("%w: the funded amount must not exceed the actual amount", ErrOverAllocated)
	ErrFundedExceedsPlanned = fmt.Errorf("%w: the funded amount must not exceed the planned amount", ErrOverAllocated)
	ErrFundRequiredForFunding = fmt.Errorf("%w: a funded amount requires a fund", ErrInvalidState)
)

// checkPending translates a non-pending status into the matching error.
func (s ObligationStatus) checkPending() error {
	switch s {
	case ObligationStatusConfirmed:
		return ErrAlreadyConfirmed
	case ObligationStatusSkipped:
		return ErrAlreadySkipped
	}

	return nil
}
