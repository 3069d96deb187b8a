package models

import (
	"errors"
)

// Base errors for the engine's failure taxonomy. Specific failures wrap
// one of these so that callers can match either the exact failure or the
// whole class with errors.Is.
var (
	ErrGeneral           = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound  = errors.New("there is no")
	ErrInvalidState      = errors.New("the operation is not allowed in the current state")
	ErrInsufficientBalance = errors.New("the balance is not sufficient for this operation")
	ErrOverAllocated     = errors.New("the amount would exceed the available total")
	ErrConflictingUpdate = errors.New("the resource was modified concurrently, please retry")
	ErrAmountNotPositive = errors.New("the amount must be larger than zero")
)
