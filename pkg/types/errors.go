package types

import "errors"

// Repository lifecycle errors.
var (
	ErrStoreClosed = errors.New("store is closed")
	ErrAlreadyOpen = errors.New("store is already open")
)

// Business-rule errors. These signal expected conditions the caller can
// recover from; none of them indicates an I/O fault.
var (
	ErrNotFound        = errors.New("entity not found")
	ErrDuplicateID     = errors.New("duplicate entity ID")
	ErrInvalidID       = errors.New("invalid entity ID")
	ErrInvalidData     = errors.New("invalid entity data")
	ErrActiveLoans     = errors.New("entity has active loans")
	ErrBookUnavailable = errors.New("no available copies")
	ErrLoanClosed      = errors.New("loan is already returned")
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)
