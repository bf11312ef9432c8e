package db

import "errors"

// Domain errors surfaced by the stores and the cancellation path. Handlers
// map these to HTTP statuses with errors.Is.
var (
	ErrNotFound        = errors.New("record not found")
	ErrForbidden       = errors.New("caller does not own this record")
	ErrAlreadyCanceled = errors.New("booking already canceled")
	ErrDuplicateKey    = errors.New("duplicate key")
)
