package entities

import "errors"

// Error taxonomy shared by the store, the transfer gateway and the HTTP
// layer. Mutation failures are always one of these so controllers can map
// them to a response code with errors.Is.
var (
	ErrNotFound           = errors.New("record not found")
	ErrCapacityExceeded   = errors.New("capacity exceeded")
	ErrProtected          = errors.New("record is protected")
	ErrInvalidFormat      = errors.New("invalid format")
	ErrStorageUnavailable = errors.New("storage unavailable")
)
