package domain

import "errors"

var (
	// ErrNullArgument is returned when a required entity, description or rule is nil.
	ErrNullArgument = errors.New("required argument is nil")

	// ErrInvalidConfiguration is returned when a required external endpoint is not configured.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidArgument is returned for malformed or semantically wrong input,
	// e.g. a policy body that is not an IDS permission.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when no entity exists for the given id.
	ErrNotFound = errors.New("entity not found")
)
