package errors

import "errors"

var (
	ErrNotFound = errors.New("group event not found")

	ErrInvalidID = errors.New("invalid group event ID format")
)
