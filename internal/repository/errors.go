package repository

import "errors"

var (
	// ErrNotFound is returned when no record matches the requested identifier
	ErrNotFound = errors.New("not found")
)
