package database

import "errors"

var (
	// ErrNotFound means the requested row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail means the users.email unique constraint fired.
	ErrDuplicateEmail = errors.New("email already in use")
)
