package service

import (
	"errors"
	"fmt"
)

// The two failure kinds every service operation can surface. Both are
// caller errors: no retry will make them succeed.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// Error carries a human-readable message and unwraps to one of the two
// failure kinds so callers can branch with errors.Is.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

// NotFoundf builds a NotFound error with a formatted message.
func NotFoundf(format string, args ...interface{}) error {
	return &Error{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

// Validationf builds a Validation error with a formatted message.
func Validationf(format string, args ...interface{}) error {
	return &Error{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}
