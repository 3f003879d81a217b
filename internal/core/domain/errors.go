package domain

import "errors"

var ErrProjectNotFound = errors.New("project not found")
var ErrUserNotFound = errors.New("user not found")
var ErrChatNotFound = errors.New("chat not found")
var ErrInvalidInput = errors.New("invalid input")
var ErrForbidden = errors.New("access forbidden")
var ErrUnauthenticated = errors.New("unauthenticated")

// InputError is a client mistake with a message safe to show to the caller.
// It matches ErrInvalidInput under errors.Is.
type InputError struct {
	Reason string
}

// NewInputError builds an InputError with the given reason.
func NewInputError(reason string) *InputError {
	return &InputError{Reason: reason}
}

func (e *InputError) Error() string { return e.Reason }

func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }
