package session

import (
	"errors"
	"fmt"
)

var (
	// ErrSubmissionDisabled: el input no está bien formado, no se llama al verifier.
	ErrSubmissionDisabled = errors.New("submission disabled")
)

// AuthenticationError lleva el mensaje del identity provider para mostrarlo tal cual.
type AuthenticationError struct {
	Op      Op
	Message string
	Err     error
}

func (e *AuthenticationError) Error() string {
	return "LOGIN ERROR: " + e.Message
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// SignOutError solo se loguea; el estado no cambia.
type SignOutError struct {
	Err error
}

func (e *SignOutError) Error() string {
	return fmt.Sprintf("SIGNOUT ERROR: %v", e.Err)
}

func (e *SignOutError) Unwrap() error { return e.Err }
