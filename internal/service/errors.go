package service

import "errors"

var (
	// ErrNotFound indicates a referenced user or request does not exist, does
	// not belong to the caller, or is not in a reviewable state. Review keeps
	// these cases indistinguishable on purpose.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument indicates a malformed or disallowed input value.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict indicates a relationship between the two users already exists.
	ErrConflict = errors.New("conflict")
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
