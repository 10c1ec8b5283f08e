package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate indicates a uniqueness constraint rejected the write.
	ErrDuplicate = errors.New("duplicate record")
)
