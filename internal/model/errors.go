package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by document collections when no document matches.
	ErrNotFound = errors.New("document not found")
	// ErrAlreadyExists is returned by document collections on a duplicate id insert.
	ErrAlreadyExists = errors.New("document already exists")
	// ErrDisposed is returned by every store operation after Close.
	ErrDisposed = errors.New("user store is closed")
	// ErrNilArgument marks a missing required argument.
	ErrNilArgument = errors.New("required argument is missing")
)

// NilArgument returns ErrNilArgument annotated with the argument name.
func NilArgument(name string) error {
	return fmt.Errorf("%w: %s", ErrNilArgument, name)
}
