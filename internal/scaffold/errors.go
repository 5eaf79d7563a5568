package scaffold

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidProjectName is returned when a project name fails validation.
	ErrInvalidProjectName = errors.New("invalid project name")

	// ErrInvalidOwner is returned when an owner is not a GitHub login.
	ErrInvalidOwner = errors.New("invalid owner")

	// ErrTargetExists is returned when the base path already exists and the
	// request did not authorize an overwrite.
	ErrTargetExists = errors.New("target already exists")

	// ErrUnknownPreset is returned when a preset ID is not in the registry.
	ErrUnknownPreset = errors.New("unknown preset")
)

// IOError wraps a filesystem failure with the operation and path involved.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
