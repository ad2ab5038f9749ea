package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no exercise matches the requested id.
var ErrNotFound = errors.New("exercise not found")

// ParseError indicates a malformed exercise definition file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingFileError indicates an exercise directory lacks a required file.
type MissingFileError struct {
	Dir  string
	File string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("exercise %s missing %s", e.Dir, e.File)
}
