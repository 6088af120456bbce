package domain

import (
	"errors"
	"fmt"
)

// ErrServiceUnreachable is wrapped by the startup connectivity probe failure
var ErrServiceUnreachable = errors.New("vacancy service unreachable")

// ValidationError reports a malformed raw record or invalid user parameters
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// RangeParseError reports a salary range string that could not be parsed.
// It is never fatal: the salary stage falls back to no filtering.
type RangeParseError struct {
	Input string
	Err   error
}

func (e *RangeParseError) Error() string {
	return fmt.Sprintf("invalid salary range %q (use 100000, 100000-150000 or -150000): %v", e.Input, e.Err)
}

func (e *RangeParseError) Unwrap() error {
	return e.Err
}

// FetchError reports a transport failure or a non-success status from the vacancy API
type FetchError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s failed (status %d): %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s failed: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// StorageError reports a read, write or decode problem in a vacancy store
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
