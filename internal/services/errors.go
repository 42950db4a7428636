package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidID is returned when an id string is not a valid toy identifier.
	ErrInvalidID = errors.New("invalid toy id")

	// ErrInvalidInput is returned when a payload fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStore wraps every failure reported by the toy repository.
	ErrStore = errors.New("store failure")
)

// ValidationError lists the offending fields of a payload. It matches ErrInvalidInput.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func storeError(err error) error {
	return fmt.Errorf("%w: %w", ErrStore, err)
}
