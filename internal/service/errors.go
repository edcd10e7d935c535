package service

import (
	"errors"
	"fmt"

	"github.com/osa911/teamchat/internal/repository"
	"github.com/osa911/teamchat/internal/store"
)

// Sentinel errors for service layer
var (
	ErrAuth        = errors.New("authentication required")
	ErrValidation  = errors.New("validation error")
	ErrConflict    = errors.New("conflict error")
	ErrNotFound    = errors.New("not found")
	ErrRemoteStore = errors.New("remote store error")
)

// storeError classifies an error returned by a repository. Misses keep their
// NotFound meaning, anything else is an opaque store failure.
func storeError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return fmt.Errorf("%w: %w", ErrRemoteStore, err)
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// requireKey rejects values that cannot be used as a single store path segment.
func requireKey(field, value string) error {
	if value == "" {
		return invalid("%s is required", field)
	}
	if !store.ValidKey(value) {
		return invalid("%s %q contains characters not allowed in a key", field, value)
	}
	return nil
}
