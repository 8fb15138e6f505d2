// Package common defines shared constants and sentinel errors used across
// DropVault components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors reported to the user; no state is mutated.
	ErrEmptyQueue   = errors.New("upload queue is empty")
	ErrInvalidEmail = errors.New("invalid email address")
)
