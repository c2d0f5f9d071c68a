package nbeats

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrInvalidConfig    = errors.New("invalid model configuration")
	ErrUnknownBlockType = errors.New("unknown block type")
	ErrShapeMismatch    = errors.New("input shape mismatch")
	ErrInvalidBasis     = errors.New("invalid basis dimensions")
)

// ConfigError describes a rejected configuration field.
// It matches ErrInvalidConfig and, when set, Err under errors.Is.
type ConfigError struct {
	Field  string // Configuration field (e.g. "BackcastLength", "BlockTypes[1]")
	Reason string // Human-readable explanation
	Err    error  // Underlying cause, if any
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", ErrInvalidConfig, e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfig, e.Field, e.Reason)
}

// Unwrap exposes ErrInvalidConfig and the underlying cause.
func (e *ConfigError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidConfig, e.Err}
	}
	return []error{ErrInvalidConfig}
}
