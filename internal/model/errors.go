package model

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerExists   = errors.New("player already exists")

	// Game errors
	ErrGameNotFound  = errors.New("game not found")
	ErrGameCompleted = errors.New("game already completed")
)

// ValidationError reports malformed input. Items carries every offending
// value (unknown names, duplicates), never just the first one found.
type ValidationError struct {
	Message string
	Items   []string
}

// NewValidationError creates a ValidationError naming the offending items
func NewValidationError(message string, items ...string) *ValidationError {
	return &ValidationError{Message: message, Items: items}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Items) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Items, ", "))
}
