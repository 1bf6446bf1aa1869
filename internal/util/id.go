package util

import "github.com/google/uuid"

// NewID generates a unique identifier used for memory nodes and run
// correlation.
func NewID() string { return uuid.NewString() }
