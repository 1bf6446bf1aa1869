package core

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig marks malformed or inconsistent world configuration. Fatal
	// at load time; nothing is built from a bad bundle.
	ErrConfig = errors.New("invalid world configuration")

	// ErrOutOfBounds marks tile access outside the grid extents. This is a
	// programmer error and is always surfaced, never clamped or wrapped
	// around the grid edge.
	ErrOutOfBounds = errors.New("tile out of bounds")

	// ErrCorruptSnapshot marks a memory store that could not be loaded.
	// Fatal to the owning agent's construction.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")

	// ErrCollaborator marks a failed cognitive-module call. It aborts the
	// remaining pipeline steps of the tick it occurred in.
	ErrCollaborator = errors.New("collaborator failure")
)

// ConfigError identifies the offending layer (or legend) of a bad world
// configuration bundle.
type ConfigError struct {
	Layer  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: layer %q: %s", ErrConfig, e.Layer, e.Reason)
}

// Unwrap links the error to ErrConfig for errors.Is checks.
func (e *ConfigError) Unwrap() error { return ErrConfig }

// OutOfBoundsError reports the coordinate that missed a width×height grid.
type OutOfBoundsError struct {
	Coord         Coord
	Width, Height int
}

// Error implements the error interface.
func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%s: %s outside %dx%d", ErrOutOfBounds, e.Coord, e.Width, e.Height)
}

// Unwrap links the error to ErrOutOfBounds for errors.Is checks.
func (e *OutOfBoundsError) Unwrap() error { return ErrOutOfBounds }

// SnapshotError reports which store of an agent snapshot failed to load.
type SnapshotError struct {
	Store string
	Path  string
	Err   error
}

// Error implements the error interface.
func (e *SnapshotError) Error() string {
	return fmt.Sprintf("%s: %s store at %s: %v", ErrCorruptSnapshot, e.Store, e.Path, e.Err)
}

// Unwrap exposes the underlying load error.
func (e *SnapshotError) Unwrap() error { return e.Err }

// Is matches both ErrCorruptSnapshot and the wrapped cause.
func (e *SnapshotError) Is(target error) bool { return target == ErrCorruptSnapshot }

// Stage names the pipeline step a collaborator failure occurred in.
type Stage string

// Pipeline stages in execution order.
const (
	StagePerceive Stage = "perceive"
	StageRetrieve Stage = "retrieve"
	StagePlan     Stage = "plan"
	StageReflect  Stage = "reflect"
	StageExecute  Stage = "execute"
	StageConverse Stage = "converse"
)

// CollaboratorError wraps a cognitive-module failure with the stage it
// happened in. Steps after the failing stage never run.
type CollaboratorError struct {
	Stage Stage
	Err   error
}

// Error implements the error interface.
func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrCollaborator, e.Stage, e.Err)
}

// Unwrap exposes the underlying collaborator error.
func (e *CollaboratorError) Unwrap() error { return e.Err }

// Is matches ErrCollaborator in addition to the wrapped cause.
func (e *CollaboratorError) Is(target error) bool { return target == ErrCollaborator }
