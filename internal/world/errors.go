package world

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by this package matches exactly one
// of them under errors.Is.
var (
	ErrConfig         = errors.New("invalid configuration")
	ErrClassification = errors.New("no terrain matches")
	ErrCapacity       = errors.New("voxel rejected by store")
)

// ErrAlreadyRendered is returned by a second MeshMap.Render call.
var ErrAlreadyRendered = &ConfigError{Field: "mesh", Reason: "already rendered"}

// ConfigError reports a configuration value rejected by a Build call.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

func configErrorf(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ClassificationError reports a sample no terrain covers. Level is the
// level relative to ground for level-range lookups; Height is the
// normalized sample for threshold lookups.
type ClassificationError struct {
	X, Y   int
	Level  int
	Height float64
	// Threshold is true when the failure came from ColorMap.Apply.
	Threshold bool
	// Gaps is the total number of uncovered cells found by Apply.
	Gaps int
}

func (e *ClassificationError) Error() string {
	if e.Threshold {
		return fmt.Sprintf("no terrain matches height %.4f at (%d,%d) (%d uncovered cells)", e.Height, e.X, e.Y, e.Gaps)
	}
	return fmt.Sprintf("no terrain matches level %d at (%d,%d)", e.Level, e.X, e.Y)
}

func (e *ClassificationError) Unwrap() error { return ErrClassification }

// CapacityError reports a voxel the store refused.
type CapacityError struct {
	X, Y, Z int
	Err     error
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("cannot add voxel at (%d,%d,%d): %v", e.X, e.Y, e.Z, e.Err)
}

// Unwrap exposes both the class and the store's own error.
func (e *CapacityError) Unwrap() []error { return []error{ErrCapacity, e.Err} }
