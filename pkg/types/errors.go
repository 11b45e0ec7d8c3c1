package types

import (
	"errors"
	"fmt"
)

// Container operation errors. Every one of them is recoverable: the
// container is left unchanged and still traversable.
var (
	ErrNotFound     = errors.New("not found")
	ErrOverCapacity = errors.New("over capacity")
	ErrEmpty        = errors.New("empty")
	ErrAtEnd        = errors.New("already at the last entry")
	ErrAtStart      = errors.New("already at the first entry")
	ErrDuplicateID  = errors.New("duplicate id")
)

// Input validation errors.
var (
	ErrInvalidName     = errors.New("name must not be empty")
	ErrInvalidWeight   = errors.New("weight must be positive")
	ErrInvalidCapacity = errors.New("capacity must be positive")
	ErrInvalidDuration = errors.New("duration must not be negative")
)

// CapacityError reports a load that would push a train past its capacity.
// It matches ErrOverCapacity under errors.Is.
type CapacityError struct {
	TrainID   string
	Cargo     string
	Attempted int
	Max       int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("cannot load %q onto %s: would exceed max weight (%d/%d tons)",
		e.Cargo, e.TrainID, e.Attempted, e.Max)
}

// Is reports whether target is ErrOverCapacity.
func (e *CapacityError) Is(target error) bool {
	return target == ErrOverCapacity
}

// IsInvalid returns true for any of the input validation errors.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidName) ||
		errors.Is(err, ErrInvalidWeight) ||
		errors.Is(err, ErrInvalidCapacity) ||
		errors.Is(err, ErrInvalidDuration)
}
