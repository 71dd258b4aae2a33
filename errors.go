package lockman

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is against the richer struct error
// types below, following the pattern of the library's SDK-level errors:
// a package sentinel paired with a struct that implements Is.
var (
	// ErrAlreadyRegistered is matched by AlreadyRegisteredError.
	ErrAlreadyRegistered = errors.New("strategy already registered")
	// ErrNotRegistered is matched by NotRegisteredError.
	ErrNotRegistered = errors.New("strategy not registered")
	// ErrTypeMismatch is matched by TypeMismatchError.
	ErrTypeMismatch = errors.New("strategy info type mismatch")
)

// AlreadyRegisteredError is returned by Register/RegisterAll when a
// StrategyId is already occupied in the Registry.
type AlreadyRegisteredError struct {
	ID StrategyId
}

func (e *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("lockman: strategy %q already registered", e.ID)
}

// Is reports whether target is ErrAlreadyRegistered.
func (e *AlreadyRegisteredError) Is(target error) bool { return target == ErrAlreadyRegistered }

// NotRegisteredError is returned by Resolve when a StrategyId has no
// entry in the Registry.
type NotRegisteredError struct {
	ID StrategyId
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("lockman: strategy %q not registered", e.ID)
}

// Is reports whether target is ErrNotRegistered.
func (e *NotRegisteredError) Is(target error) bool { return target == ErrNotRegistered }

// TypeMismatchError is returned by Resolve when the strategy registered
// under an id does not implement Strategy[I] for the requested I.
type TypeMismatchError struct {
	ID   StrategyId
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("lockman: strategy %q registered with info type %s, want %s", e.ID, e.Got, e.Want)
}

// Is reports whether target is ErrTypeMismatch.
func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }
