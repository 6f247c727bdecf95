package store

import "fmt"

// UnavailableError indicates a lifecycle command could not reach its target
// dependency. Fatal to that invocation only; nothing was mutated.
type UnavailableError struct {
	Target string // "database" or "cache"
	Err    error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Target, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}
