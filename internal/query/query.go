// Package query holds the tri-state container used for every value that is
// produced by an asynchronous operation: Pending, Loaded or Error.
package query

import "errors"

// ErrNotPending is returned when a result that already settled is resolved
// or failed again without being reset first.
var ErrNotPending = errors.New("query: result is not pending")

type State int

const (
	Pending State = iota
	Loaded
	Error
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Loaded:
		return "loaded"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Result is Pending in its zero value. It may only move Pending -> Loaded or
// Pending -> Error; settling again requires an explicit Reset.
type Result[T any, E any] struct {
	state State
	value T
	err   E
}

func NewLoaded[T any, E any](value T) Result[T, E] {
	return Result[T, E]{state: Loaded, value: value}
}

func NewError[T any, E any](err E) Result[T, E] {
	return Result[T, E]{state: Error, err: err}
}

func (r Result[T, E]) State() State { return r.state }

func (r Result[T, E]) IsPending() bool { return r.state == Pending }

func (r Result[T, E]) IsLoaded() bool { return r.state == Loaded }

func (r Result[T, E]) IsError() bool { return r.state == Error }

// Value returns the loaded value. ok is false in the Pending and Error states.
func (r Result[T, E]) Value() (value T, ok bool) {
	if r.state != Loaded {
		return value, false
	}
	return r.value, true
}

// Err returns the error payload. ok is false unless the result failed.
func (r Result[T, E]) Err() (err E, ok bool) {
	if r.state != Error {
		return err, false
	}
	return r.err, true
}

// ValueOr returns the loaded value or def for presentation fallbacks.
func (r Result[T, E]) ValueOr(def T) T {
	if r.state != Loaded {
		return def
	}
	return r.value
}

func (r *Result[T, E]) Resolve(value T) error {
	if r.state != Pending {
		return ErrNotPending
	}
	r.state = Loaded
	r.value = value
	return nil
}

func (r *Result[T, E]) Fail(err E) error {
	if r.state != Pending {
		return ErrNotPending
	}
	r.state = Error
	r.err = err
	return nil
}

// Reset drops any settled value so a fresh load can begin. Nothing stale is
// kept around while the new load is in flight.
func (r *Result[T, E]) Reset() {
	var zeroT T
	var zeroE E
	r.state = Pending
	r.value = zeroT
	r.err = zeroE
}

// Map applies f to the Loaded value; Pending and Error pass through.
func Map[T any, U any, E any](r Result[T, E], f func(T) U) Result[U, E] {
	switch r.state {
	case Loaded:
		return Result[U, E]{state: Loaded, value: f(r.value)}
	case Error:
		return Result[U, E]{state: Error, err: r.err}
	default:
		return Result[U, E]{}
	}
}
