package handler

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorKind is the coarse classification surfaced to the UI for any
// filesystem failure.
type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindNotFound
	KindPermission
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindPermission:
		return "permission denied"
	default:
		return "other OS error"
	}
}

type IOError struct {
	Op   string
	Path string
	Kind ErrorKind
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func wrap(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return err
	}
	return &IOError{Op: op, Path: path, Kind: KindOf(err), Err: err}
}

// KindOf classifies err. Errors that are neither not-exist nor permission
// failures fall into KindOther.
func KindOf(err error) ErrorKind {
	var ioErr *IOError
	switch {
	case err == nil:
		return KindOther
	case errors.As(err, &ioErr):
		return ioErr.Kind
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermission
	default:
		return KindOther
	}
}
