package service

import (
	"errors"
	"fmt"
)

// Error kinds. OperationError matches exactly one of these with errors.Is.
var (
	ErrInvalid     = errors.New("invalid")
	ErrUpstream    = errors.New("upstream failed")
	ErrPersistence = errors.New("persistence failed")
)

// Op names the service operation that failed.
type Op string

const (
	OpCreate Op = "create"
	OpList   Op = "list"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// OperationError carries the failing operation and error kind so the HTTP
// layer can pick a status and a message without string matching.
type OperationError struct {
	Op   Op
	Kind error
	Err  error
}

func (e *OperationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *OperationError) Is(target error) bool {
	return target == e.Kind
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func opError(op Op, kind, err error) *OperationError {
	return &OperationError{Op: op, Kind: kind, Err: err}
}
