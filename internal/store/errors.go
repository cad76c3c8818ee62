package store

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicate means a row with the same key already exists, for example
	// a payment record saved twice.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity means the database rejected the row's contents:
	// a CHECK or NOT NULL constraint, or a value the column cannot hold.
	ErrInvalidEntity = errors.New("invalid entity")
)

// OpError records which store operation failed on which entity.
type OpError struct {
	Entity string
	Op     string
	Detail string
	Err    error
}

func (e *OpError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Entity, e.Op, e.Detail)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// NewOpError builds an OpError. err may be nil.
func NewOpError(entity, op, detail string, err error) *OpError {
	return &OpError{Entity: entity, Op: op, Detail: detail, Err: err}
}
