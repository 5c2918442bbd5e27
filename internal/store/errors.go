//-------------------------------------------------------------------------
//
// pgEdge Security Data Store
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pgEdge/pgedge-secdata/internal/model"
)

// Sentinel errors matched with errors.Is.
var (
	ErrAlreadyExists = errors.New("record already exists")
	ErrNotFound      = errors.New("record not found")
	ErrStorage       = errors.New("storage failure")
)

// Reason tells which existence guard a RecordError came from.
type Reason string

// Existence guard outcomes.
const (
	ReasonAlreadyExists Reason = "already exists"
	ReasonNotFound      Reason = "not found"
)

// RecordError is an expected existence-guard outcome: a create on a key
// that is taken, or an update on a key that is absent.
type RecordError struct {
	Entity model.Kind
	Key    string
	Reason Reason
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s %q %s", e.Entity, e.Key, e.Reason)
}

// Is matches ErrAlreadyExists or ErrNotFound according to the reason.
func (e *RecordError) Is(target error) bool {
	switch e.Reason {
	case ReasonAlreadyExists:
		return target == ErrAlreadyExists
	case ReasonNotFound:
		return target == ErrNotFound
	}
	return false
}

// StorageError wraps any unexpected failure of a store operation.
type StorageError struct {
	Op     string
	Entity model.Kind
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is matches ErrStorage.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// uniqueViolation is the SQLSTATE raised by the natural key indexes.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
