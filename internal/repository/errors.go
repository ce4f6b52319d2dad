// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios without inspecting
// driver errors themselves.
package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a row (or, for list/delete-all, the whole
// collection) does not exist.  Handlers translate it into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrReferenceNotFound is returned when a write references a parent row
// that does not exist (e.g. a production run for an unknown supply).
var ErrReferenceNotFound = errors.New("referenced row not found")

// ErrDuplicate is returned when a primary or unique key already exists.
var ErrDuplicate = errors.New("duplicate key")

// ErrConflict is returned when a delete cannot be performed because other
// rows still reference the target.
var ErrConflict = errors.New("conflict")

// ErrInvalidData is returned when the store rejects a value (too long, out
// of range, check constraint).
var ErrInvalidData = errors.New("invalid data")

// MySQL server error numbers classified by classify.
const (
	mysqlDupEntry        = 1062
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
	mysqlDataTooLong     = 1406
	mysqlOutOfRange      = 1264
	mysqlCheckViolated   = 3819
)

// classify maps driver errors onto the package sentinels, keeping the
// original error in the chain.  Unknown errors are returned unchanged.
func classify(err error) error {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return err
	}
	switch me.Number {
	case mysqlDupEntry:
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	case mysqlRowIsReferenced:
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case mysqlNoReferencedRow:
		return fmt.Errorf("%w: %w", ErrReferenceNotFound, err)
	case mysqlDataTooLong, mysqlOutOfRange, mysqlCheckViolated:
		return fmt.Errorf("%w: %w", ErrInvalidData, err)
	}
	return err
}
