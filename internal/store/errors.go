package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound is returned by updates and deletes that match no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("duplicate value")
	// ErrReferenced is returned when a delete is rejected because other rows
	// still reference the target.
	ErrReferenced = errors.New("still referenced by other rows")
	// ErrInvalidReference is returned when a write references a row that does
	// not exist in the same store.
	ErrInvalidReference = errors.New("referenced row does not exist")
)

type constraint int

const (
	constraintNone constraint = iota
	constraintUnique
	constraintForeignKey
)

func classify(err error) constraint {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return constraintNone
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return constraintUnique
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return constraintForeignKey
	}
	if se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		msg := se.Error()
		switch {
		case strings.Contains(msg, "UNIQUE constraint failed"):
			return constraintUnique
		case strings.Contains(msg, "FOREIGN KEY constraint failed"):
			return constraintForeignKey
		}
	}
	return constraintNone
}

// writeErr wraps an insert/update failure, tagging constraint violations.
func writeErr(op string, err error) error {
	switch classify(err) {
	case constraintUnique:
		return fmt.Errorf("%s: %w: %w", op, ErrDuplicate, err)
	case constraintForeignKey:
		return fmt.Errorf("%s: %w: %w", op, ErrInvalidReference, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// deleteErr wraps a delete failure, tagging rows that are still referenced.
func deleteErr(op string, err error) error {
	if classify(err) == constraintForeignKey {
		return fmt.Errorf("%s: %w: %w", op, ErrReferenced, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// newID returns a time-ordered UUID.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func checkAffected(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
