package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrTourNotFound is returned when no visible tour matches the given id.
	ErrTourNotFound = errors.New("tour not found")

	// ErrUserNotFound is returned when no active user matches the given id or email.
	ErrUserNotFound = errors.New("user not found")

	// ErrReviewNotFound is returned when no review matches the given id.
	ErrReviewNotFound = errors.New("review not found")

	// ErrDuplicateValue is returned when a write violates a unique constraint.
	// The concrete error is a [*DuplicateValueError].
	ErrDuplicateValue = errors.New("duplicate value")

	// ErrInvalidValue is returned when a filter or column value cannot be
	// converted to the column type. The concrete error is usually an
	// [*InvalidValueError].
	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidReference is returned when a row references a tour or user
	// that does not exist.
	ErrInvalidReference = errors.New("referenced row does not exist")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a result set fails midway.
	ErrScanningRows = errors.New("failed to scan rows")
)

// DuplicateValueError describes a unique constraint violation.
type DuplicateValueError struct {
	Field string
	Value string
}

func (e *DuplicateValueError) Error() string {
	return fmt.Sprintf("duplicate value %q for field %s", e.Value, e.Field)
}

func (e *DuplicateValueError) Unwrap() error {
	return ErrDuplicateValue
}

// InvalidValueError describes a value that does not fit the type of the
// field it is compared with or stored in.
type InvalidValueError struct {
	Field string
	Value string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q for field %s", e.Value, e.Field)
}

func (e *InvalidValueError) Unwrap() error {
	return ErrInvalidValue
}

// ConstraintError describes a value rejected by a CHECK constraint. Field is
// the API name of the offending field and Rule the requirement it broke.
type ConstraintError struct {
	Field string
	Rule  string
}

func (e *ConstraintError) Error() string {
	return e.Field + " " + e.Rule
}

func (e *ConstraintError) Unwrap() error {
	return ErrInvalidValue
}
