package store

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueDetail matches the DETAIL of a PostgreSQL unique_violation, e.g.
// `Key (email)=(ann@example.com) already exists.`
var uniqueDetail = regexp.MustCompile(`^Key \((.+?)\)=\((.*)\) already exists\.?$`)

// columnFields maps constrained column names back to API field names.
var columnFields = map[string]string{
	"name":             "name",
	"email":            "email",
	"tour_id":          "tour",
	"user_id":          "user",
	"tour_id, user_id": "tour, user",
}

// checkConstraints maps the CHECK constraint names PostgreSQL derives for
// the migrations (<table>_<column>_check) to the rejected API field.
var checkConstraints = map[string]ConstraintError{
	"users_role_check":            {Field: "role", Rule: "must be one of user, guide, lead-guide, admin"},
	"tours_duration_check":        {Field: "duration", Rule: "must be greater than 0"},
	"tours_max_group_size_check":  {Field: "maxGroupSize", Rule: "must be greater than 0"},
	"tours_difficulty_check":      {Field: "difficulty", Rule: "must be one of easy, medium, difficult"},
	"tours_ratings_average_check": {Field: "ratingsAverage", Rule: "must be between 1 and 5"},
	"tours_price_check":           {Field: "price", Rule: "must be greater than 0"},
	"tours_price_discount_check":  {Field: "priceDiscount", Rule: "must be below the regular price"},
	"reviews_rating_check":        {Field: "rating", Rule: "must be between 1 and 5"},
}

// classifyPgError maps a PostgreSQL driver error to a store error. Errors
// that are not *pgconn.PgError, or whose code has no store counterpart, are
// returned unchanged.
//
// Mapped codes:
//   - 23505 unique_violation → [*DuplicateValueError]
//   - 23503 foreign_key_violation → [ErrInvalidReference]
//   - 23514 check_violation → [*ConstraintError], or [ErrInvalidValue] for
//     unknown constraints
//   - 22P02 invalid_text_representation → [ErrInvalidValue]
func classifyPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return duplicateValueError(pgErr)
	case pgerrcode.ForeignKeyViolation:
		return ErrInvalidReference
	case pgerrcode.CheckViolation:
		return checkViolationError(pgErr)
	case pgerrcode.InvalidTextRepresentation:
		return fmt.Errorf("%w: %s", ErrInvalidValue, pgErr.Message)
	}

	return err
}

func duplicateValueError(pgErr *pgconn.PgError) *DuplicateValueError {
	m := uniqueDetail.FindStringSubmatch(pgErr.Detail)
	if m == nil {
		return &DuplicateValueError{Field: pgErr.ColumnName}
	}

	field, ok := columnFields[m[1]]
	if !ok {
		field = m[1]
	}

	return &DuplicateValueError{Field: field, Value: m[2]}
}

func checkViolationError(pgErr *pgconn.PgError) error {
	if c, ok := checkConstraints[pgErr.ConstraintName]; ok {
		return &c
	}
	return fmt.Errorf("%w: check constraint %s", ErrInvalidValue, pgErr.ConstraintName)
}
