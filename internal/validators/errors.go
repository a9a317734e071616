package validators

import (
	"errors"
	"strings"
)

var (
	ErrUnsupportedType  = errors.New("unsupported type for validation")
	ErrUnknownField     = errors.New("unknown field for validation")
	ErrNoFieldsToUpdate = errors.New("at least one field must be provided for update")

	ErrTourNameRequired        = errors.New("A tour must have a name")
	ErrTourNameTooLong         = errors.New("A tour name must have less or equal then 40 characters")
	ErrTourNameTooShort        = errors.New("A tour name must have more or equal then 10 characters")
	ErrTourDurationRequired    = errors.New("A tour must have a duration")
	ErrTourGroupSizeRequired   = errors.New("A tour must have a group size")
	ErrTourDifficultyRequired  = errors.New("A tour must have a difficulty")
	ErrTourDifficultyInvalid   = errors.New("Difficulty is either: easy, medium, difficult")
	ErrTourRatingTooLow        = errors.New("Rating must be above 1.0")
	ErrTourRatingTooHigh       = errors.New("Rating must be below 5.0")
	ErrTourPriceRequired       = errors.New("A tour must have a price")
	ErrTourDiscountAbovePrice  = errors.New("Discount price should be below regular price")
	ErrTourSummaryRequired     = errors.New("A tour must have a summary")
	ErrTourImageCoverRequired  = errors.New("A tour must have a cover image")
	ErrTourRatingsQtyNegative  = errors.New("Ratings quantity can not be negative")
	ErrTourDiscountNotPositive = errors.New("Discount price must be positive")

	ErrUserNameRequired          = errors.New("Please tell us your name!")
	ErrUserEmailRequired         = errors.New("Please provide your email")
	ErrUserEmailInvalid          = errors.New("Please provide a valid email")
	ErrUserPasswordRequired      = errors.New("Please provide a password")
	ErrUserPasswordTooShort      = errors.New("A password must have more or equal then 8 characters")
	ErrUserPasswordConfirmNeeded = errors.New("Please confirm your password")
	ErrUserPasswordsNotSame      = errors.New("Passwords are not the same!")
	ErrUserRoleInvalid           = errors.New("Role is either: user, guide, lead-guide, admin")

	ErrReviewRequired      = errors.New("Review can not be empty!")
	ErrReviewRatingInvalid = errors.New("Rating must be between 1 and 5")
	ErrReviewTourRequired  = errors.New("Review must belong to a tour.")
	ErrReviewUserRequired  = errors.New("Review must belong to a user")
)

// ValidationError collects every rule a value violates.
type ValidationError struct {
	Problems []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.Error())
	}
	return strings.Join(msgs, ". ")
}

// Unwrap exposes the individual problems to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	return e.Problems
}

// problems accumulates rule violations for a single Validate call.
type problems []error

func (p *problems) add(err error) {
	*p = append(*p, err)
}

func (p problems) err() error {
	if len(p) == 0 {
		return nil
	}
	return &ValidationError{Problems: p}
}
