package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-tours/models"
)

const (
	FieldName            = "name"
	FieldDuration        = "duration"
	FieldMaxGroupSize    = "maxGroupSize"
	FieldDifficulty      = "difficulty"
	FieldRatingsAverage  = "ratingsAverage"
	FieldRatingsQuantity = "ratingsQuantity"
	FieldPrice           = "price"
	FieldPriceDiscount   = "priceDiscount"
	FieldSummary         = "summary"
	FieldImageCover      = "imageCover"
)

const (
	tourNameMinLength = 10
	tourNameMaxLength = 40
)

var allowedDifficulties = []models.Difficulty{
	models.DifficultyEasy,
	models.DifficultyMedium,
	models.DifficultyDifficult,
}

var tourFields = []string{
	FieldName, FieldDuration, FieldMaxGroupSize, FieldDifficulty, FieldRatingsAverage,
	FieldRatingsQuantity, FieldPrice, FieldPriceDiscount, FieldSummary, FieldImageCover,
}

type TourValidator struct{}

func NewTourValidator() Validator {
	return &TourValidator{}
}

// Validate checks a [models.Tour] being created, or a [TourUpdateInput]
// describing a partial update. Updates only check the fields they carry.
func (v *TourValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Tour:
		return v.validateTour(ctx, value, fields...)
	case *models.Tour:
		return v.validateTour(ctx, *value, fields...)

	case TourUpdateInput:
		return v.validateTourUpdate(ctx, value)
	case *TourUpdateInput:
		return v.validateTourUpdate(ctx, *value)

	default:
		return ErrUnsupportedType
	}
}

// TourUpdateInput pairs a partial update with the tour it applies to, so
// cross-field rules like the price discount can see both values.
type TourUpdateInput struct {
	Current models.Tour
	Update  models.TourUpdate
}

func (v *TourValidator) validateTour(_ context.Context, tour models.Tour, fields ...string) error {
	if len(fields) == 0 {
		fields = tourFields
	}

	var p problems
	for _, f := range fields {
		switch f {
		case FieldName:
			name := strings.TrimSpace(tour.Name)
			switch n := utf8.RuneCountInString(name); {
			case n == 0:
				p.add(ErrTourNameRequired)
			case n > tourNameMaxLength:
				p.add(ErrTourNameTooLong)
			case n < tourNameMinLength:
				p.add(ErrTourNameTooShort)
			}
		case FieldDuration:
			if tour.Duration <= 0 {
				p.add(ErrTourDurationRequired)
			}
		case FieldMaxGroupSize:
			if tour.MaxGroupSize <= 0 {
				p.add(ErrTourGroupSizeRequired)
			}
		case FieldDifficulty:
			switch {
			case tour.Difficulty == "":
				p.add(ErrTourDifficultyRequired)
			case !isAllowedDifficulty(tour.Difficulty):
				p.add(ErrTourDifficultyInvalid)
			}
		case FieldRatingsAverage:
			switch {
			case tour.RatingsAverage < 1:
				p.add(ErrTourRatingTooLow)
			case tour.RatingsAverage > 5:
				p.add(ErrTourRatingTooHigh)
			}
		case FieldRatingsQuantity:
			if tour.RatingsQuantity < 0 {
				p.add(ErrTourRatingsQtyNegative)
			}
		case FieldPrice:
			if tour.Price <= 0 {
				p.add(ErrTourPriceRequired)
			}
		case FieldPriceDiscount:
			if tour.PriceDiscount == nil {
				continue
			}
			if *tour.PriceDiscount < 0 {
				p.add(ErrTourDiscountNotPositive)
			} else if *tour.PriceDiscount >= tour.Price {
				p.add(ErrTourDiscountAbovePrice)
			}
		case FieldSummary:
			if strings.TrimSpace(tour.Summary) == "" {
				p.add(ErrTourSummaryRequired)
			}
		case FieldImageCover:
			if strings.TrimSpace(tour.ImageCover) == "" {
				p.add(ErrTourImageCoverRequired)
			}
		default:
			return ErrUnknownField
		}
	}

	return p.err()
}

func (v *TourValidator) validateTourUpdate(ctx context.Context, in TourUpdateInput) error {
	if in.Update.IsEmpty() {
		return ErrNoFieldsToUpdate
	}

	merged, fields := ApplyTourUpdate(in.Current, in.Update)
	return v.validateTour(ctx, merged, fields...)
}

// ApplyTourUpdate returns the tour with the update applied and the names of
// the validated fields the update touched.
func ApplyTourUpdate(t models.Tour, u models.TourUpdate) (models.Tour, []string) {
	fields := make([]string, 0, len(tourFields))

	if u.Name != nil {
		t.Name = *u.Name
		fields = append(fields, FieldName)
	}
	if u.Duration != nil {
		t.Duration = *u.Duration
		fields = append(fields, FieldDuration)
	}
	if u.MaxGroupSize != nil {
		t.MaxGroupSize = *u.MaxGroupSize
		fields = append(fields, FieldMaxGroupSize)
	}
	if u.Difficulty != nil {
		t.Difficulty = *u.Difficulty
		fields = append(fields, FieldDifficulty)
	}
	if u.RatingsAverage != nil {
		t.RatingsAverage = *u.RatingsAverage
		fields = append(fields, FieldRatingsAverage)
	}
	if u.RatingsQuantity != nil {
		t.RatingsQuantity = *u.RatingsQuantity
		fields = append(fields, FieldRatingsQuantity)
	}
	if u.Price != nil {
		t.Price = *u.Price
		fields = append(fields, FieldPrice)
	}
	if u.PriceDiscount != nil {
		t.PriceDiscount = u.PriceDiscount
	}
	if u.PriceDiscount != nil || u.Price != nil {
		fields = append(fields, FieldPriceDiscount)
	}
	if u.Summary != nil {
		t.Summary = *u.Summary
		fields = append(fields, FieldSummary)
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.ImageCover != nil {
		t.ImageCover = *u.ImageCover
		fields = append(fields, FieldImageCover)
	}
	if u.Images != nil {
		t.Images = *u.Images
	}
	if u.StartDates != nil {
		t.StartDates = *u.StartDates
	}
	if u.SecretTour != nil {
		t.SecretTour = *u.SecretTour
	}

	return t, fields
}

func isAllowedDifficulty(d models.Difficulty) bool {
	for _, a := range allowedDifficulties {
		if d == a {
			return true
		}
	}
	return false
}
