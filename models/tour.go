// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"math"
	"strings"
	"time"
	"unicode"
)

// Difficulty is the difficulty level of a tour.
type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyMedium    Difficulty = "medium"
	DifficultyDifficult Difficulty = "difficult"
)

// DefaultRatingsAverage is assigned to tours that have no reviews yet.
const DefaultRatingsAverage = 4.5

// Tour is a bookable tour offered by the agency.
//
// Secret tours are stored like any other tour but are never returned by
// read or aggregate operations.
type Tour struct {
	ID              int64       `json:"id"`
	Name            string      `json:"name"`
	Slug            string      `json:"slug"`
	Duration        int         `json:"duration"`
	MaxGroupSize    int         `json:"maxGroupSize"`
	Difficulty      Difficulty  `json:"difficulty"`
	RatingsAverage  float64     `json:"ratingsAverage"`
	RatingsQuantity int         `json:"ratingsQuantity"`
	Price           float64     `json:"price"`
	PriceDiscount   *float64    `json:"priceDiscount,omitempty"`
	Summary         string      `json:"summary"`
	Description     string      `json:"description,omitempty"`
	ImageCover      string      `json:"imageCover"`
	Images          []string    `json:"images"`
	StartDates      []time.Time `json:"startDates"`
	SecretTour      bool        `json:"secretTour"`

	// CreatedAt is used for default ordering and is never sent to clients.
	CreatedAt time.Time `json:"-"`
}

// DurationWeeks is the tour duration expressed in weeks.
func (t Tour) DurationWeeks() float64 {
	return float64(t.Duration) / 7
}

// MarshalJSON adds the virtual durationWeeks field to the tour representation.
func (t Tour) MarshalJSON() ([]byte, error) {
	type tourFields Tour
	return json.Marshal(struct {
		tourFields
		DurationWeeks float64 `json:"durationWeeks"`
	}{
		tourFields:    tourFields(t),
		DurationWeeks: t.DurationWeeks(),
	})
}

// TourUpdate is a partial tour update. Nil fields are left untouched.
type TourUpdate struct {
	Name            *string      `json:"name,omitempty"`
	Duration        *int         `json:"duration,omitempty"`
	MaxGroupSize    *int         `json:"maxGroupSize,omitempty"`
	Difficulty      *Difficulty  `json:"difficulty,omitempty"`
	RatingsAverage  *float64     `json:"ratingsAverage,omitempty"`
	RatingsQuantity *int         `json:"ratingsQuantity,omitempty"`
	Price           *float64     `json:"price,omitempty"`
	PriceDiscount   *float64     `json:"priceDiscount,omitempty"`
	Summary         *string      `json:"summary,omitempty"`
	Description     *string      `json:"description,omitempty"`
	ImageCover      *string      `json:"imageCover,omitempty"`
	Images          *[]string    `json:"images,omitempty"`
	StartDates      *[]time.Time `json:"startDates,omitempty"`
	SecretTour      *bool        `json:"secretTour,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u TourUpdate) IsEmpty() bool {
	return u == TourUpdate{}
}

// TourStats is one group of the tour statistics aggregate.
type TourStats struct {
	Difficulty string  `json:"_id"`
	NumTours   int     `json:"numTours"`
	NumRatings int     `json:"numRatings"`
	AvgRating  float64 `json:"avgRating"`
	AvgPrice   float64 `json:"avgPrice"`
	MinPrice   float64 `json:"minPrice"`
	MaxPrice   float64 `json:"maxPrice"`
}

// MonthlyPlan lists the tours starting in a given month.
type MonthlyPlan struct {
	Month         int      `json:"month"`
	NumTourStarts int      `json:"numTourStarts"`
	Tours         []string `json:"tours"`
}

// Slugify turns a tour name into a lower-case, dash separated URL slug.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// RoundRating rounds a rating average to one decimal place.
func RoundRating(v float64) float64 {
	return math.Round(v*10) / 10
}
