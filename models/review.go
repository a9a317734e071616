package models

import "time"

// Review is a rating left by a user for a tour. A user may review a tour
// only once.
type Review struct {
	ID        int64         `json:"id"`
	Review    string        `json:"review"`
	Rating    float64       `json:"rating"`
	TourID    int64         `json:"tour"`
	UserID    int64         `json:"-"`
	User      *ReviewAuthor `json:"user,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

// ReviewAuthor is the public part of the user who wrote a review.
type ReviewAuthor struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

// ReviewRequest is the payload for creating a review. Tour may be omitted
// when the review is created through the nested tour route.
type ReviewRequest struct {
	Review string  `json:"review"`
	Rating float64 `json:"rating"`
	Tour   int64   `json:"tour"`
}

// ReviewUpdate is a partial review update. Nil fields are left untouched.
type ReviewUpdate struct {
	Review *string  `json:"review,omitempty"`
	Rating *float64 `json:"rating,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u ReviewUpdate) IsEmpty() bool {
	return u == ReviewUpdate{}
}
