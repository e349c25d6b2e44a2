package domain

import (
	"math"
	"time"
)

// Review represents one user review of a school, including its section
// breakdown. A soft-deleted review keeps its row but carries DeletedAt.
type Review struct {
	ID             string
	SchoolURN      int
	UserID         string
	Title          string
	Body           string
	Rating         *float64
	RatingComputed *float64
	Sections       []ReviewSection
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

// ReviewSection rates one dimension of a review. Rating is 1-5 in half
// steps when present; Comment may be empty.
type ReviewSection struct {
	SectionKey string
	Rating     *float64
	Comment    string
}

// EffectiveRating resolves the single usable rating of a review with the
// precedence computed -> raw -> derived from section ratings. Non-finite
// values are treated as absent. Returns nil when none of the three yields
// a finite numeric value.
func EffectiveRating(review Review) *float64 {
	if value := finiteRating(review.RatingComputed); value != nil {
		return value
	}
	if value := finiteRating(review.Rating); value != nil {
		return value
	}

	sum := 0.0
	count := 0
	for _, section := range review.Sections {
		rating := finiteRating(section.Rating)
		if rating == nil {
			continue
		}
		sum += *rating
		count++
	}
	if count == 0 {
		return nil
	}
	derived := sum / float64(count)
	return &derived
}

// finiteRating copies a rating pointer, dropping nil, NaN, and infinite
// values. Persisted documents can carry non-finite floats; they must not
// poison aggregate means.
func finiteRating(value *float64) *float64 {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return nil
	}
	rating := *value
	return &rating
}
