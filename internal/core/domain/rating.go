package domain

import "fmt"

// Rating is a content rating tier
type Rating string

const (
	RatingER    Rating = "ER"
	RatingL     Rating = "L"
	RatingAge10 Rating = "AGE_10"
	RatingAge12 Rating = "AGE_12"
	RatingAge14 Rating = "AGE_14"
	RatingAge16 Rating = "AGE_16"
	RatingAge18 Rating = "AGE_18"
)

// IsValid reports whether r belongs to the rating enumeration
func (r Rating) IsValid() bool {
	switch r {
	case RatingER, RatingL, RatingAge10, RatingAge12, RatingAge14, RatingAge16, RatingAge18:
		return true
	default:
		return false
	}
}

// ParseRating parses a rating against the closed set
func ParseRating(s string) (Rating, error) {
	r := Rating(s)
	if !r.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRating, s)
	}
	return r, nil
}
