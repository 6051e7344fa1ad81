package models

import "fmt"

// MaxRating is the highest star rating.
const MaxRating = 5

// Rating is a star rating in [0, MaxRating].
type Rating int

// NewRating rejects values outside [0, MaxRating].
func NewRating(v int) (Rating, error) {
	if v < 0 || v > MaxRating {
		return 0, fmt.Errorf("rating must be between 0 and %d (got %d)", MaxRating, v)
	}
	return Rating(v), nil
}

// ClampRating forces v into [0, MaxRating]. Used for data read back from a
// store, never for user input.
func ClampRating(v int) Rating {
	switch {
	case v < 0:
		return 0
	case v > MaxRating:
		return MaxRating
	default:
		return Rating(v)
	}
}

// Int returns the underlying value.
func (r Rating) Int() int {
	return int(r)
}
