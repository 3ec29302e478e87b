package learning

import "errors"

var (
	// ErrNotFound means no progress record exists for the (user, word) pair
	ErrNotFound = errors.New("progress record not found")
	// ErrUnknownWord means the word id is not in the catalogue
	ErrUnknownWord = errors.New("word not found in catalogue")
	// ErrInvalidStatus means the status value is not a known learning status
	ErrInvalidStatus = errors.New("invalid learning status")
	// ErrInvalidRating means the rating value is not a known difficulty rating
	ErrInvalidRating = errors.New("invalid difficulty rating")
)
