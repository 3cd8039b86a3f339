package pagination

import "errors"

var (
	// ErrInvalidPage is returned for page values below 1.
	ErrInvalidPage = errors.New("page must be a positive integer")
	// ErrInvalidLimit is returned for limit values below 1.
	ErrInvalidLimit = errors.New("limit must be a positive integer")
)
