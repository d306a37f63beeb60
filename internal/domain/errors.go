package domain

import "errors"

// Common domain errors returned by evaluation operations.
var (
	// ErrNilDocument indicates a nil document was passed where a value
	// is required.
	ErrNilDocument = errors.New("document is nil")

	// ErrMalformedDocument indicates an input document does not follow
	// the structured-document shape at all. This is a fatal
	// precondition failure for a single run.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrInvalidModelKey indicates a model key string could not be
	// parsed into a (provider, model id) pair.
	ErrInvalidModelKey = errors.New("invalid model key")
)
