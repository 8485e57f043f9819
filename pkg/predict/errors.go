package predict

import "errors"

var (
	// ErrInvalidInput is returned when Predict is called with an empty prefix.
	ErrInvalidInput = errors.New("invalid input")

	// ErrFormat is returned for malformed persisted records.
	ErrFormat = errors.New("malformed record")

	// ErrNotFound is returned when a persisted model or corpus source does not exist.
	ErrNotFound = errors.New("not found")
)
