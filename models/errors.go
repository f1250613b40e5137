package models

import (
	"errors"
	"fmt"
)

// FetchError means the remote call itself failed: network unreachable,
// timeout elapsed, or a non-success HTTP status. It is recoverable — the
// pipeline returns an empty table and the process keeps running.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch error: %v", e.Err) }

func (e *FetchError) Unwrap() error { return e.Err }

// ProcessingError means the response body could not be interpreted as
// tabular data, or a structural assumption failed while shaping it.
// Like FetchError it is recoverable.
type ProcessingError struct {
	Err error
}

func (e *ProcessingError) Error() string { return fmt.Sprintf("processing error: %v", e.Err) }

func (e *ProcessingError) Unwrap() error { return e.Err }

// ErrorKind classifies an error from the pipeline as "FetchError",
// "ProcessingError", or "" for nil/unclassified errors.
func ErrorKind(err error) string {
	var fe *FetchError
	if errors.As(err, &fe) {
		return "FetchError"
	}
	var pe *ProcessingError
	if errors.As(err, &pe) {
		return "ProcessingError"
	}
	return ""
}
