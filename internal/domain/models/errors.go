package models

import "errors"

// Upstream provider error taxonomy. All three are handled inside the quote
// service and mapped to the synthetic path; none escape to callers.

var (
	// ErrUnauthorized is returned when the provider rejects the credential.
	ErrUnauthorized = errors.New("provider unauthorized")

	// ErrNoData is returned when the provider answered with an empty payload.
	ErrNoData = errors.New("provider returned no data")
)

// NetworkError wraps a transport-level failure (timeout, connection refused).
type NetworkError struct {
	Op  string // operation that failed, e.g. "pricing"
	Err error
}

func (e *NetworkError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetworkError reports whether err is a transport-level failure.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
