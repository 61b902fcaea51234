package live

import (
	"errors"
	"fmt"
)

var (
	// ErrLiveFetchFailed matches every *FetchError.
	ErrLiveFetchFailed = errors.New("live fetch failed")

	// ErrInvalidParams is returned before any I/O for an empty parameter set.
	ErrInvalidParams = errors.New("invalid parameters")

	// ErrMalformedPayload wraps responses that do not have the expected shape.
	ErrMalformedPayload = errors.New("malformed payload")
)

// FetchError wraps a transport error, a non-2xx status or a payload mismatch.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: live fetch failed: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is matches ErrLiveFetchFailed.
func (e *FetchError) Is(target error) bool {
	return target == ErrLiveFetchFailed
}

// StatusError is a non-2xx HTTP response.
type StatusError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http status %d: %s", e.StatusCode, e.Message)
}

// RateLimited reports whether the provider throttled the request.
func (e *StatusError) RateLimited() bool {
	return e.StatusCode == 429
}
