package dataset

import (
	"errors"
	"fmt"
)

// ErrDataUnavailable matches every load failure.
var ErrDataUnavailable = errors.New("data unavailable")

// UnavailableError reports a resource that could not be loaded.
type UnavailableError struct {
	Name string
	Err  error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("dataset %s unavailable: %v", e.Name, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Is matches ErrDataUnavailable.
func (e *UnavailableError) Is(target error) bool {
	return target == ErrDataUnavailable
}
