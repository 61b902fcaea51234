package dashboard

import (
	"errors"
	"fmt"
)

// Origin identifies which path produced a Result.
type Origin string

const (
	OriginLive     Origin = "live"
	OriginFallback Origin = "fallback"
	OriginStatic   Origin = "static"
)

// ErrNoData is returned when both the live and the fallback path fail.
var ErrNoData = errors.New("no data available")

// Result is a panel value and how it was obtained.
type Result[T any] struct {
	Value  T
	Origin Origin
	// Warning is set when the fallback was used.
	Warning string
	// Cause is the live failure that triggered the fallback.
	Cause error
}

// OrElse runs live and, only if it fails, fallback. The returned error wraps
// both failures and ErrNoData.
func OrElse[T any](live func() (T, error), fallback func() (T, error)) (Result[T], error) {
	v, liveErr := live()
	if liveErr == nil {
		return Result[T]{Value: v, Origin: OriginLive}, nil
	}

	fb, fbErr := fallback()
	if fbErr != nil {
		var zero Result[T]
		return zero, fmt.Errorf("%w: live: %w; fallback: %w", ErrNoData, liveErr, fbErr)
	}
	return Result[T]{
		Value:   fb,
		Origin:  OriginFallback,
		Warning: "Live fetch failed or rate limited. Showing fallback snapshot.",
		Cause:   liveErr,
	}, nil
}

// Static wraps a value loaded from a bundled resource.
func Static[T any](v T) Result[T] {
	return Result[T]{Value: v, Origin: OriginStatic}
}

// Map transforms the value, keeping origin and warning.
func Map[T, U any](r Result[T], fn func(T) (U, error)) (Result[U], error) {
	u, err := fn(r.Value)
	if err != nil {
		return Result[U]{}, err
	}
	return Result[U]{Value: u, Origin: r.Origin, Warning: r.Warning, Cause: r.Cause}, nil
}
