package utils

import "time"

func PtrTo[T any](v T) *T {
	return &v
}

// ValueOrZero dereferences v, returning the zero value of T when v is nil.
func ValueOrZero[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}

	return *v
}

// MapTime applies fn to t when it is set.
func MapTime[T any](t *time.Time, fn func(time.Time) T) *T {
	if t == nil {
		return nil
	}

	return PtrTo(fn(*t))
}
