package util

import (
	"golang.org/x/exp/constraints"
)

// Coerce returns a value that is at least min and at most max, otherwise value
func Coerce[T constraints.Ordered](value T, min T, max T) T {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}
