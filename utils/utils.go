package utils

import "io"

func Map[A any, B any](input []A, mapper func(A) B) []B {
	output := make([]B, len(input))
	for i, item := range input {
		output[i] = mapper(item)
	}
	return output
}

func Any[A any](input []A, predicate func(A) bool) bool {
	for _, item := range input {
		if predicate(item) {
			return true
		}
	}
	return false
}

func Contains[A comparable](input []A, item A) bool {
	for _, i := range input {
		if i == item {
			return true
		}
	}
	return false
}

// Closer returns a func for defer that ignores the close error.
func Closer(c io.Closer) func() {
	return func() {
		_ = c.Close()
	}
}

// Clamp bounds a requested page size; non-positive values fall back to def.
func Clamp(value, def, max int) int {
	if value <= 0 {
		return def
	}
	if value > max {
		return max
	}
	return value
}
