package domain

// Result is the outcome of a finished request: either a payload or an error
// message, never both. The zero value is an Ok holding the zero payload.
type Result[T any] struct {
	value   T
	message string
	failed  bool
}

// Ok wraps a successful payload.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Err builds a failed result carrying only a message.
func Err[T any](message string) Result[T] {
	return Result[T]{message: message, failed: true}
}

// IsErr reports whether the result is a failure.
func (r Result[T]) IsErr() bool { return r.failed }

// Value returns the payload; ok is false for failures.
func (r Result[T]) Value() (T, bool) {
	if r.failed {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Message returns the error message, empty for successes.
func (r Result[T]) Message() string { return r.message }
