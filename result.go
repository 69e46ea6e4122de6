package errchan

// Result is the tagged outcome of a fallible operation: exactly one of a
// success value or an error channel, never both and never neither. It can
// only be constructed through OK or Fail, which is what enforces the
// exactly-one property.
type Result[T any] struct {
	value T
	err   *Error
	ok    bool
}

// OK wraps a success value.
func OK[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// Fail wraps a failure. A nil error is coerced to an internal error so the
// failure variant always carries a readable message.
func Fail[T any](e *Error) Result[T] {
	if e == nil {
		e = New("failure with no diagnostic")
	}
	return Result[T]{err: e}
}

// OK reports whether the result holds a success value.
func (r Result[T]) OK() bool {
	return r.ok
}

// Unpack returns the value and the error channel; exactly one is
// meaningful. The zero Result unpacks as a failure, not as a silent
// success.
func (r Result[T]) Unpack() (T, *Error) {
	if r.ok {
		return r.value, nil
	}
	return r.value, r.failure()
}

// Err returns the error channel for a failed result, nil for a success.
func (r Result[T]) Err() *Error {
	if r.ok {
		return nil
	}
	return r.failure()
}

// Must returns the success value and panics on a failed result. Use only
// where failure is a programming error.
func (r Result[T]) Must() T {
	if !r.ok {
		panic("errchan: Must on failed result: " + r.failure().Text())
	}
	return r.value
}

func (r Result[T]) failure() *Error {
	if r.err != nil {
		return r.err
	}
	// Zero-value Result: neither variant was ever set. Surface it as a
	// failure with an explicit message rather than a nil error.
	return New("uninitialized result")
}
