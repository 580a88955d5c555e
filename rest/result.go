package rest

// Result is the uniform success-or-failure envelope returned to every call
// site. Exactly one of content and failure is present. A Result is built once
// per logical operation and is immutable afterwards.
type Result[T any] struct {
	content *T
	failure *ErrorInfo
}

// Success wraps a deserialized payload in a non-faulted envelope
func Success[T any](content T) Result[T] {
	return Result[T]{content: &content}
}

// Failure wraps a terminal failure in a faulted envelope
func Failure[T any](failure *ErrorInfo) Result[T] {
	if failure == nil {
		failure = NewUnknownError("failure constructed without error info", nil)
	}
	return Result[T]{failure: failure}
}

// IsFaulted reports whether the operation failed
func (r Result[T]) IsFaulted() bool {
	return r.failure != nil
}

// Failure returns the captured failure, or nil on success
func (r Result[T]) Failure() *ErrorInfo {
	return r.failure
}

// Content returns the success payload and whether it is present. A faulted
// envelope yields the zero value and false.
func (r Result[T]) Content() (T, bool) {
	if r.content == nil {
		var zero T
		return zero, false
	}
	return *r.content, true
}

// Unwrap returns the success payload, or surfaces the captured failure as an
// error. A faulted envelope never yields a usable payload: callers cannot
// observe a "successful" zero value when the operation actually failed.
func (r Result[T]) Unwrap() (T, error) {
	if r.failure != nil {
		var zero T
		return zero, r.failure
	}
	if r.content == nil {
		// Zero-valued Result, not produced by Success or Failure
		var zero T
		return zero, NewUnknownError("empty result envelope", nil)
	}
	return *r.content, nil
}
