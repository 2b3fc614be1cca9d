package service

// Attempt is the outcome of a best-effort step. Either Value holds the
// result or Skipped says why the step produced nothing. Callers decide
// whether a skipped step matters; helpers never swallow the reason.
type Attempt[T any] struct {
	Value   T
	Skipped error
}

// Done wraps a successful result.
func Done[T any](v T) Attempt[T] {
	return Attempt[T]{Value: v}
}

// Skip records why a best-effort step produced nothing.
func Skip[T any](reason error) Attempt[T] {
	return Attempt[T]{Skipped: reason}
}

// OK reports whether the step produced a value.
func (a Attempt[T]) OK() bool {
	return a.Skipped == nil
}

// Or returns the value, or fallback if the step was skipped.
func (a Attempt[T]) Or(fallback T) T {
	if a.Skipped != nil {
		return fallback
	}
	return a.Value
}
