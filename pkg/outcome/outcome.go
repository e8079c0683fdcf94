package outcome

import "errors"

// ErrEmpty is reported by the zero Outcome and by failures constructed from
// a nil error.
var ErrEmpty = errors.New("outcome: empty outcome")

// Outcome is a two-variant result holding either a success value or a
// failure error. The zero value is a failure reporting ErrEmpty.
type Outcome[T any] struct {
	value T
	err   error
	ok    bool
}

// Ok returns a success outcome wrapping v.
func Ok[T any](v T) Outcome[T] {
	return Outcome[T]{value: v, ok: true}
}

// Err returns a failure outcome wrapping err.
func Err[T any](err error) Outcome[T] {
	return Outcome[T]{err: err}
}

// Of lifts a conventional Go return pair into an Outcome. A nil error
// produces a success.
func Of[T any](v T, err error) Outcome[T] {
	if err != nil {
		return Err[T](err)
	}
	return Ok(v)
}

// IsOk reports whether the outcome holds a success value.
func (o Outcome[T]) IsOk() bool {
	return o.ok
}

// Error returns the failure error, or nil for a success outcome.
func (o Outcome[T]) Error() error {
	if o.ok {
		return nil
	}
	if o.err == nil {
		return ErrEmpty
	}
	return o.err
}

// Value lowers the outcome back to a conventional Go return pair. For a
// failure outcome the value is the zero T.
func (o Outcome[T]) Value() (T, error) {
	return o.value, o.Error()
}

// Fold invokes exactly one of the two handlers based on the variant. A nil
// handler for the matching variant is a no-op.
func (o Outcome[T]) Fold(onValue func(T), onErr func(error)) {
	if o.ok {
		if onValue != nil {
			onValue(o.value)
		}
		return
	}
	if onErr != nil {
		onErr(o.Error())
	}
}

// Send forwards the outcome into ch without blocking and reports whether it
// was delivered. When no receiver is ready and the channel buffer is full
// the outcome is dropped; callers ignoring the report do so deliberately.
func (o Outcome[T]) Send(ch chan<- Outcome[T]) bool {
	select {
	case ch <- o:
		return true
	default:
		return false
	}
}
