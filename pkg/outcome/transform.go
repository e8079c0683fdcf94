package outcome

import "context"

// Map applies fn to the success value, producing an outcome of the mapped
// type. A failure passes through with its original error.
func Map[T, U any](ctx context.Context, o Outcome[T], fn func(context.Context, T) U) Outcome[U] {
	if !o.ok {
		return Err[U](o.Error())
	}
	return Ok(fn(ctx, o.value))
}

// MapErr applies fn to the failure error, leaving success outcomes
// untouched.
func MapErr[T any](ctx context.Context, o Outcome[T], fn func(context.Context, error) error) Outcome[T] {
	if o.ok {
		return o
	}
	return Err[T](fn(ctx, o.Error()))
}

// FlatMap applies fn to the success value; the transform may itself fail.
// A failure passes through with its original error.
func FlatMap[T, U any](ctx context.Context, o Outcome[T], fn func(context.Context, T) Outcome[U]) Outcome[U] {
	if !o.ok {
		return Err[U](o.Error())
	}
	return fn(ctx, o.value)
}

// FlatMapErr applies fn to the failure error; the transform may recover
// with a success. Success outcomes pass through untouched.
func FlatMapErr[T any](ctx context.Context, o Outcome[T], fn func(context.Context, error) Outcome[T]) Outcome[T] {
	if o.ok {
		return o
	}
	return fn(ctx, o.Error())
}
