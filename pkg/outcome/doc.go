// Package outcome provides a two-variant success/failure result type for
// boundaries where results are stored, forwarded, or transformed as values
// rather than handled inline as (T, error) pairs.
//
// An Outcome[T] holds either a success value of type T or a failure error,
// never both. Construct one with Ok, Err, or Of (which lifts a conventional
// Go return pair), and lower it back with Value:
//
//	o := outcome.Of(fetchBytes(ctx, url))
//	data, err := o.Value()
//
// The package also carries a JSON codec (Encode, Decode) for persisting
// typed values as byte payloads, and variant-selective transforms (Map,
// MapErr, FlatMap, FlatMapErr). Transforms run on the calling goroutine and
// complete before returning; the context parameter exists so transforms
// that perform I/O can honor cancellation.
package outcome
