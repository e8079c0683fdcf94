package outcome

import (
	"encoding/json"
	"errors"
)

var (
	// ErrEncode wraps JSON marshaling failures from Encode.
	ErrEncode = errors.New("outcome: encode failed")

	// ErrDecode wraps JSON unmarshaling failures from Decode.
	ErrDecode = errors.New("outcome: decode failed")
)

// Encode serializes v to JSON bytes.
func Encode[T any](v T) Outcome[[]byte] {
	data, err := json.Marshal(v)
	if err != nil {
		return Err[[]byte](errors.Join(ErrEncode, err))
	}
	return Ok(data)
}

// Decode parses the byte payload of a success outcome into a T. A failure
// outcome passes through with its original error; a parse failure yields a
// failure wrapping ErrDecode.
func Decode[T any](o Outcome[[]byte]) Outcome[T] {
	data, err := o.Value()
	if err != nil {
		return Err[T](err)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return Err[T](errors.Join(ErrDecode, err))
	}
	return Ok(v)
}
