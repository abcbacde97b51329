package service

import (
	"errors"
	"fmt"
)

// ErrNullBody is the cause of a DecodeError for a literal JSON null payload.
var ErrNullBody = errors.New("response body is null")

// DecodeError reports a response body that could not be decoded into the
// expected payload shape, or that decoded into an incomplete payload.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
