package pathcodec

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCharacter = errors.New("invalid character")
	ErrTruncated        = errors.New("truncated input")
	// ErrOverflow is returned for a digit group that does not fit in 63 bits.
	ErrOverflow = errors.New("digit group overflows 63 bits")
)

// DecodeError reports where decoding stopped. Err is one of the sentinel errors above.
type DecodeError struct {
	Offset int
	Char   byte
	Err    error
}

func (e *DecodeError) Error() string {
	switch {
	case errors.Is(e.Err, ErrInvalidCharacter):
		return fmt.Sprintf("pathcodec: %v %q at offset %d", e.Err, e.Char, e.Offset)
	case errors.Is(e.Err, ErrTruncated):
		return fmt.Sprintf("pathcodec: %v, digit group starting at offset %d is not terminated", e.Err, e.Offset)
	default:
		return fmt.Sprintf("pathcodec: %v at offset %d", e.Err, e.Offset)
	}
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
