package codec

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedBody   = errors.New("malformed json body")
	ErrMissingField    = errors.New("missing required field")
	ErrFieldType       = errors.New("unexpected field type")
	ErrTimestampFormat = errors.New("timestamp is not an offset date-time")
)

// DecodeError reports why a wire payload could not be turned into a snapshot.
// Key is the wire key involved, empty when the body itself is unreadable.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("decode hyper-stat: %v", e.Err)
	}
	return fmt.Sprintf("decode hyper-stat %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
