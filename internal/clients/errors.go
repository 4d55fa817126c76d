package clients

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	json "github.com/goccy/go-json"
)

// ErrUpstream is the umbrella category for every failed Open API call:
// transport failures, non-2xx statuses and undecodable bodies all match it
// with errors.Is. Use errors.As with the concrete types to tell them apart.
var ErrUpstream = errors.New("nexon open api call failed")

// ErrMissingParameter is returned before any network I/O when a required
// input is empty.
var ErrMissingParameter = errors.New("missing request parameter")

const maxErrorBodySize = 4 << 10

type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("nexon %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrUpstream }

// Timeout reports whether the call gave up waiting rather than being refused.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// StatusError is a non-2xx answer from the Open API. UpstreamName and
// UpstreamMessage are filled from the {"error":{"name","message"}} envelope
// when the body carries one.
type StatusError struct {
	StatusCode      int
	Body            []byte
	UpstreamName    string
	UpstreamMessage string
}

func newStatusError(code int, body []byte) *StatusError {
	if len(body) > maxErrorBodySize {
		body = body[:maxErrorBodySize]
	}
	e := &StatusError{StatusCode: code, Body: body}

	var envelope struct {
		Error struct {
			Name    string `json:"name"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil {
		e.UpstreamName = envelope.Error.Name
		e.UpstreamMessage = envelope.Error.Message
	}
	return e
}

func (e *StatusError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "nexon open api returned status %d", e.StatusCode)
	if e.UpstreamName != "" {
		fmt.Fprintf(&b, " (%s: %s)", e.UpstreamName, e.UpstreamMessage)
	}
	return b.String()
}

func (e *StatusError) Is(target error) bool { return target == ErrUpstream }
