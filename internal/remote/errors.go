package remote

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed remote call. Data-shape problems are not an error
// kind: malformed fields inside a successful response are absorbed by the
// normalize package instead of being propagated.
type Kind int

const (
	// KindNetwork means no usable response was received (dial failure,
	// timeout, broken connection, open circuit breaker).
	KindNetwork Kind = iota + 1
	// KindRequest covers 4xx responses and success=false envelopes.
	KindRequest
	// KindServer covers 5xx responses.
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindRequest:
		return "request"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by the Client. All mutation
// failures are recoverable: callers keep their last-known-good snapshot and
// surface the message.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote %s error: %s", e.Kind, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("remote %s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("remote %s error (status %d)", e.Kind, e.StatusCode)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the classification of err, or 0 when err did not come from
// the remote client.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the remote service, e.g. a
// line item already removed from another tab.
func IsNotFound(err error) bool {
	var re *Error
	return errors.As(err, &re) && re.StatusCode == http.StatusNotFound
}
