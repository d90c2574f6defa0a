package hevy

import (
	"errors"
	"fmt"
)

// ErrFetch matches every error returned by the client.
var ErrFetch = errors.New("hevy fetch failed")

type ErrorKind string

const (
	// KindTransport covers network, DNS, TLS and timeout failures.
	KindTransport ErrorKind = "transport"
	// KindAuth means every auth header variant was rejected with 401.
	KindAuth ErrorKind = "auth"
	// KindStatus is any other non 2xx response.
	KindStatus ErrorKind = "status"
	// KindMalformed is a body that is not JSON or not of the expected shape.
	KindMalformed ErrorKind = "malformed"
)

type FetchError struct {
	Kind       ErrorKind
	Path       string
	StatusCode int
	// Body is a short excerpt of the upstream response, if any.
	Body string
	Err  error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("hevy %s %s", e.Kind, e.Path)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" [%d]", e.StatusCode)
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

const maxErrorBodyLen = 256

func excerpt(body []byte) string {
	if len(body) > maxErrorBodyLen {
		return string(body[:maxErrorBodyLen]) + "..."
	}
	return string(body)
}
