package api

import (
	"fmt"
)

// TransportError wraps a connectivity-class failure (DNS, refused connection,
// timeout). These are the only errors the retry loop considers transient by
// default.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError is a completed HTTP exchange with a non-2xx status. The body is
// kept so callers can surface the backend's error message.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Code, e.Body)
}
