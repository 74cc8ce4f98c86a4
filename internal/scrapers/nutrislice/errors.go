package nutrislice

import "fmt"

// TransportError is a failed request or a non-2xx response.
type TransportError struct {
	Url    string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request %s: %v", e.Url, e.Err)
	}
	return fmt.Sprintf("request %s: unexpected status %d", e.Url, e.Status)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError is a response body that is not a week payload.
type ParseError struct {
	Url string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Url, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
