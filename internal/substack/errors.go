package substack

import "fmt"

// StatusError means the endpoint was reached but answered outside the
// 2xx range.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected response: %s", e.Status)
}

// ParseError means the response body did not match the expected
// record shape.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("decoding response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
