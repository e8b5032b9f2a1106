package client

import "fmt"

// APIError is a request rejected by the backend with a non-2xx status.
// Message carries the backend's human-readable message verbatim when the
// error body had one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request rejected (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request rejected (status %d)", e.StatusCode)
}

// DecodeError is a response body that was not valid JSON where JSON was
// expected. It is surfaced to the user the same way as a transport error.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
