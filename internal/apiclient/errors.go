package apiclient

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// HTTPError is a non-2xx response before normalization
type HTTPError struct {
	StatusCode int
	Status     string
	Body       []byte
	URL        string
	Method     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, e.Status)
}

// NormalizedError is the uniform shape every failed call is reduced to.
// Status is 0 when no HTTP response was received.
type NormalizedError struct {
	Status    int         `json:"status"`
	Message   string      `json:"message"`
	ErrorBody interface{} `json:"error,omitempty"`
	cause     error
}

// NewNormalizedError builds a NormalizedError that unwraps to cause
func NewNormalizedError(status int, message string, body interface{}, cause error) *NormalizedError {
	return &NormalizedError{Status: status, Message: message, ErrorBody: body, cause: cause}
}

func (e *NormalizedError) Error() string {
	return e.Message
}

func (e *NormalizedError) Unwrap() error {
	return e.cause
}

// AsNormalized extracts a NormalizedError from an error chain
func AsNormalized(err error) (*NormalizedError, bool) {
	var ne *NormalizedError
	if errors.As(err, &ne) {
		return ne, true
	}
	return nil, false
}

// AsHTTPError extracts an HTTPError from an error chain
func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}
