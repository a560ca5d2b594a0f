package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorKind separates retriable from fatal model-call failures
type ErrorKind string

const (
	// Transient failures (timeouts, rate limits, server errors) are
	// retried with backoff up to a bound
	Transient ErrorKind = "transient"

	// Permanent failures (bad request, auth, unknown model) fail the
	// record immediately
	Permanent ErrorKind = "permanent"
)

// InvocationError wraps a model-call failure with its kind
type InvocationError struct {
	Kind ErrorKind
	Err  error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("model invocation (%s): %v", e.Kind, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// NewTransient wraps an error as a retriable invocation failure
func NewTransient(err error) *InvocationError {
	return &InvocationError{Kind: Transient, Err: err}
}

// NewPermanent wraps an error as a fatal invocation failure
func NewPermanent(err error) *InvocationError {
	return &InvocationError{Kind: Permanent, Err: err}
}

// IsTransient reports whether err is a retriable invocation failure
func IsTransient(err error) bool {
	var inv *InvocationError
	if errors.As(err, &inv) {
		return inv.Kind == Transient
	}
	// Network-level timeouts without classification are worth a retry
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// classifyStatus maps an HTTP status code to an error kind
func classifyStatus(status int) ErrorKind {
	switch {
	case status == 408 || status == 429 || status >= 500:
		return Transient
	default:
		return Permanent
	}
}

// wrapStatus wraps an HTTP-level failure with the kind its status implies
func wrapStatus(status int, err error) *InvocationError {
	return &InvocationError{Kind: classifyStatus(status), Err: err}
}
