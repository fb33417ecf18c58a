// pkg/clients/errors.go
package clients

import (
	"context"
	"errors"
	"fmt"

	"github.com/rovshanmuradov/xrpl-sdk/pkg/models"
)

var (
	// ErrRequestFailure is matched by every failed request, whether the node
	// rejected it or it never reached a node.
	ErrRequestFailure = errors.New("request failed")

	// ErrNoActiveClients is wrapped in a *TransportError when a Pool has no
	// node to send a request to.
	ErrNoActiveClients = errors.New("no active ledger clients available")

	// ErrClientClosed is returned for requests on a closed client.
	ErrClientClosed = errors.New("client closed")
)

// RequestFailure is a request the node answered with an error.
type RequestFailure struct {
	Method       string
	Code         string
	Message      string
	EngineResult string
	Response     *models.Response
}

func (e *RequestFailure) Error() string {
	msg := fmt.Sprintf("%s failed", e.Method)
	if e.Code != "" {
		msg += ": " + e.Code
	}
	if e.EngineResult != "" {
		msg += " (" + e.EngineResult + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *RequestFailure) Is(target error) bool {
	return target == ErrRequestFailure
}

// NewRequestFailure builds a RequestFailure from a node error response.
func NewRequestFailure(method string, resp *models.Response) *RequestFailure {
	f := &RequestFailure{
		Method:   method,
		Code:     resp.ErrorCode(),
		Message:  resp.ErrorMessage(),
		Response: resp,
	}
	if resp != nil {
		f.EngineResult, _ = resp.Result["engine_result"].(string)
	}
	return f
}

// TransportError is a request that failed before a node could answer it.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("%s: %v", e.Method, e.Err)
	}
	return fmt.Sprintf("%s at %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrRequestFailure
}

// Node errors that clear up on their own.
var retryableCodes = map[string]bool{
	"tooBusy":   true,
	"slowDown":  true,
	"noNetwork": true,
	"noCurrent": true,
	"noClosed":  true,
}

// IsRetryable reports whether err is worth retrying: transport failures and
// node errors signalling a temporarily unavailable server. Context
// cancellation is never retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return !errors.Is(transportErr.Err, ErrClientClosed)
	}

	var failure *RequestFailure
	if errors.As(err, &failure) {
		return retryableCodes[failure.Code]
	}
	return false
}
