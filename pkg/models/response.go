// pkg/models/response.go
package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ResponseStatus is the status a node attaches to every reply.
type ResponseStatus string

const (
	ResponseStatusSuccess ResponseStatus = "success"
	ResponseStatusError   ResponseStatus = "error"
)

// ErrEmptyResult is returned when a node reply carries no result object.
var ErrEmptyResult = errors.New("empty result")

// Request is anything that can be sent to a ledger node. The value itself is
// marshalled as the request parameters.
type Request interface {
	Method() string
}

// Response is a node reply, transport independent. Result keeps the decoded
// result object for ad-hoc access; DecodeResult decodes it into a typed value.
type Response struct {
	Status ResponseStatus
	Result map[string]any
	raw    json.RawMessage
}

// ParseResult builds a Response from a result object as returned over
// JSON-RPC, where the status is carried inside the result.
func ParseResult(raw json.RawMessage) (*Response, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, ErrEmptyResult
	}
	var result map[string]any
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}

	status := ResponseStatusSuccess
	if s, ok := result["status"].(string); ok && s != "" {
		status = ResponseStatus(s)
	}
	if _, hasErr := result["error"]; hasErr {
		status = ResponseStatusError
	}

	return &Response{
		Status: status,
		Result: result,
		raw:    append(json.RawMessage(nil), raw...),
	}, nil
}

// NewResponse marshals result and wraps it into a Response with the given status.
func NewResponse(status ResponseStatus, result any) (*Response, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	resp, err := ParseResult(raw)
	if err != nil {
		return nil, err
	}
	resp.Status = status
	return resp, nil
}

// IsSuccessful reports whether the node accepted the request.
func (r *Response) IsSuccessful() bool {
	return r != nil && r.Status == ResponseStatusSuccess
}

// ErrorCode returns the node error token (e.g. "txnNotFound"), if any.
func (r *Response) ErrorCode() string {
	if r == nil {
		return ""
	}
	code, _ := r.Result["error"].(string)
	return code
}

// ErrorMessage returns the human readable error message, if any.
func (r *Response) ErrorMessage() string {
	if r == nil {
		return ""
	}
	if msg, ok := r.Result["error_message"].(string); ok {
		return msg
	}
	msg, _ := r.Result["error_exception"].(string)
	return msg
}

// DecodeResult decodes the raw result object into v.
func (r *Response) DecodeResult(v any) error {
	if r == nil || len(r.raw) == 0 {
		return ErrEmptyResult
	}
	return json.Unmarshal(r.raw, v)
}

// Raw returns a copy of the raw result object.
func (r *Response) Raw() json.RawMessage {
	if r == nil {
		return nil
	}
	return append(json.RawMessage(nil), r.raw...)
}
