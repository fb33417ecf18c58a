// pkg/clients/client.go
package clients

import (
	"context"
	"fmt"

	"github.com/rovshanmuradov/xrpl-sdk/pkg/models"
)

// LedgerClient sends requests to a ledger node. A node error reply is not a
// Go error: it comes back as a Response with Status error. Errors are
// reserved for requests that could not be completed.
type LedgerClient interface {
	Request(ctx context.Context, req models.Request) (*models.Response, error)
	Close() error
}

// Do sends req, turns a node error reply into a *RequestFailure and decodes
// the result into T. The raw response is returned whenever one was received.
func Do[T any](ctx context.Context, client LedgerClient, req models.Request) (T, *models.Response, error) {
	var result T
	resp, err := client.Request(ctx, req)
	if err != nil {
		return result, nil, err
	}
	if !resp.IsSuccessful() {
		return result, resp, NewRequestFailure(req.Method(), resp)
	}
	if err := resp.DecodeResult(&result); err != nil {
		return result, resp, fmt.Errorf("decode %s result: %w", req.Method(), err)
	}
	return result, resp, nil
}
