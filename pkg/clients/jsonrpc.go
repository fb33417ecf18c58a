// pkg/clients/jsonrpc.go
package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/jhttp"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/xrpl-sdk/pkg/models"
)

// JSONRPCClient talks to a node over JSON-RPC on HTTP. It is safe for
// concurrent use.
type JSONRPCClient struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger

	mx  sync.RWMutex // guards cli across refreshes
	cli *jrpc2.Client
}

// NewJSONRPCClient creates a client for url. A nil httpClient means
// http.DefaultClient.
func NewJSONRPCClient(url string, httpClient *http.Client, logger *zap.Logger) *JSONRPCClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &JSONRPCClient{
		url:        url,
		httpClient: httpClient,
		logger:     logger.Named("jsonrpc").With(zap.String("url", url)),
	}
	c.refreshClient()
	return c
}

// URL returns the endpoint of the client.
func (c *JSONRPCClient) URL() string { return c.url }

func (c *JSONRPCClient) refreshClient() {
	var opts *jhttp.ChannelOptions
	if c.httpClient != nil {
		opts = &jhttp.ChannelOptions{Client: c.httpClient}
	}
	cli := jrpc2.NewClient(jhttp.NewChannel(c.url, opts), nil)

	c.mx.Lock()
	defer c.mx.Unlock()
	if c.cli != nil {
		c.cli.Close()
	}
	c.cli = cli
}

// Request sends req with its parameters wrapped in a one element array.
func (c *JSONRPCClient) Request(ctx context.Context, req models.Request) (*models.Response, error) {
	method := req.Method()

	var raw json.RawMessage
	c.mx.RLock()
	err := c.cli.CallResult(ctx, method, []any{req}, &raw)
	c.mx.RUnlock()

	if err != nil {
		// a failed call can leave the channel unusable
		c.refreshClient()

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var rpcErr *jrpc2.Error
		if errors.As(err, &rpcErr) {
			c.logger.Debug("Node returned protocol error",
				zap.String("method", method),
				zap.Int32("code", int32(rpcErr.Code)),
				zap.String("message", rpcErr.Message))
			return models.NewResponse(models.ResponseStatusError, map[string]any{
				"error":         rpcErr.Message,
				"error_code":    int32(rpcErr.Code),
				"error_message": rpcErr.Message,
			})
		}
		return nil, &TransportError{Method: method, URL: c.url, Err: err}
	}

	resp, err := models.ParseResult(raw)
	if err != nil {
		return nil, &TransportError{Method: method, URL: c.url, Err: err}
	}
	return resp, nil
}

func (c *JSONRPCClient) Close() error {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.cli.Close()
}
