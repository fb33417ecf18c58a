package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rovshanmuradov/xrpl-sdk/pkg/models"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/models/requests"
)

type jsonRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	ID      any             `json:"id"`
}

type jsonRPCResponse struct {
	JSONRPC string `json:"jsonrpc"`
	Result  any    `json:"result,omitempty"`
	Error   any    `json:"error,omitempty"`
	ID      any    `json:"id"`
}

func newRPCServer(t *testing.T, handle func(req jsonRPCRequest) jsonRPCResponse) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req jsonRPCRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		resp := handle(req)
		resp.JSONRPC = "2.0"
		resp.ID = req.ID
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestJSONRPCClient_WrapsParamsInArray(t *testing.T) {
	server := newRPCServer(t, func(req jsonRPCRequest) jsonRPCResponse {
		assert.Equal(t, "tx", req.Method)

		var params []map[string]any
		require.NoError(t, json.Unmarshal(req.Params, &params))
		require.Len(t, params, 1)
		assert.Equal(t, "ABCD", params[0]["transaction"])
		assert.Equal(t, true, params[0]["binary"])

		return jsonRPCResponse{Result: map[string]any{
			"status":    "success",
			"hash":      "ABCD",
			"validated": true,
		}}
	})

	client := NewJSONRPCClient(server.URL, nil, zaptest.NewLogger(t))
	defer client.Close()

	resp, err := client.Request(context.Background(), requests.TxRequest{Transaction: "ABCD", Binary: true})
	require.NoError(t, err)
	assert.True(t, resp.IsSuccessful())
	assert.Equal(t, true, resp.Result["validated"])
}

func TestJSONRPCClient_ErrorResponseIsNotGoError(t *testing.T) {
	server := newRPCServer(t, func(req jsonRPCRequest) jsonRPCResponse {
		return jsonRPCResponse{Result: map[string]any{
			"status":        "error",
			"error":         "txnNotFound",
			"error_code":    29,
			"error_message": "Transaction not found.",
		}}
	})

	client := NewJSONRPCClient(server.URL, nil, zaptest.NewLogger(t))
	defer client.Close()

	resp, err := client.Request(context.Background(), requests.TxRequest{Transaction: "00"})
	require.NoError(t, err)
	assert.Equal(t, models.ResponseStatusError, resp.Status)
	assert.Equal(t, "txnNotFound", resp.ErrorCode())
	assert.Equal(t, "Transaction not found.", resp.ErrorMessage())
}

func TestJSONRPCClient_ProtocolError(t *testing.T) {
	server := newRPCServer(t, func(req jsonRPCRequest) jsonRPCResponse {
		return jsonRPCResponse{Error: map[string]any{"code": -32601, "message": "unknownCmd"}}
	})

	client := NewJSONRPCClient(server.URL, nil, zaptest.NewLogger(t))
	defer client.Close()

	resp, err := client.Request(context.Background(), requests.FeeRequest{})
	require.NoError(t, err)
	assert.False(t, resp.IsSuccessful())
	assert.Equal(t, "unknownCmd", resp.ErrorCode())
}

func TestJSONRPCClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewJSONRPCClient(url, nil, zaptest.NewLogger(t))
	defer client.Close()

	_, err := client.Request(context.Background(), requests.FeeRequest{})
	require.Error(t, err)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, "fee", transportErr.Method)
	assert.ErrorIs(t, err, ErrRequestFailure)
	assert.True(t, IsRetryable(err))
}

func TestDo_DecodesResult(t *testing.T) {
	server := newRPCServer(t, func(req jsonRPCRequest) jsonRPCResponse {
		return jsonRPCResponse{Result: map[string]any{
			"status":       "success",
			"ledger_index": 77,
			"validated":    true,
		}}
	})
	client := NewJSONRPCClient(server.URL, nil, zaptest.NewLogger(t))
	defer client.Close()

	result, resp, err := Do[requests.LedgerResult](context.Background(), client, requests.LedgerRequest{LedgerIndex: requests.Validated})
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, uint32(77), result.LedgerIndex)
	assert.True(t, result.Validated)
}

func TestDo_ErrorResponseBecomesRequestFailure(t *testing.T) {
	server := newRPCServer(t, func(req jsonRPCRequest) jsonRPCResponse {
		return jsonRPCResponse{Result: map[string]any{
			"status":        "error",
			"error":         "actNotFound",
			"error_message": "Account not found.",
		}}
	})
	client := NewJSONRPCClient(server.URL, nil, zaptest.NewLogger(t))
	defer client.Close()

	_, resp, err := Do[requests.AccountInfoResult](context.Background(), client, requests.AccountInfoRequest{Account: "r1"})
	require.Error(t, err)
	require.NotNil(t, resp)

	var failure *RequestFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "account_info", failure.Method)
	assert.Equal(t, "actNotFound", failure.Code)
	assert.ErrorIs(t, err, ErrRequestFailure)
	assert.False(t, IsRetryable(err))
}
