package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rovshanmuradov/xrpl-sdk/pkg/models"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/models/requests"
)

// newWSServer answers every command with reply(msg); a nil reply means no answer.
func newWSServer(t *testing.T, reply func(msg map[string]any) map[string]any) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			var msg map[string]any
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			out := reply(msg)
			if out == nil {
				continue
			}
			out["id"] = msg["id"]
			if err := conn.WriteJSON(out); err != nil {
				return
			}
		}
	}))
	t.Cleanup(server.Close)
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestWebsocketClient_Request(t *testing.T) {
	url := newWSServer(t, func(msg map[string]any) map[string]any {
		assert.Equal(t, "ledger", msg["command"])
		assert.Equal(t, "validated", msg["ledger_index"])
		return map[string]any{
			"type":   "response",
			"status": "success",
			"result": map[string]any{"ledger_index": 12, "validated": true},
		}
	})

	client, err := DialWebsocket(context.Background(), url, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer client.Close()

	resp, err := client.Request(context.Background(), requests.LedgerRequest{LedgerIndex: requests.Validated})
	require.NoError(t, err)
	assert.True(t, resp.IsSuccessful())

	var result requests.LedgerResult
	require.NoError(t, resp.DecodeResult(&result))
	assert.Equal(t, uint32(12), result.LedgerIndex)
}

func TestWebsocketClient_ErrorReply(t *testing.T) {
	url := newWSServer(t, func(msg map[string]any) map[string]any {
		return map[string]any{
			"type":          "response",
			"status":        "error",
			"error":         "txnNotFound",
			"error_code":    29,
			"error_message": "Transaction not found.",
		}
	})

	client, err := DialWebsocket(context.Background(), url, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer client.Close()

	resp, err := client.Request(context.Background(), requests.TxRequest{Transaction: "AB"})
	require.NoError(t, err)
	assert.Equal(t, models.ResponseStatusError, resp.Status)
	assert.Equal(t, "txnNotFound", resp.ErrorCode())
}

func TestWebsocketClient_ContextCancel(t *testing.T) {
	url := newWSServer(t, func(msg map[string]any) map[string]any { return nil })

	client, err := DialWebsocket(context.Background(), url, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.Request(ctx, requests.FeeRequest{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWebsocketClient_CloseFailsPending(t *testing.T) {
	url := newWSServer(t, func(msg map[string]any) map[string]any { return nil })

	client, err := DialWebsocket(context.Background(), url, zaptest.NewLogger(t))
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() {
		_, err := client.Request(context.Background(), requests.FeeRequest{})
		errCh <- err
	}()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, client.Close())

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrClientClosed)
		assert.ErrorIs(t, err, ErrRequestFailure)
	case <-time.After(2 * time.Second):
		t.Fatal("pending request was not released by Close")
	}

	_, err = client.Request(context.Background(), requests.FeeRequest{})
	assert.ErrorIs(t, err, ErrClientClosed)
}
