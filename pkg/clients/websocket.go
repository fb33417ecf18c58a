// pkg/clients/websocket.go
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/xrpl-sdk/pkg/models"
)

const (
	wsHandshakeTimeout = 10 * time.Second
	wsWriteTimeout     = 10 * time.Second
)

// WebsocketClient talks to a node over a single WebSocket connection.
// Replies are matched to requests by id; one reader goroutine dispatches them.
type WebsocketClient struct {
	url    string
	conn   *websocket.Conn
	logger *zap.Logger

	writeMu sync.Mutex
	mu      sync.Mutex
	pending map[uint64]chan wsReply
	readErr error
	nextID  atomic.Uint64

	closeCh   chan struct{}
	closeOnce sync.Once
	done      chan struct{}
}

type wsReply struct {
	ID           *uint64         `json:"id"`
	Type         string          `json:"type"`
	Status       string          `json:"status"`
	Result       json.RawMessage `json:"result"`
	Error        string          `json:"error"`
	ErrorCode    int             `json:"error_code"`
	ErrorMessage string          `json:"error_message"`
}

// DialWebsocket connects to url and starts the read loop.
func DialWebsocket(ctx context.Context, url string, logger *zap.Logger) (*WebsocketClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	dialer := websocket.Dialer{HandshakeTimeout: wsHandshakeTimeout}

	conn, resp, err := dialer.DialContext(ctx, url, nil)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return nil, &TransportError{Method: "dial", URL: url, Err: err}
	}

	c := &WebsocketClient{
		url:     url,
		conn:    conn,
		logger:  logger.Named("websocket").With(zap.String("url", url)),
		pending: make(map[uint64]chan wsReply),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// URL returns the endpoint of the client.
func (c *WebsocketClient) URL() string { return c.url }

// Request sends req as a flat command object and waits for the reply with
// the same id.
func (c *WebsocketClient) Request(ctx context.Context, req models.Request) (*models.Response, error) {
	method := req.Method()

	msg, err := flatten(req)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", method, err)
	}
	id := c.nextID.Add(1)
	msg["id"] = id
	msg["command"] = method

	ch := make(chan wsReply, 1)
	c.mu.Lock()
	if c.readErr != nil {
		err := c.readErr
		c.mu.Unlock()
		return nil, &TransportError{Method: method, URL: c.url, Err: err}
	}
	c.pending[id] = ch
	c.mu.Unlock()

	if err := c.write(msg); err != nil {
		c.forget(id)
		return nil, &TransportError{Method: method, URL: c.url, Err: err}
	}

	select {
	case <-ctx.Done():
		c.forget(id)
		return nil, ctx.Err()
	case reply, ok := <-ch:
		if !ok {
			c.mu.Lock()
			err := c.readErr
			c.mu.Unlock()
			return nil, &TransportError{Method: method, URL: c.url, Err: err}
		}
		resp, err := reply.response()
		if err != nil {
			return nil, &TransportError{Method: method, URL: c.url, Err: err}
		}
		return resp, nil
	}
}

func (c *WebsocketClient) write(msg map[string]any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return c.conn.WriteJSON(msg)
}

func (c *WebsocketClient) forget(id uint64) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

func (c *WebsocketClient) readLoop() {
	defer close(c.done)
	for {
		var reply wsReply
		if err := c.conn.ReadJSON(&reply); err != nil {
			select {
			case <-c.closeCh:
				err = ErrClientClosed
			default:
				c.logger.Warn("WebSocket read failed", zap.Error(err))
			}
			c.failPending(err)
			return
		}
		if reply.ID == nil {
			// stream messages are not requested by this client
			c.logger.Debug("Ignoring message without id", zap.String("type", reply.Type))
			continue
		}

		c.mu.Lock()
		ch, ok := c.pending[*reply.ID]
		delete(c.pending, *reply.ID)
		c.mu.Unlock()
		if ok {
			ch <- reply
		}
	}
}

func (c *WebsocketClient) failPending(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.readErr = err
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
}

// Close closes the connection and fails every pending request.
func (c *WebsocketClient) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closeCh)
		c.writeMu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		c.writeMu.Unlock()
		err = c.conn.Close()
		<-c.done
	})
	return err
}

func (r wsReply) response() (*models.Response, error) {
	if r.Status == string(models.ResponseStatusError) || r.Error != "" {
		return models.NewResponse(models.ResponseStatusError, map[string]any{
			"error":         r.Error,
			"error_code":    r.ErrorCode,
			"error_message": r.ErrorMessage,
		})
	}
	return models.ParseResult(r.Result)
}

func flatten(req models.Request) (map[string]any, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	msg := map[string]any{}
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, err
	}
	return msg, nil
}
