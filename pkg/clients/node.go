// pkg/clients/node.go
package clients

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Node представляет один узел пула
type Node struct {
	Client  LedgerClient
	URL     string
	active  bool
	mutex   sync.RWMutex
	metrics *nodeMetrics
}

// nodeMetrics хранит счетчики производительности узла
type nodeMetrics struct {
	successCount uint64
	errorCount   uint64
	latency      time.Duration
	mutex        sync.RWMutex
}

// NewNode создает активный узел пула
func NewNode(url string, client LedgerClient) *Node {
	return &Node{
		Client:  client,
		URL:     url,
		active:  true,
		metrics: &nodeMetrics{},
	}
}

// Dial creates a client for url: WebSocket for ws:// and wss://, JSON-RPC
// over HTTP otherwise.
func Dial(ctx context.Context, url string, logger *zap.Logger) (LedgerClient, error) {
	switch {
	case strings.HasPrefix(url, "ws://"), strings.HasPrefix(url, "wss://"):
		ws, err := DialWebsocket(ctx, url, logger)
		if err != nil {
			return nil, err
		}
		return ws, nil
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		return NewJSONRPCClient(url, nil, logger), nil
	default:
		return nil, fmt.Errorf("unsupported endpoint scheme: %s", url)
	}
}

// GetMetrics возвращает число успехов, ошибок и сглаженную задержку
func (n *Node) GetMetrics() (uint64, uint64, time.Duration) {
	n.metrics.mutex.RLock()
	defer n.metrics.mutex.RUnlock()

	return atomic.LoadUint64(&n.metrics.successCount),
		atomic.LoadUint64(&n.metrics.errorCount),
		n.metrics.latency
}

func (n *Node) SetActive(state bool) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.active = state
}

func (n *Node) IsActive() bool {
	n.mutex.RLock()
	defer n.mutex.RUnlock()
	return n.active
}

// UpdateMetrics учитывает результат одного запроса
func (n *Node) UpdateMetrics(success bool, latency time.Duration) {
	n.metrics.mutex.Lock()
	defer n.metrics.mutex.Unlock()

	if success {
		atomic.AddUint64(&n.metrics.successCount, 1)
	} else {
		atomic.AddUint64(&n.metrics.errorCount, 1)
	}

	if n.metrics.latency == 0 {
		n.metrics.latency = latency
		return
	}
	n.metrics.latency = (n.metrics.latency + latency) / 2 // Скользящее среднее
}
