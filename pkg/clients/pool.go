// pkg/clients/pool.go
package clients

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/xrpl-sdk/pkg/models"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/models/requests"
)

// Pool распределяет запросы между узлами по кругу. Узел, упавший на
// транспортном уровне, помечается неактивным, и запрос уходит следующему
// узлу. Ответы узла с ошибкой возвращаются как есть.
type Pool struct {
	nodes   []*Node
	logger  *zap.Logger
	metrics *PoolMetrics
	curr    int
	mu      sync.Mutex
}

// NewPool создает пул из узлов
func NewPool(logger *zap.Logger, nodes ...*Node) *Pool {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pool{
		nodes:  nodes,
		logger: logger.Named("ledger-pool"),
		curr:   -1,
	}
}

// SetMetrics подключает метрики. Вызывать до начала работы с пулом.
func (p *Pool) SetMetrics(m *PoolMetrics) {
	p.metrics = m
	p.metrics.setActive(p.activeCount())
}

func (p *Pool) activeCount() int {
	n := 0
	for _, node := range p.nodes {
		if node.IsActive() {
			n++
		}
	}
	return n
}

// Nodes returns the nodes of the pool.
func (p *Pool) Nodes() []*Node {
	return p.nodes
}

// GetNextNode возвращает следующий активный узел или nil, если активных нет
func (p *Pool) GetNextNode() *Node {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.nodes) == 0 {
		return nil
	}
	for i := 0; i < len(p.nodes); i++ {
		p.curr = (p.curr + 1) % len(p.nodes)
		if p.nodes[p.curr].IsActive() {
			return p.nodes[p.curr]
		}
	}
	return nil
}

// HasActiveNodes проверяет, есть ли активные узлы
func (p *Pool) HasActiveNodes() bool {
	return p.activeCount() > 0
}

// Request sends req to the next active node, failing over on transport
// errors. Each node is tried at most once per request. When every node is
// inactive they are all put back in rotation first, so a request always
// reaches at least one node. Failures to reach any node are returned as
// *TransportError.
func (p *Pool) Request(ctx context.Context, req models.Request) (*models.Response, error) {
	if len(p.nodes) == 0 {
		return nil, &TransportError{Method: req.Method(), Err: ErrNoActiveClients}
	}
	if !p.HasActiveNodes() {
		p.reviveAll()
	}

	var lastErr error
	for attempt := 0; attempt < len(p.nodes); attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		node := p.GetNextNode()
		if node == nil {
			break
		}

		start := time.Now()
		resp, err := node.Client.Request(ctx, req)
		latency := time.Since(start)
		node.UpdateMetrics(err == nil, latency)

		var transportErr *TransportError
		isTransport := errors.As(err, &transportErr)
		p.metrics.observe(req.Method(), node.URL, latency, isTransport)
		if err == nil {
			return resp, nil
		}
		if !isTransport {
			return nil, err
		}
		lastErr = err
		node.SetActive(false)
		p.metrics.setActive(p.activeCount())
		p.logger.Warn("Node marked as inactive",
			zap.String("url", node.URL),
			zap.String("method", req.Method()),
			zap.Error(err))
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, &TransportError{Method: req.Method(), Err: ErrNoActiveClients}
}

// reviveAll возвращает в ротацию все узлы пула
func (p *Pool) reviveAll() {
	for _, node := range p.nodes {
		node.SetActive(true)
	}
	p.metrics.setActive(len(p.nodes))
	p.logger.Info("No active nodes left, retrying all of them", zap.Int("nodes", len(p.nodes)))
}

// CheckHealth опрашивает неактивные узлы запросом ledger и возвращает в
// ротацию ответившие. Возвращает число активных узлов.
func (p *Pool) CheckHealth(ctx context.Context) int {
	active := 0
	for _, node := range p.nodes {
		if node.IsActive() {
			active++
			continue
		}
		_, err := node.Client.Request(ctx, requests.LedgerRequest{LedgerIndex: requests.Validated})
		if err != nil {
			p.logger.Debug("Node still unavailable", zap.String("url", node.URL), zap.Error(err))
			continue
		}
		node.SetActive(true)
		active++
		p.logger.Info("Node reactivated", zap.String("url", node.URL))
	}
	p.metrics.setActive(active)
	return active
}

// Close закрывает клиенты всех узлов
func (p *Pool) Close() error {
	var errs []error
	for _, node := range p.nodes {
		if err := node.Client.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
