// pkg/transaction/lookup.go
package transaction

import (
	"context"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/xrpl-sdk/pkg/cache"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/clients"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/models"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/models/requests"
)

// CodeTxnNotFound is the node error for a transaction it does not know.
const CodeTxnNotFound = "txnNotFound"

type lookupConfig struct {
	req   requests.TxRequest
	cache *cache.LookupCache
}

// LookupOption adjusts a transaction lookup.
type LookupOption func(*lookupConfig)

// WithBinary asks for the transaction and metadata as hex blobs.
func WithBinary() LookupOption {
	return func(c *lookupConfig) { c.req.Binary = true }
}

// WithLedgerRange limits the search to ledgers minLedger through maxLedger.
func WithLedgerRange(minLedger, maxLedger uint32) LookupOption {
	return func(c *lookupConfig) {
		c.req.MinLedger = &minLedger
		c.req.MaxLedger = &maxLedger
	}
}

// WithLookupCache serves validated results from c and stores new ones.
// Lookups limited with WithLedgerRange always go to the node.
func WithLookupCache(c *cache.LookupCache) LookupOption {
	return func(cfg *lookupConfig) { cfg.cache = c }
}

// GetTransactionFromHash looks a transaction up by hash and returns the raw
// response. A node error, txnNotFound included, is returned as
// *clients.RequestFailure together with the response.
func GetTransactionFromHash(ctx context.Context, client clients.LedgerClient, hash string, opts ...LookupOption) (*models.Response, error) {
	return NewSubmitter(client).GetTransactionFromHash(ctx, hash, opts...)
}

func (s *Submitter) GetTransactionFromHash(ctx context.Context, hash string, opts ...LookupOption) (*models.Response, error) {
	cfg := lookupConfig{
		req:   requests.TxRequest{Transaction: hash},
		cache: s.config.Cache,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	// A cached result carries no record of the range it was found in.
	ranged := cfg.req.MinLedger != nil || cfg.req.MaxLedger != nil
	if cfg.cache != nil && !ranged {
		if raw, ok := cfg.cache.Get(hash, cfg.req.Binary); ok {
			if resp, err := models.ParseResult(raw); err == nil {
				return resp, nil
			}
		}
	}

	resp, err := s.client.Request(ctx, cfg.req)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccessful() {
		return resp, clients.NewRequestFailure(requests.MethodTx, resp)
	}

	if validated, _ := resp.Result["validated"].(bool); validated && cfg.cache != nil {
		if err := cfg.cache.Set(hash, cfg.req.Binary, resp.Raw()); err != nil {
			s.logger.Warn("Failed to cache lookup", zap.String("tx_hash", hash), zap.Error(err))
		}
	}
	return resp, nil
}
