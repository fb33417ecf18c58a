// pkg/transaction/submitter.go
package transaction

import (
	"go.uber.org/zap"

	"github.com/rovshanmuradov/xrpl-sdk/pkg/clients"
)

// Submitter autofills, submits and tracks transactions on one ledger
// client. It is read-only after construction and safe for concurrent use;
// every submission owns its own polling state.
type Submitter struct {
	client clients.LedgerClient
	config Config
	logger *zap.Logger
}

// NewSubmitter creates a Submitter for client.
func NewSubmitter(client clients.LedgerClient, opts ...Option) *Submitter {
	cfg := newConfig(opts)
	return &Submitter{
		client: client,
		config: cfg,
		logger: cfg.Logger.Named("tx-submitter"),
	}
}

// Config returns the effective configuration.
func (s *Submitter) Config() Config {
	return s.config
}

func (s *Submitter) transition(hash string, from, to State) {
	s.logger.Debug("Submission state changed",
		zap.String("tx_hash", hash),
		zap.Stringer("from", from),
		zap.Stringer("to", to))
	if s.config.OnTransition != nil {
		s.config.OnTransition(hash, from, to)
	}
}
