// pkg/transaction/autofill.go
package transaction

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/xrpl-sdk/pkg/account"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/clients"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/ledger"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/models/transactions"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/wallet"
)

// Autofill returns a copy of tx with Sequence, Fee and LastLedgerSequence
// filled in from the ledger where they are unset.
func Autofill(ctx context.Context, client clients.LedgerClient, tx transactions.Transaction, opts ...Option) (transactions.Transaction, error) {
	return NewSubmitter(client, opts...).Autofill(ctx, tx)
}

// Autofill fills the unset common fields of tx. Values set by the caller
// are kept, including a LastLedgerSequence that leaves almost no room.
// Each field costs at most one query and failures are not retried.
func (s *Submitter) Autofill(ctx context.Context, tx transactions.Transaction) (transactions.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	common := tx.Common()

	if common.Sequence == 0 && common.TicketSequence == 0 {
		seq, err := account.GetNextValidSeqNumber(ctx, s.client, common.Account)
		if err != nil {
			return nil, fmt.Errorf("autofill sequence: %w", err)
		}
		common.Sequence = seq
	}

	if common.Fee == "" {
		fee := s.config.Fee
		if fee == "" {
			var err error
			fee, err = ledger.GetFee(ctx, s.client)
			if err != nil {
				return nil, fmt.Errorf("autofill fee: %w", err)
			}
		}
		common.Fee = fee
	}

	if common.LastLedgerSequence == 0 {
		index, err := ledger.GetLatestValidatedLedgerSequence(ctx, s.client)
		if err != nil {
			return nil, fmt.Errorf("autofill last ledger sequence: %w", err)
		}
		common.LastLedgerSequence = index + s.config.LedgerOffset
	}

	s.logger.Debug("Transaction autofilled",
		zap.String("account", common.Account),
		zap.String("type", string(common.TransactionType)),
		zap.Uint32("sequence", common.Sequence),
		zap.String("fee", common.Fee),
		zap.Uint32("last_ledger_sequence", common.LastLedgerSequence))

	return tx.WithCommon(common), nil
}

// SignAndAutofill autofills tx and signs the result with w.
func (s *Submitter) SignAndAutofill(ctx context.Context, tx transactions.Transaction, w *wallet.Wallet) (SignedTransaction, error) {
	filled, err := s.Autofill(ctx, tx)
	if err != nil {
		return SignedTransaction{}, err
	}
	return Sign(filled, w)
}
