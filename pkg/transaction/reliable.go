// pkg/transaction/reliable.go
package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rovshanmuradov/xrpl-sdk/pkg/clients"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/ledger"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/models"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/models/requests"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/models/transactions"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/wallet"
)

// SubmitAndWait submits signed and polls until it reaches a final state.
func SubmitAndWait(ctx context.Context, client clients.LedgerClient, signed SignedTransaction, opts ...Option) (Outcome, error) {
	return NewSubmitter(client, opts...).SubmitAndWait(ctx, signed)
}

// SendReliableSubmission submits signed, waits for it and returns the
// lookup response of the validated transaction. An expired transaction is
// reported as *ExpiredError; a validated failure is not an error.
func SendReliableSubmission(ctx context.Context, client clients.LedgerClient, signed SignedTransaction, opts ...Option) (*models.Response, error) {
	outcome, err := SubmitAndWait(ctx, client, signed, opts...)
	if err != nil {
		return nil, err
	}
	if err := outcome.Err(); err != nil {
		return outcome.Response, err
	}
	return outcome.Response, nil
}

// SignAndSubmitAndWait autofills, signs and reliably submits tx.
func SignAndSubmitAndWait(ctx context.Context, client clients.LedgerClient, tx transactions.Transaction, w *wallet.Wallet, opts ...Option) (Outcome, error) {
	s := NewSubmitter(client, opts...)
	signed, err := s.SignAndAutofill(ctx, tx, w)
	if err != nil {
		return Outcome{}, err
	}
	return s.SubmitAndWait(ctx, signed)
}

// SubmitAndWait submits signed once and polls the ledger until the
// transaction is validated or can no longer be.
//
// A rejected engine result (tem, tef, tel) fails at once with
// *clients.RequestFailure. Otherwise the ledger is polled every
// PollInterval: the latest validated ledger index is read first, then the
// transaction. A validated transaction ends in ValidatedSuccess or
// ValidatedFailure depending on its metadata; a missing or unvalidated one
// ends in Expired once the validated index is past LastLedgerSequence.
// Without LastLedgerSequence polling stops after MaxAttempts with
// ErrPollAttemptsExhausted.
func (s *Submitter) SubmitAndWait(ctx context.Context, signed SignedTransaction) (Outcome, error) {
	start := time.Now()
	log := s.logger.With(zap.String("tx_hash", signed.Hash))

	result, _, err := s.Submit(ctx, signed)
	if err != nil {
		var failure *clients.RequestFailure
		if errors.As(err, &failure) && failure.EngineResult != "" {
			s.config.Metrics.TrackSubmission(resultRejected, start)
		} else {
			s.config.Metrics.TrackSubmission(resultError, start)
		}
		return Outcome{}, err
	}

	outcome, err := s.poll(ctx, signed, result.EngineResult, log)
	if err != nil {
		s.config.Metrics.TrackSubmission(resultError, start)
		return Outcome{}, err
	}
	s.config.Metrics.TrackSubmission(resultLabel(outcome.State), start)

	log.Info("Transaction reached final state",
		zap.Stringer("state", outcome.State),
		zap.String("result", outcome.TransactionResult()),
		zap.Uint32("ledger_index", outcome.CurrentLedgerIndex),
		zap.Duration("elapsed", time.Since(start)))
	return outcome, nil
}

// pollResult is what one poll step observed.
type pollResult struct {
	ledgerIndex uint32
	found       bool
	tx          requests.TxResult
	response    *models.Response
}

func (s *Submitter) poll(ctx context.Context, signed SignedTransaction, engineResult string, log *zap.Logger) (Outcome, error) {
	deadline := signed.Tx.Common().LastLedgerSequence
	outcome := Outcome{
		Hash:               signed.Hash,
		EngineResult:       engineResult,
		LastLedgerSequence: deadline,
	}

	s.transition(signed.Hash, StateSubmitted, StatePolling)

	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		if deadline == 0 && attempt > s.config.MaxAttempts {
			return Outcome{}, fmt.Errorf("%w: %s not validated after %d lookups", ErrPollAttemptsExhausted, signed.Hash, s.config.MaxAttempts)
		}

		select {
		case <-ctx.Done():
			return Outcome{}, ctx.Err()
		case <-ticker.C:
		}

		step, err := s.pollStep(ctx, signed.Hash, log)
		if err != nil {
			return Outcome{}, err
		}
		outcome.CurrentLedgerIndex = step.ledgerIndex
		outcome.Response = step.response

		if step.found && step.tx.Validated {
			return s.validated(outcome, step)
		}

		if deadline > 0 && step.ledgerIndex > deadline {
			outcome.State = StateExpired
			s.transition(signed.Hash, StatePolling, StateExpired)
			log.Warn("Transaction expired",
				zap.Uint32("last_ledger_sequence", deadline),
				zap.Uint32("ledger_index", step.ledgerIndex))
			return outcome, nil
		}

		log.Debug("Transaction not validated yet",
			zap.Int("attempt", attempt),
			zap.Bool("found", step.found),
			zap.Uint32("ledger_index", step.ledgerIndex))
	}
}

func (s *Submitter) validated(outcome Outcome, step pollResult) (Outcome, error) {
	meta, err := step.tx.Metadata()
	if err != nil {
		return Outcome{}, fmt.Errorf("validated transaction %s: %w", outcome.Hash, err)
	}
	outcome.Meta = meta
	outcome.LedgerIndex = step.tx.LedgerIndex
	outcome.State = StateValidatedFailure
	if meta.IsSuccess() {
		outcome.State = StateValidatedSuccess
	}
	s.transition(outcome.Hash, StatePolling, outcome.State)
	return outcome, nil
}

// pollStep reads the latest validated ledger index and then looks the
// transaction up, retrying transient failures with exponential backoff.
func (s *Submitter) pollStep(ctx context.Context, hash string, log *zap.Logger) (pollResult, error) {
	operation := func() (pollResult, error) {
		var step pollResult

		index, err := ledger.GetLatestValidatedLedgerSequence(ctx, s.client)
		if err != nil {
			return step, classify(err)
		}
		step.ledgerIndex = index

		s.config.Metrics.trackPoll()
		resp, err := s.GetTransactionFromHash(ctx, hash)
		step.response = resp
		if err != nil {
			var failure *clients.RequestFailure
			if errors.As(err, &failure) && failure.Code == CodeTxnNotFound {
				return step, nil
			}
			return step, classify(err)
		}

		if err := resp.DecodeResult(&step.tx); err != nil {
			return step, backoff.Permanent(fmt.Errorf("decode tx result: %w", err))
		}
		step.found = true
		return step, nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.config.RetryInterval
	policy.MaxInterval = s.config.RetryInterval * 10

	notify := func(err error, d time.Duration) {
		log.Warn("Poll step failed, retrying", zap.Error(err), zap.Duration("backoff", d))
	}

	step, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(s.config.TransientRetries)+1),
		backoff.WithNotify(notify))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return pollResult{}, ctxErr
		}
		if clients.IsRetryable(err) {
			return pollResult{}, fmt.Errorf("poll %s: transient retries exhausted: %w", hash, err)
		}
		return pollResult{}, fmt.Errorf("poll %s: %w", hash, err)
	}
	return step, nil
}

func classify(err error) error {
	if clients.IsRetryable(err) {
		return err
	}
	return backoff.Permanent(err)
}

// SubmitAndWaitAll reliably submits every transaction concurrently. The
// transactions must not depend on each other's sequence numbers being used
// in order. The first error cancels the remaining submissions.
func (s *Submitter) SubmitAndWaitAll(ctx context.Context, signed []SignedTransaction) ([]Outcome, error) {
	outcomes := make([]Outcome, len(signed))
	g, gctx := errgroup.WithContext(ctx)
	for i, st := range signed {
		g.Go(func() error {
			outcome, err := s.SubmitAndWait(gctx, st)
			if err != nil {
				return fmt.Errorf("submit %s: %w", st.Hash, err)
			}
			outcomes[i] = outcome
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}

// SubmitAndWaitAll is SubmitAndWait over several transactions at once.
func SubmitAndWaitAll(ctx context.Context, client clients.LedgerClient, signed []SignedTransaction, opts ...Option) ([]Outcome, error) {
	return NewSubmitter(client, opts...).SubmitAndWaitAll(ctx, signed)
}
