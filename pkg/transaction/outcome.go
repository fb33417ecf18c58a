// pkg/transaction/outcome.go
package transaction

import (
	"errors"
	"fmt"

	"github.com/rovshanmuradov/xrpl-sdk/pkg/models"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/models/transactions"
)

var (
	// ErrReliableSubmissionExpired is matched by *ExpiredError.
	ErrReliableSubmissionExpired = errors.New("reliable submission expired")
	// ErrPollAttemptsExhausted means a transaction without LastLedgerSequence
	// was not validated within MaxAttempts lookups. Its fate is unknown.
	ErrPollAttemptsExhausted = errors.New("poll attempts exhausted")
)

// State is a step of the reliable submission state machine.
type State int

const (
	StateSubmitted State = iota
	StatePolling
	StateValidatedSuccess
	StateValidatedFailure
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateSubmitted:
		return "submitted"
	case StatePolling:
		return "polling"
	case StateValidatedSuccess:
		return "validated_success"
	case StateValidatedFailure:
		return "validated_failure"
	case StateExpired:
		return "expired"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// IsTerminal reports whether no transition leaves s.
func (s State) IsTerminal() bool {
	return s == StateValidatedSuccess || s == StateValidatedFailure || s == StateExpired
}

// Outcome is the final result of a reliable submission.
type Outcome struct {
	State State
	Hash  string
	// EngineResult is the preliminary result returned by submit.
	EngineResult string
	// Meta is set for validated outcomes.
	Meta *transactions.TransactionMetadata
	// LedgerIndex is the ledger that included the transaction.
	LedgerIndex        uint32
	LastLedgerSequence uint32
	// CurrentLedgerIndex is the latest validated ledger seen by the last poll.
	CurrentLedgerIndex uint32
	// Response is the last lookup response.
	Response *models.Response
}

// Validated reports whether the transaction made it into a validated ledger.
func (o Outcome) Validated() bool {
	return o.State == StateValidatedSuccess || o.State == StateValidatedFailure
}

// TransactionResult returns the final result code from the metadata.
func (o Outcome) TransactionResult() string {
	if o.Meta == nil {
		return ""
	}
	return o.Meta.TransactionResult
}

// Err returns an *ExpiredError for expired outcomes and nil otherwise. A
// validated failure is an outcome, not an error.
func (o Outcome) Err() error {
	if o.State != StateExpired {
		return nil
	}
	return &ExpiredError{
		Hash:               o.Hash,
		LastLedgerSequence: o.LastLedgerSequence,
		LedgerIndex:        o.CurrentLedgerIndex,
	}
}

// ExpiredError reports that the network moved past LastLedgerSequence
// without validating the transaction. The transaction can never be
// included anymore.
type ExpiredError struct {
	Hash               string
	LastLedgerSequence uint32
	LedgerIndex        uint32
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("transaction %s expired: latest validated ledger %d is past LastLedgerSequence %d",
		e.Hash, e.LedgerIndex, e.LastLedgerSequence)
}

func (e *ExpiredError) Is(target error) bool {
	return target == ErrReliableSubmissionExpired
}
