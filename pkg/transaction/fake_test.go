package transaction

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rovshanmuradov/xrpl-sdk/pkg/clients"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/models"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/models/requests"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/models/transactions"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/wallet"
)

const destination = "rrrrrrrrrrrrrrrrrrrrBZbvji"

// fakeLedger simulates a node: every validated ledger request closes a
// ledger, and a submitted transaction shows up as validated once the
// validated index reaches includeAt.
type fakeLedger struct {
	mu sync.Mutex

	validated    uint32
	engineResult string
	finalResult  string
	// includeAt is the ledger that validates submitted transactions; zero
	// means never.
	includeAt uint32
	// transientFailures is the number of ledger requests that fail at the
	// transport level before the node answers again.
	transientFailures int
	sequence          uint32
	fee               string

	submitted map[string]string
	calls     map[string]int
}

func newFakeLedger(validated uint32) *fakeLedger {
	return &fakeLedger{
		validated:    validated,
		engineResult: "tesSUCCESS",
		finalResult:  "tesSUCCESS",
		sequence:     1,
		fee:          "12",
		submitted:    make(map[string]string),
		calls:        make(map[string]int),
	}
}

func (f *fakeLedger) Request(ctx context.Context, req models.Request) (*models.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[req.Method()]++

	switch r := req.(type) {
	case requests.SubmitRequest:
		hash, err := HashBlob(r.TxBlob)
		if err != nil {
			return failure("invalidTransaction", err.Error())
		}
		f.submitted[hash] = r.TxBlob
		return success(map[string]any{
			"engine_result":         f.engineResult,
			"engine_result_code":    0,
			"engine_result_message": "fake",
			"tx_blob":               r.TxBlob,
			"accepted":              !IsRejected(f.engineResult),
		})

	case requests.LedgerRequest:
		if f.transientFailures > 0 {
			f.transientFailures--
			return nil, &clients.TransportError{Method: r.Method(), URL: "fake://", Err: errors.New("connection reset")}
		}
		if r.LedgerIndex == requests.Current {
			return success(map[string]any{"ledger_current_index": f.validated + 1})
		}
		f.validated++
		return success(map[string]any{"ledger_index": f.validated, "validated": true})

	case requests.TxRequest:
		blob, ok := f.submitted[r.Transaction]
		if !ok || f.includeAt == 0 || f.validated < f.includeAt {
			return failure(CodeTxnNotFound, "Transaction not found.")
		}
		result := map[string]any{
			"hash":         r.Transaction,
			"ledger_index": f.includeAt,
			"validated":    true,
		}
		if r.Binary {
			result["tx"] = blob
			result["meta"] = "201C00000000F8E311006F"
		} else {
			result["meta"] = map[string]any{
				"TransactionIndex":  0,
				"TransactionResult": f.finalResult,
				"AffectedNodes":     []any{},
			}
		}
		return success(result)

	case requests.AccountInfoRequest:
		return success(map[string]any{
			"account_data":         map[string]any{"Account": r.Account, "Balance": "100000000", "Sequence": f.sequence},
			"ledger_current_index": f.validated + 1,
		})

	case requests.FeeRequest:
		return success(map[string]any{
			"drops": map[string]any{"base_fee": "10", "minimum_fee": f.fee},
		})
	}
	return failure("unknownCmd", "Unknown method.")
}

func (f *fakeLedger) Close() error { return nil }

func (f *fakeLedger) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func success(result map[string]any) (*models.Response, error) {
	return models.NewResponse(models.ResponseStatusSuccess, result)
}

func failure(code, message string) (*models.Response, error) {
	return models.NewResponse(models.ResponseStatusError, map[string]any{
		"status":        "error",
		"error":         code,
		"error_message": message,
	})
}

func testWallet(t *testing.T) *wallet.Wallet {
	t.Helper()
	w, err := wallet.New()
	require.NoError(t, err)
	return w
}

// signedPayment signs a payment of drops from w with the given sequence
// and LastLedgerSequence.
func signedPayment(t *testing.T, w *wallet.Wallet, sequence, lastLedger uint32) SignedTransaction {
	t.Helper()
	p, err := transactions.NewPayment(w.ClassicAddress, destination, transactions.XRPDrops(1_000_000))
	require.NoError(t, err)
	p.Fee = "12"
	p.Sequence = sequence
	p.LastLedgerSequence = lastLedger

	signed, err := Sign(p, w)
	require.NoError(t, err)
	return signed
}
