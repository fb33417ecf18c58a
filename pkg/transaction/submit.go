// pkg/transaction/submit.go
package transaction

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/xrpl-sdk/pkg/clients"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/models"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/models/requests"
)

// Engine result classes that can never lead to a validated transaction.
var rejectedPrefixes = []string{"tem", "tef", "tel"}

// IsRejected reports whether a preliminary engine result rules out
// inclusion in a ledger. tes, ter and tec results can still be validated.
func IsRejected(engineResult string) bool {
	for _, prefix := range rejectedPrefixes {
		if strings.HasPrefix(engineResult, prefix) {
			return true
		}
	}
	return false
}

// Submit sends signed once and returns the preliminary result. A node
// error or a rejected engine result is returned as *clients.RequestFailure.
func Submit(ctx context.Context, client clients.LedgerClient, signed SignedTransaction) (requests.SubmitResult, *models.Response, error) {
	return NewSubmitter(client).Submit(ctx, signed)
}

func (s *Submitter) Submit(ctx context.Context, signed SignedTransaction) (requests.SubmitResult, *models.Response, error) {
	result, resp, err := clients.Do[requests.SubmitResult](ctx, s.client, requests.SubmitRequest{TxBlob: signed.Blob})
	if err != nil {
		return result, resp, err
	}

	if IsRejected(result.EngineResult) {
		s.logger.Warn("Transaction rejected",
			zap.String("tx_hash", signed.Hash),
			zap.String("engine_result", result.EngineResult),
			zap.String("message", result.EngineResultMessage))
		return result, resp, &clients.RequestFailure{
			Method:       requests.MethodSubmit,
			Code:         result.EngineResult,
			Message:      result.EngineResultMessage,
			EngineResult: result.EngineResult,
			Response:     resp,
		}
	}

	s.logger.Info("Transaction submitted",
		zap.String("tx_hash", signed.Hash),
		zap.String("engine_result", result.EngineResult))
	return result, resp, nil
}
