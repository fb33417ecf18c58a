// pkg/ledger/ledger.go
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/rovshanmuradov/xrpl-sdk/pkg/clients"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/models/requests"
)

var ErrNoFee = errors.New("fee not reported by node")

// GetLatestValidatedLedgerSequence returns the index of the most recent
// validated ledger.
func GetLatestValidatedLedgerSequence(ctx context.Context, client clients.LedgerClient) (uint32, error) {
	result, _, err := clients.Do[requests.LedgerResult](ctx, client, requests.LedgerRequest{LedgerIndex: requests.Validated})
	if err != nil {
		return 0, fmt.Errorf("latest validated ledger: %w", err)
	}
	return result.LedgerIndex, nil
}

// GetLatestOpenLedgerSequence returns the index of the current open ledger.
func GetLatestOpenLedgerSequence(ctx context.Context, client clients.LedgerClient) (uint32, error) {
	result, _, err := clients.Do[requests.LedgerResult](ctx, client, requests.LedgerRequest{LedgerIndex: requests.Current})
	if err != nil {
		return 0, fmt.Errorf("current ledger: %w", err)
	}
	if result.LedgerCurrentIndex != 0 {
		return result.LedgerCurrentIndex, nil
	}
	return result.LedgerIndex, nil
}

// GetFee returns the minimum transaction cost in drops, falling back to the
// base fee when the node does not report a minimum.
func GetFee(ctx context.Context, client clients.LedgerClient) (string, error) {
	result, _, err := clients.Do[requests.FeeResult](ctx, client, requests.FeeRequest{})
	if err != nil {
		return "", fmt.Errorf("fee: %w", err)
	}
	switch {
	case result.Drops.MinimumFee != "":
		return result.Drops.MinimumFee, nil
	case result.Drops.BaseFee != "":
		return result.Drops.BaseFee, nil
	default:
		return "", ErrNoFee
	}
}
