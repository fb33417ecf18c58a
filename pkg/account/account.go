// pkg/account/account.go
package account

import (
	"context"
	"fmt"

	"github.com/rovshanmuradov/xrpl-sdk/pkg/addresscodec"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/clients"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/models/requests"
)

// GetAccountInfo fetches the account root of address as of ledger.
func GetAccountInfo(ctx context.Context, client clients.LedgerClient, address string, ledger requests.LedgerSpecifier) (requests.AccountInfoResult, error) {
	if ledger.IsZero() {
		ledger = requests.Validated
	}
	result, _, err := clients.Do[requests.AccountInfoResult](ctx, client, requests.AccountInfoRequest{
		Account:     address,
		LedgerIndex: ledger,
		Strict:      true,
	})
	if err != nil {
		return requests.AccountInfoResult{}, fmt.Errorf("account info for %s: %w", address, err)
	}
	return result, nil
}

// GetNextValidSeqNumber returns the sequence number the next transaction of
// address must use, read from the current open ledger.
func GetNextValidSeqNumber(ctx context.Context, client clients.LedgerClient, address string) (uint32, error) {
	info, err := GetAccountInfo(ctx, client, address, requests.Current)
	if err != nil {
		return 0, err
	}
	return info.AccountData.Sequence, nil
}

// GetBalance returns the XRP balance of address in drops, as of the latest
// validated ledger.
func GetBalance(ctx context.Context, client clients.LedgerClient, address string) (string, error) {
	info, err := GetAccountInfo(ctx, client, address, requests.Validated)
	if err != nil {
		return "", err
	}
	return info.AccountData.Balance, nil
}

// IsValidClassicAddress reports whether address is a well formed classic
// address.
func IsValidClassicAddress(address string) bool {
	return addresscodec.IsValidClassicAddress(address)
}
