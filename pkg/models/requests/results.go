// pkg/models/requests/results.go
package requests

import (
	"encoding/json"
	"fmt"

	"github.com/rovshanmuradov/xrpl-sdk/pkg/models/transactions"
)

// SubmitResult is the preliminary outcome of a submit call.
type SubmitResult struct {
	EngineResult        string          `json:"engine_result"`
	EngineResultCode    int             `json:"engine_result_code"`
	EngineResultMessage string          `json:"engine_result_message"`
	Accepted            bool            `json:"accepted"`
	Applied             bool            `json:"applied"`
	Broadcast           bool            `json:"broadcast"`
	Queued              bool            `json:"queued"`
	Kept                bool            `json:"kept"`
	TxBlob              string          `json:"tx_blob"`
	TxJSON              json.RawMessage `json:"tx_json,omitempty"`
}

// TxResult is a transaction lookup result. Meta is an object for JSON
// lookups and a hex string for binary ones.
type TxResult struct {
	Hash        string          `json:"hash"`
	LedgerIndex uint32          `json:"ledger_index,omitempty"`
	Validated   bool            `json:"validated"`
	Date        uint32          `json:"date,omitempty"`
	Meta        json.RawMessage `json:"meta,omitempty"`
	TxBlob      string          `json:"tx,omitempty"`
	TxJSON      json.RawMessage `json:"tx_json,omitempty"`
}

// Metadata decodes Meta when it is a JSON object.
func (r TxResult) Metadata() (*transactions.TransactionMetadata, error) {
	if len(r.Meta) == 0 || r.Meta[0] != '{' {
		return nil, fmt.Errorf("metadata not available as JSON")
	}
	var meta transactions.TransactionMetadata
	if err := json.Unmarshal(r.Meta, &meta); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return &meta, nil
}

// TransactionResult returns meta.TransactionResult, or "" when the metadata
// is missing or binary.
func (r TxResult) TransactionResult() string {
	meta, err := r.Metadata()
	if err != nil {
		return ""
	}
	return meta.TransactionResult
}

// LedgerResult is the reply to a ledger request.
type LedgerResult struct {
	LedgerHash         string       `json:"ledger_hash"`
	LedgerIndex        uint32       `json:"ledger_index"`
	LedgerCurrentIndex uint32       `json:"ledger_current_index"`
	Validated          bool         `json:"validated"`
	Ledger             LedgerHeader `json:"ledger"`
}

// LedgerHeader carries the fields of a ledger header this SDK reads.
type LedgerHeader struct {
	LedgerIndex LedgerSpecifier `json:"ledger_index"`
	LedgerHash  string          `json:"ledger_hash"`
	CloseTime   uint32          `json:"close_time"`
	ParentHash  string          `json:"parent_hash"`
	TotalCoins  string          `json:"total_coins"`
	Closed      bool            `json:"closed"`
}

// AccountRoot is the account_data of an account_info reply.
type AccountRoot struct {
	Account    string `json:"Account"`
	Balance    string `json:"Balance"`
	Flags      uint32 `json:"Flags"`
	OwnerCount uint32 `json:"OwnerCount"`
	Sequence   uint32 `json:"Sequence"`
}

// AccountInfoResult is the reply to an account_info request.
type AccountInfoResult struct {
	AccountData        AccountRoot `json:"account_data"`
	LedgerCurrentIndex uint32      `json:"ledger_current_index,omitempty"`
	LedgerIndex        uint32      `json:"ledger_index,omitempty"`
	Validated          bool        `json:"validated"`
}

// FeeDrops is the fee schedule in drops.
type FeeDrops struct {
	BaseFee       string `json:"base_fee"`
	MedianFee     string `json:"median_fee"`
	MinimumFee    string `json:"minimum_fee"`
	OpenLedgerFee string `json:"open_ledger_fee"`
}

// FeeResult is the reply to a fee request.
type FeeResult struct {
	CurrentLedgerSize  string   `json:"current_ledger_size"`
	CurrentQueueSize   string   `json:"current_queue_size"`
	Drops              FeeDrops `json:"drops"`
	ExpectedLedgerSize string   `json:"expected_ledger_size"`
	LedgerCurrentIndex uint32   `json:"ledger_current_index"`
	MaxQueueSize       string   `json:"max_queue_size"`
}
