// pkg/models/requests/requests.go
package requests

import (
	"encoding/json"
	"strconv"
)

// Methods sent to a ledger node.
const (
	MethodSubmit      = "submit"
	MethodTx          = "tx"
	MethodLedger      = "ledger"
	MethodAccountInfo = "account_info"
	MethodFee         = "fee"
)

// LedgerSpecifier selects a ledger either by shortcut or by index.
type LedgerSpecifier struct {
	shortcut string
	index    uint32
}

var (
	Validated = LedgerSpecifier{shortcut: "validated"}
	Current   = LedgerSpecifier{shortcut: "current"}
	Closed    = LedgerSpecifier{shortcut: "closed"}
)

// LedgerIndex selects the ledger with the given index.
func LedgerIndex(index uint32) LedgerSpecifier {
	return LedgerSpecifier{index: index}
}

func (l LedgerSpecifier) IsZero() bool {
	return l.shortcut == "" && l.index == 0
}

func (l LedgerSpecifier) String() string {
	if l.shortcut != "" {
		return l.shortcut
	}
	return strconv.FormatUint(uint64(l.index), 10)
}

func (l LedgerSpecifier) MarshalJSON() ([]byte, error) {
	if l.shortcut != "" {
		return json.Marshal(l.shortcut)
	}
	return json.Marshal(l.index)
}

func (l *LedgerSpecifier) UnmarshalJSON(data []byte) error {
	var index uint32
	if err := json.Unmarshal(data, &index); err == nil {
		*l = LedgerSpecifier{index: index}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if n, err := strconv.ParseUint(s, 10, 32); err == nil {
		*l = LedgerSpecifier{index: uint32(n)}
		return nil
	}
	*l = LedgerSpecifier{shortcut: s}
	return nil
}

// SubmitRequest submits a signed transaction blob.
type SubmitRequest struct {
	TxBlob   string `json:"tx_blob"`
	FailHard bool   `json:"fail_hard,omitempty"`
}

func (SubmitRequest) Method() string { return MethodSubmit }

// TxRequest looks a transaction up by hash. MinLedger and MaxLedger bound
// the search so that a missing transaction can be reported as definitely
// absent from that range.
type TxRequest struct {
	Transaction string  `json:"transaction"`
	Binary      bool    `json:"binary"`
	MinLedger   *uint32 `json:"min_ledger,omitempty"`
	MaxLedger   *uint32 `json:"max_ledger,omitempty"`
}

func (TxRequest) Method() string { return MethodTx }

// LedgerRequest fetches a ledger header.
type LedgerRequest struct {
	LedgerIndex  LedgerSpecifier `json:"ledger_index"`
	Transactions bool            `json:"transactions,omitempty"`
	Expand       bool            `json:"expand,omitempty"`
}

func (LedgerRequest) Method() string { return MethodLedger }

// AccountInfoRequest fetches the account root of an account.
type AccountInfoRequest struct {
	Account     string          `json:"account"`
	LedgerIndex LedgerSpecifier `json:"ledger_index"`
	Queue       bool            `json:"queue,omitempty"`
	Strict      bool            `json:"strict,omitempty"`
}

func (AccountInfoRequest) Method() string { return MethodAccountInfo }

// FeeRequest asks for the current transaction cost.
type FeeRequest struct{}

func (FeeRequest) Method() string { return MethodFee }
