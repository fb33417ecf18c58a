// pkg/models/transactions/transaction.go
package transactions

// TxType identifies a transaction variant on the wire.
type TxType string

const (
	TypePayment      TxType = "Payment"
	TypeAccountSet   TxType = "AccountSet"
	TypeTrustSet     TxType = "TrustSet"
	TypeEscrowCreate TxType = "EscrowCreate"
	TypeEscrowFinish TxType = "EscrowFinish"
	TypeEscrowCancel TxType = "EscrowCancel"
	TypeOfferCreate  TxType = "OfferCreate"
	TypeOfferCancel  TxType = "OfferCancel"
)

// Transaction is implemented by every transaction variant. Implementations are
// plain values: WithCommon returns a modified copy and never touches the receiver,
// so a Transaction handed to the SDK is never mutated behind the caller's back.
type Transaction interface {
	TxType() TxType
	// Common returns the fields shared by all transactions, with
	// TransactionType always matching TxType.
	Common() BaseTx
	WithCommon(BaseTx) Transaction
	Validate() error
}

// BaseTx holds the fields shared by all transaction types.
type BaseTx struct {
	Account            string   `json:"Account" validate:"required,classic_address"`
	TransactionType    TxType   `json:"TransactionType"`
	Fee                string   `json:"Fee,omitempty" validate:"omitempty,numeric"`
	Sequence           uint32   `json:"Sequence,omitempty"`
	AccountTxnID       string   `json:"AccountTxnID,omitempty"`
	Flags              uint32   `json:"Flags,omitempty"`
	LastLedgerSequence uint32   `json:"LastLedgerSequence,omitempty"`
	Memos              []Memo   `json:"Memos,omitempty"`
	NetworkID          uint32   `json:"NetworkID,omitempty"`
	Signers            []Signer `json:"Signers,omitempty"`
	SourceTag          *uint32  `json:"SourceTag,omitempty"`
	SigningPubKey      string   `json:"SigningPubKey,omitempty"`
	TicketSequence     uint32   `json:"TicketSequence,omitempty"`
	TxnSignature       string   `json:"TxnSignature,omitempty"`
}

// Memo is arbitrary data attached to a transaction.
type Memo struct {
	MemoType   string `json:"MemoType,omitempty"`
	MemoData   string `json:"MemoData,omitempty"`
	MemoFormat string `json:"MemoFormat,omitempty"`
}

// MarshalJSON wraps the memo the way the ledger expects: {"Memo": {...}}.
func (m Memo) MarshalJSON() ([]byte, error) {
	type plain Memo
	return marshalWrapped("Memo", plain(m))
}

func (m *Memo) UnmarshalJSON(data []byte) error {
	type plain Memo
	var p plain
	if err := unmarshalWrapped("Memo", data, &p); err != nil {
		return err
	}
	*m = Memo(p)
	return nil
}

// Signer is one entry of a multi-signature.
type Signer struct {
	Account       string `json:"Account"`
	SigningPubKey string `json:"SigningPubKey"`
	TxnSignature  string `json:"TxnSignature"`
}

func (s Signer) MarshalJSON() ([]byte, error) {
	type plain Signer
	return marshalWrapped("Signer", plain(s))
}

func (s *Signer) UnmarshalJSON(data []byte) error {
	type plain Signer
	var p plain
	if err := unmarshalWrapped("Signer", data, &p); err != nil {
		return err
	}
	*s = Signer(p)
	return nil
}

func (b BaseTx) normalized(t TxType) BaseTx {
	b.TransactionType = t
	return b
}

// IsSigned reports whether the transaction carries a single signature.
func IsSigned(tx Transaction) bool {
	c := tx.Common()
	return c.SigningPubKey != "" && c.TxnSignature != ""
}
