// pkg/models/ledgerobjects/escrow.go
package ledgerobjects

import "encoding/json"

// Escrow holds XRP until its release conditions are met.
type Escrow struct {
	Account           string  `json:"Account" validate:"required"`
	Amount            string  `json:"Amount" validate:"required,numeric"`
	Destination       string  `json:"Destination" validate:"required"`
	Flags             uint32  `json:"Flags" validate:"eq=0"`
	OwnerNode         string  `json:"OwnerNode" validate:"required"`
	PreviousTxnID     string  `json:"PreviousTxnID" validate:"required"`
	PreviousTxnLgrSeq uint32  `json:"PreviousTxnLgrSeq" validate:"required"`
	Condition         string  `json:"Condition,omitempty"`
	CancelAfter       *uint32 `json:"CancelAfter,omitempty"`
	DestinationNode   string  `json:"DestinationNode,omitempty"`
	DestinationTag    *uint32 `json:"DestinationTag,omitempty"`
	FinishAfter       *uint32 `json:"FinishAfter,omitempty"`
	SourceTag         *uint32 `json:"SourceTag,omitempty"`
	Index             string  `json:"index,omitempty"`
}

func (Escrow) EntryType() EntryType { return EntryEscrow }

func (e Escrow) Validate() error { return checkObject(EntryEscrow, e) }

func (e Escrow) MarshalJSON() ([]byte, error) {
	type plain Escrow
	return json.Marshal(struct {
		plain
		LedgerEntryType EntryType `json:"LedgerEntryType"`
	}{plain(e), EntryEscrow})
}

// MDEscrowFields is an escrow as it appears inside transaction metadata,
// where any field may be absent.
type MDEscrowFields struct {
	Account           *string `json:"Account,omitempty"`
	Amount            *string `json:"Amount,omitempty"`
	Destination       *string `json:"Destination,omitempty"`
	Flags             *uint32 `json:"Flags,omitempty"`
	OwnerNode         *string `json:"OwnerNode,omitempty"`
	PreviousTxnID     *string `json:"PreviousTxnID,omitempty"`
	PreviousTxnLgrSeq *uint32 `json:"PreviousTxnLgrSeq,omitempty"`
	Condition         *string `json:"Condition,omitempty"`
	CancelAfter       *uint32 `json:"CancelAfter,omitempty"`
	DestinationNode   *string `json:"DestinationNode,omitempty"`
	DestinationTag    *uint32 `json:"DestinationTag,omitempty"`
	FinishAfter       *uint32 `json:"FinishAfter,omitempty"`
	SourceTag         *uint32 `json:"SourceTag,omitempty"`
}
