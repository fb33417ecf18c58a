// pkg/models/transactions/metadata.go
package transactions

import "encoding/json"

// TransactionMetadata describes the effects of a validated transaction.
type TransactionMetadata struct {
	TransactionResult string         `json:"TransactionResult"`
	TransactionIndex  uint32         `json:"TransactionIndex"`
	AffectedNodes     []AffectedNode `json:"AffectedNodes,omitempty"`
	DeliveredAmount   *Amount        `json:"delivered_amount,omitempty"`
}

// NodeType tells whether a ledger entry was created, modified or deleted.
type NodeType string

const (
	NodeCreated  NodeType = "CreatedNode"
	NodeModified NodeType = "ModifiedNode"
	NodeDeleted  NodeType = "DeletedNode"
)

// AffectedNode is one ledger entry touched by a transaction. Field maps are
// kept raw and can be decoded into the metadata variants of ledger objects.
type AffectedNode struct {
	NodeType          NodeType        `json:"-"`
	LedgerEntryType   string          `json:"LedgerEntryType"`
	LedgerIndex       string          `json:"LedgerIndex"`
	FinalFields       json.RawMessage `json:"FinalFields,omitempty"`
	PreviousFields    json.RawMessage `json:"PreviousFields,omitempty"`
	NewFields         json.RawMessage `json:"NewFields,omitempty"`
	PreviousTxnID     string          `json:"PreviousTxnID,omitempty"`
	PreviousTxnLgrSeq uint32          `json:"PreviousTxnLgrSeq,omitempty"`
}

type affectedNodeBody struct {
	LedgerEntryType   string          `json:"LedgerEntryType"`
	LedgerIndex       string          `json:"LedgerIndex"`
	FinalFields       json.RawMessage `json:"FinalFields,omitempty"`
	PreviousFields    json.RawMessage `json:"PreviousFields,omitempty"`
	NewFields         json.RawMessage `json:"NewFields,omitempty"`
	PreviousTxnID     string          `json:"PreviousTxnID,omitempty"`
	PreviousTxnLgrSeq uint32          `json:"PreviousTxnLgrSeq,omitempty"`
}

// MarshalJSON writes the node as {"<NodeType>": {...}}.
func (n AffectedNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[NodeType]affectedNodeBody{n.NodeType: n.body()})
}

func (n AffectedNode) body() affectedNodeBody {
	return affectedNodeBody{
		LedgerEntryType:   n.LedgerEntryType,
		LedgerIndex:       n.LedgerIndex,
		FinalFields:       n.FinalFields,
		PreviousFields:    n.PreviousFields,
		NewFields:         n.NewFields,
		PreviousTxnID:     n.PreviousTxnID,
		PreviousTxnLgrSeq: n.PreviousTxnLgrSeq,
	}
}

func (n *AffectedNode) UnmarshalJSON(data []byte) error {
	var outer map[NodeType]affectedNodeBody
	if err := json.Unmarshal(data, &outer); err != nil {
		return err
	}
	for kind, b := range outer {
		*n = AffectedNode{
			NodeType:          kind,
			LedgerEntryType:   b.LedgerEntryType,
			LedgerIndex:       b.LedgerIndex,
			FinalFields:       b.FinalFields,
			PreviousFields:    b.PreviousFields,
			NewFields:         b.NewFields,
			PreviousTxnID:     b.PreviousTxnID,
			PreviousTxnLgrSeq: b.PreviousTxnLgrSeq,
		}
		return nil
	}
	return nil
}

// Fields returns the most complete view of the entry: NewFields for created
// nodes, FinalFields otherwise.
func (n AffectedNode) Fields() json.RawMessage {
	if n.NodeType == NodeCreated {
		return n.NewFields
	}
	return n.FinalFields
}

// IsSuccess reports whether the transaction result is tesSUCCESS.
func (m TransactionMetadata) IsSuccess() bool {
	return m.TransactionResult == "tesSUCCESS"
}
