// pkg/models/transactions/trust_set.go
package transactions

// TrustSet flags.
const (
	TfSetfAuth      uint32 = 0x00010000
	TfSetNoRipple   uint32 = 0x00020000
	TfClearNoRipple uint32 = 0x00040000
	TfSetFreeze     uint32 = 0x00100000
	TfClearFreeze   uint32 = 0x00200000
)

// TrustSet creates or modifies a trust line.
type TrustSet struct {
	BaseTx
	LimitAmount Amount  `json:"LimitAmount" validate:"required"`
	QualityIn   *uint32 `json:"QualityIn,omitempty"`
	QualityOut  *uint32 `json:"QualityOut,omitempty"`
}

func (t TrustSet) TxType() TxType { return TypeTrustSet }

func (t TrustSet) Common() BaseTx { return t.BaseTx.normalized(TypeTrustSet) }

func (t TrustSet) WithCommon(b BaseTx) Transaction {
	t.BaseTx = b.normalized(TypeTrustSet)
	return t
}

func (t TrustSet) Validate() error {
	if err := checkStruct(TypeTrustSet, t); err != nil {
		return err
	}
	if t.LimitAmount.IsXRP() {
		return &ValidationError{Type: TypeTrustSet, Fields: []string{"LimitAmount"}, Reason: "limit must be an issued currency"}
	}
	if err := checkAmount(TypeTrustSet, "LimitAmount", t.LimitAmount); err != nil {
		return err
	}
	if t.Flags&TfSetNoRipple != 0 && t.Flags&TfClearNoRipple != 0 {
		return invalid(TypeTrustSet, "conflicting NoRipple flags")
	}
	if t.Flags&TfSetFreeze != 0 && t.Flags&TfClearFreeze != 0 {
		return invalid(TypeTrustSet, "conflicting freeze flags")
	}
	return nil
}
