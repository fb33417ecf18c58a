// pkg/models/transactions/escrow.go
package transactions

// EscrowCreate sequesters XRP until a time or crypto-condition releases it.
type EscrowCreate struct {
	BaseTx
	Amount         Amount  `json:"Amount" validate:"required"`
	Destination    string  `json:"Destination" validate:"required,classic_address"`
	DestinationTag *uint32 `json:"DestinationTag,omitempty"`
	CancelAfter    uint32  `json:"CancelAfter,omitempty"`
	FinishAfter    uint32  `json:"FinishAfter,omitempty"`
	Condition      string  `json:"Condition,omitempty" validate:"omitempty,hexadecimal"`
}

func (e EscrowCreate) TxType() TxType { return TypeEscrowCreate }

func (e EscrowCreate) Common() BaseTx { return e.BaseTx.normalized(TypeEscrowCreate) }

func (e EscrowCreate) WithCommon(b BaseTx) Transaction {
	e.BaseTx = b.normalized(TypeEscrowCreate)
	return e
}

func (e EscrowCreate) Validate() error {
	if err := checkStruct(TypeEscrowCreate, e); err != nil {
		return err
	}
	if !e.Amount.IsXRP() {
		return &ValidationError{Type: TypeEscrowCreate, Fields: []string{"Amount"}, Reason: "escrow amount must be XRP"}
	}
	if err := checkAmount(TypeEscrowCreate, "Amount", e.Amount); err != nil {
		return err
	}
	if e.FinishAfter == 0 && e.CancelAfter == 0 {
		return invalid(TypeEscrowCreate, "either FinishAfter or CancelAfter is required")
	}
	if e.FinishAfter == 0 && e.Condition == "" {
		return invalid(TypeEscrowCreate, "either FinishAfter or Condition is required")
	}
	if e.FinishAfter != 0 && e.CancelAfter != 0 && e.CancelAfter <= e.FinishAfter {
		return invalid(TypeEscrowCreate, "CancelAfter must be after FinishAfter")
	}
	return nil
}

// EscrowFinish delivers escrowed XRP to its destination.
type EscrowFinish struct {
	BaseTx
	Owner         string `json:"Owner" validate:"required,classic_address"`
	OfferSequence uint32 `json:"OfferSequence" validate:"required"`
	Condition     string `json:"Condition,omitempty" validate:"omitempty,hexadecimal"`
	Fulfillment   string `json:"Fulfillment,omitempty" validate:"omitempty,hexadecimal"`
}

func (e EscrowFinish) TxType() TxType { return TypeEscrowFinish }

func (e EscrowFinish) Common() BaseTx { return e.BaseTx.normalized(TypeEscrowFinish) }

func (e EscrowFinish) WithCommon(b BaseTx) Transaction {
	e.BaseTx = b.normalized(TypeEscrowFinish)
	return e
}

func (e EscrowFinish) Validate() error {
	if err := checkStruct(TypeEscrowFinish, e); err != nil {
		return err
	}
	if (e.Condition == "") != (e.Fulfillment == "") {
		return invalid(TypeEscrowFinish, "Condition and Fulfillment must be provided together")
	}
	return nil
}

// EscrowCancel returns escrowed XRP to its sender.
type EscrowCancel struct {
	BaseTx
	Owner         string `json:"Owner" validate:"required,classic_address"`
	OfferSequence uint32 `json:"OfferSequence" validate:"required"`
}

func (e EscrowCancel) TxType() TxType { return TypeEscrowCancel }

func (e EscrowCancel) Common() BaseTx { return e.BaseTx.normalized(TypeEscrowCancel) }

func (e EscrowCancel) WithCommon(b BaseTx) Transaction {
	e.BaseTx = b.normalized(TypeEscrowCancel)
	return e
}

func (e EscrowCancel) Validate() error {
	return checkStruct(TypeEscrowCancel, e)
}
