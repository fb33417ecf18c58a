// pkg/models/transactions/payment.go
package transactions

// Payment flags.
const (
	TfNoRippleDirect uint32 = 0x00010000
	TfPartialPayment uint32 = 0x00020000
	TfLimitQuality   uint32 = 0x00040000
)

// PathStep is one hop of a payment path.
type PathStep struct {
	Account  string `json:"account,omitempty"`
	Currency string `json:"currency,omitempty"`
	Issuer   string `json:"issuer,omitempty"`
}

// Payment transfers value from one account to another.
type Payment struct {
	BaseTx
	Amount         Amount       `json:"Amount" validate:"required"`
	Destination    string       `json:"Destination" validate:"required,classic_address"`
	DestinationTag *uint32      `json:"DestinationTag,omitempty"`
	InvoiceID      string       `json:"InvoiceID,omitempty" validate:"omitempty,hexadecimal,len=64"`
	Paths          [][]PathStep `json:"Paths,omitempty"`
	SendMax        *Amount      `json:"SendMax,omitempty"`
	DeliverMin     *Amount      `json:"DeliverMin,omitempty"`
}

// NewPayment builds and validates a payment.
func NewPayment(account, destination string, amount Amount) (Payment, error) {
	p := Payment{
		BaseTx:      BaseTx{Account: account, TransactionType: TypePayment},
		Amount:      amount,
		Destination: destination,
	}
	if err := p.Validate(); err != nil {
		return Payment{}, err
	}
	return p, nil
}

func (p Payment) TxType() TxType { return TypePayment }

func (p Payment) Common() BaseTx { return p.BaseTx.normalized(TypePayment) }

func (p Payment) WithCommon(b BaseTx) Transaction {
	p.BaseTx = b.normalized(TypePayment)
	return p
}

func (p Payment) Validate() error {
	if err := checkStruct(TypePayment, p); err != nil {
		return err
	}
	if err := checkAmount(TypePayment, "Amount", p.Amount); err != nil {
		return err
	}
	if err := checkOptionalAmount(TypePayment, "SendMax", p.SendMax); err != nil {
		return err
	}
	if err := checkOptionalAmount(TypePayment, "DeliverMin", p.DeliverMin); err != nil {
		return err
	}
	xrpToXRP := p.Amount.IsXRP() && (p.SendMax == nil || p.SendMax.IsXRP())
	if xrpToXRP {
		if p.Account == p.Destination {
			return invalid(TypePayment, "XRP payment to self")
		}
		if len(p.Paths) > 0 {
			return invalid(TypePayment, "XRP to XRP payments cannot have paths")
		}
		if p.Flags&TfPartialPayment != 0 {
			return invalid(TypePayment, "XRP to XRP payments cannot be partial")
		}
	}
	if p.DeliverMin != nil && p.Flags&TfPartialPayment == 0 {
		return invalid(TypePayment, "DeliverMin requires the partial payment flag")
	}
	return nil
}
