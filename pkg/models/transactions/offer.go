// pkg/models/transactions/offer.go
package transactions

// OfferCreate flags.
const (
	TfPassive           uint32 = 0x00010000
	TfImmediateOrCancel uint32 = 0x00020000
	TfFillOrKill        uint32 = 0x00040000
	TfSell              uint32 = 0x00080000
)

// OfferCreate places an offer in the decentralized exchange.
type OfferCreate struct {
	BaseTx
	TakerGets     Amount `json:"TakerGets" validate:"required"`
	TakerPays     Amount `json:"TakerPays" validate:"required"`
	Expiration    uint32 `json:"Expiration,omitempty"`
	OfferSequence uint32 `json:"OfferSequence,omitempty"`
}

func (o OfferCreate) TxType() TxType { return TypeOfferCreate }

func (o OfferCreate) Common() BaseTx { return o.BaseTx.normalized(TypeOfferCreate) }

func (o OfferCreate) WithCommon(b BaseTx) Transaction {
	o.BaseTx = b.normalized(TypeOfferCreate)
	return o
}

func (o OfferCreate) Validate() error {
	if err := checkStruct(TypeOfferCreate, o); err != nil {
		return err
	}
	if err := checkAmount(TypeOfferCreate, "TakerGets", o.TakerGets); err != nil {
		return err
	}
	if err := checkAmount(TypeOfferCreate, "TakerPays", o.TakerPays); err != nil {
		return err
	}
	if o.TakerGets.IsXRP() && o.TakerPays.IsXRP() {
		return invalid(TypeOfferCreate, "XRP for XRP offers are not allowed")
	}
	if o.Flags&TfImmediateOrCancel != 0 && o.Flags&TfFillOrKill != 0 {
		return invalid(TypeOfferCreate, "ImmediateOrCancel and FillOrKill are exclusive")
	}
	return nil
}

// OfferCancel removes an offer from the decentralized exchange.
type OfferCancel struct {
	BaseTx
	OfferSequence uint32 `json:"OfferSequence" validate:"required"`
}

func (o OfferCancel) TxType() TxType { return TypeOfferCancel }

func (o OfferCancel) Common() BaseTx { return o.BaseTx.normalized(TypeOfferCancel) }

func (o OfferCancel) WithCommon(b BaseTx) Transaction {
	o.BaseTx = b.normalized(TypeOfferCancel)
	return o
}

func (o OfferCancel) Validate() error {
	return checkStruct(TypeOfferCancel, o)
}
