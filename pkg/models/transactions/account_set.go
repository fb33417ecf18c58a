// pkg/models/transactions/account_set.go
package transactions

// AccountSet flags for SetFlag / ClearFlag.
const (
	AsfRequireDest   uint32 = 1
	AsfRequireAuth   uint32 = 2
	AsfDisallowXRP   uint32 = 3
	AsfDisableMaster uint32 = 4
	AsfAccountTxnID  uint32 = 5
	AsfNoFreeze      uint32 = 6
	AsfGlobalFreeze  uint32 = 7
	AsfDefaultRipple uint32 = 8
	AsfDepositAuth   uint32 = 9
)

// AccountSet modifies the properties of an account.
type AccountSet struct {
	BaseTx
	ClearFlag    uint32  `json:"ClearFlag,omitempty"`
	SetFlag      uint32  `json:"SetFlag,omitempty"`
	Domain       string  `json:"Domain,omitempty" validate:"omitempty,hexadecimal,max=512"`
	EmailHash    string  `json:"EmailHash,omitempty" validate:"omitempty,hexadecimal,len=32"`
	MessageKey   string  `json:"MessageKey,omitempty" validate:"omitempty,hexadecimal"`
	TransferRate *uint32 `json:"TransferRate,omitempty"`
	TickSize     *uint8  `json:"TickSize,omitempty"`
}

func (a AccountSet) TxType() TxType { return TypeAccountSet }

func (a AccountSet) Common() BaseTx { return a.BaseTx.normalized(TypeAccountSet) }

func (a AccountSet) WithCommon(b BaseTx) Transaction {
	a.BaseTx = b.normalized(TypeAccountSet)
	return a
}

func (a AccountSet) Validate() error {
	if err := checkStruct(TypeAccountSet, a); err != nil {
		return err
	}
	if a.SetFlag != 0 && a.SetFlag == a.ClearFlag {
		return invalid(TypeAccountSet, "SetFlag and ClearFlag are both %d", a.SetFlag)
	}
	// 0 clears the rate; otherwise 1.0 to 2.0 in billionths
	if a.TransferRate != nil && *a.TransferRate != 0 && (*a.TransferRate < 1_000_000_000 || *a.TransferRate > 2_000_000_000) {
		return invalid(TypeAccountSet, "TransferRate %d out of range", *a.TransferRate)
	}
	if a.TickSize != nil && *a.TickSize != 0 && (*a.TickSize < 3 || *a.TickSize > 15) {
		return invalid(TypeAccountSet, "TickSize %d out of range", *a.TickSize)
	}
	return nil
}
