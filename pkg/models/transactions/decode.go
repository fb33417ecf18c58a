// pkg/models/transactions/decode.go
package transactions

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownTransactionType = errors.New("unknown transaction type")

type decoder func([]byte) (Transaction, error)

var decoders = map[TxType]decoder{
	TypePayment:      decodeAs[Payment],
	TypeAccountSet:   decodeAs[AccountSet],
	TypeTrustSet:     decodeAs[TrustSet],
	TypeEscrowCreate: decodeAs[EscrowCreate],
	TypeEscrowFinish: decodeAs[EscrowFinish],
	TypeEscrowCancel: decodeAs[EscrowCancel],
	TypeOfferCreate:  decodeAs[OfferCreate],
	TypeOfferCancel:  decodeAs[OfferCancel],
}

func decodeAs[T Transaction](data []byte) (Transaction, error) {
	var tx T
	if err := json.Unmarshal(data, &tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// FromJSON decodes a transaction object, picking the concrete type from
// its TransactionType field. The result is not validated.
func FromJSON(data []byte) (Transaction, error) {
	var head struct {
		TransactionType TxType `json:"TransactionType"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}
	decode, ok := decoders[head.TransactionType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransactionType, head.TransactionType)
	}
	tx, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", head.TransactionType, err)
	}
	return tx, nil
}

// SupportedTypes lists the transaction types FromJSON understands.
func SupportedTypes() []TxType {
	types := make([]TxType, 0, len(decoders))
	for t := range decoders {
		types = append(types, t)
	}
	return types
}
