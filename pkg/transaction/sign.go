// pkg/transaction/sign.go
package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/rovshanmuradov/xrpl-sdk/pkg/clients"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/models/transactions"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/wallet"
)

var (
	ErrNotAutofilled = errors.New("transaction is missing Fee or Sequence")
	ErrHashMismatch  = errors.New("blob does not match hash")
)

// SignedTransaction is a signed transaction ready to submit. Hash is
// derived from Blob once and identifies the transaction from then on.
type SignedTransaction struct {
	Tx   transactions.Transaction
	Blob string
	Hash string
}

// Sign validates tx, signs it with w and encodes it. tx is not modified.
func Sign(tx transactions.Transaction, w *wallet.Wallet) (SignedTransaction, error) {
	if err := tx.Validate(); err != nil {
		return SignedTransaction{}, err
	}
	common := tx.Common()
	if common.Fee == "" || (common.Sequence == 0 && common.TicketSequence == 0) {
		return SignedTransaction{}, ErrNotAutofilled
	}

	common.SigningPubKey = w.PublicKey
	common.TxnSignature = ""
	unsigned := tx.WithCommon(common)

	digest, err := signingDigest(unsigned)
	if err != nil {
		return SignedTransaction{}, err
	}
	common.TxnSignature = w.Sign(digest)
	signed := tx.WithCommon(common)

	blob, err := EncodeBlob(signed)
	if err != nil {
		return SignedTransaction{}, err
	}
	hash, err := HashBlob(blob)
	if err != nil {
		return SignedTransaction{}, err
	}
	return SignedTransaction{Tx: signed, Blob: blob, Hash: hash}, nil
}

// SignAndAutofill autofills tx from the ledger and signs the result.
func SignAndAutofill(ctx context.Context, client clients.LedgerClient, tx transactions.Transaction, w *wallet.Wallet, opts ...Option) (SignedTransaction, error) {
	return NewSubmitter(client, opts...).SignAndAutofill(ctx, tx, w)
}

// VerifySignature checks that signed carries a valid signature over its
// own content and that Blob and Hash match Tx.
func VerifySignature(signed SignedTransaction) (bool, error) {
	decoded, err := DecodeBlob(signed.Blob)
	if err != nil {
		return false, err
	}
	hash, err := HashBlob(signed.Blob)
	if err != nil {
		return false, err
	}
	if hash != signed.Hash {
		return false, ErrHashMismatch
	}
	if signed.Tx != nil {
		blob, err := EncodeBlob(signed.Tx)
		if err != nil {
			return false, err
		}
		if blob != signed.Blob {
			return false, ErrHashMismatch
		}
	}

	common := decoded.Common()
	if common.SigningPubKey == "" || common.TxnSignature == "" {
		return false, nil
	}
	digest, err := signingDigest(decoded)
	if err != nil {
		return false, err
	}
	ok, err := wallet.Verify(common.SigningPubKey, common.TxnSignature, digest)
	if err != nil {
		return false, fmt.Errorf("verify %s: %w", signed.Hash, err)
	}
	return ok, nil
}
