// pkg/transaction/hash.go
package transaction

import (
	"bytes"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rovshanmuradov/xrpl-sdk/pkg/models/transactions"
)

// Hash prefixes, as four bytes: three letters and a zero.
var (
	prefixTransactionID   = []byte("TXN\x00")
	prefixTransactionSign = []byte("STX\x00")
)

// sha512Half returns the first 32 bytes of SHA-512 over the concatenation
// of parts.
func sha512Half(parts ...[]byte) []byte {
	h := sha512.New()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)[:32]
}

// canonicalJSON encodes tx with object keys sorted at every level, so the
// same transaction always produces the same bytes.
func canonicalJSON(tx transactions.Transaction) ([]byte, error) {
	raw, err := json.Marshal(tx.WithCommon(tx.Common()))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", tx.TxType(), err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic map[string]any
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("normalize %s: %w", tx.TxType(), err)
	}
	// encoding/json writes map keys in sorted order
	return json.Marshal(generic)
}

// signingDigest is the digest a single signature covers: the canonical
// encoding without TxnSignature.
func signingDigest(tx transactions.Transaction) ([]byte, error) {
	common := tx.Common()
	common.TxnSignature = ""
	payload, err := canonicalJSON(tx.WithCommon(common))
	if err != nil {
		return nil, err
	}
	return sha512Half(prefixTransactionSign, payload), nil
}

// EncodeBlob returns the hex blob submitted for tx.
func EncodeBlob(tx transactions.Transaction) (string, error) {
	payload, err := canonicalJSON(tx)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(payload)), nil
}

// DecodeBlob decodes a blob produced by EncodeBlob.
func DecodeBlob(blob string) (transactions.Transaction, error) {
	payload, err := hex.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("decode blob: %w", err)
	}
	return transactions.FromJSON(payload)
}

// HashBlob computes the transaction hash of a blob, upper case hex.
func HashBlob(blob string) (string, error) {
	payload, err := hex.DecodeString(blob)
	if err != nil {
		return "", fmt.Errorf("decode blob: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(sha512Half(prefixTransactionID, payload))), nil
}
