// pkg/addresscodec/codec.go
package addresscodec

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // account ids are defined over RIPEMD-160
)

const (
	// AccountIDLength is the size of a decoded account id.
	AccountIDLength = 20

	accountIDPrefix byte = 0x00
	checksumLength       = 4
)

// ledgerAlphabet is the base58 dictionary used by the ledger, starting with 'r'.
var ledgerAlphabet = base58.NewAlphabet("rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz")

var (
	ErrInvalidAddress  = errors.New("invalid classic address")
	ErrInvalidChecksum = errors.New("invalid checksum")
	ErrInvalidLength   = errors.New("invalid payload length")
)

// EncodeAccountID encodes a 20 byte account id as a classic address.
func EncodeAccountID(accountID []byte) (string, error) {
	if len(accountID) != AccountIDLength {
		return "", fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidLength, len(accountID), AccountIDLength)
	}
	return checkEncode(accountIDPrefix, accountID), nil
}

// DecodeClassicAddress returns the account id behind a classic address.
func DecodeClassicAddress(address string) ([]byte, error) {
	prefix, payload, err := checkDecode(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if prefix != accountIDPrefix || len(payload) != AccountIDLength {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, address)
	}
	return payload, nil
}

// IsValidClassicAddress reports whether address decodes to an account id.
func IsValidClassicAddress(address string) bool {
	_, err := DecodeClassicAddress(address)
	return err == nil
}

// AccountIDFromPublicKey derives the account id of a public key:
// RIPEMD160(SHA256(pubkey)).
func AccountIDFromPublicKey(publicKey []byte) []byte {
	sha := sha256.Sum256(publicKey)
	h := ripemd160.New()
	h.Write(sha[:])
	return h.Sum(nil)
}

// ClassicAddressFromPublicKey derives the classic address of a public key.
func ClassicAddressFromPublicKey(publicKey []byte) (string, error) {
	if len(publicKey) == 0 {
		return "", fmt.Errorf("%w: empty public key", ErrInvalidLength)
	}
	return EncodeAccountID(AccountIDFromPublicKey(publicKey))
}

func checkEncode(prefix byte, payload []byte) string {
	buf := make([]byte, 0, 1+len(payload)+checksumLength)
	buf = append(buf, prefix)
	buf = append(buf, payload...)
	buf = append(buf, checksum(buf)...)
	return base58.EncodeAlphabet(buf, ledgerAlphabet)
}

func checkDecode(s string) (byte, []byte, error) {
	if s == "" {
		return 0, nil, ErrInvalidLength
	}
	decoded, err := base58.DecodeAlphabet(s, ledgerAlphabet)
	if err != nil {
		return 0, nil, err
	}
	if len(decoded) < 1+checksumLength {
		return 0, nil, ErrInvalidLength
	}
	body := decoded[:len(decoded)-checksumLength]
	if !bytes.Equal(checksum(body), decoded[len(decoded)-checksumLength:]) {
		return 0, nil, ErrInvalidChecksum
	}
	return body[0], body[1:], nil
}

func checksum(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:checksumLength]
}
