// pkg/wallet/wallet.go
package wallet

import (
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/rovshanmuradov/xrpl-sdk/pkg/addresscodec"
)

var (
	ErrInvalidPrivateKey = errors.New("invalid private key")
	ErrInvalidPublicKey  = errors.New("invalid public key")
	ErrInvalidSignature  = errors.New("invalid signature")
)

// Wallet is a secp256k1 key pair and the classic address derived from it.
type Wallet struct {
	PrivateKey     *secp256k1.PrivateKey
	PublicKey      string // compressed, upper case hex
	ClassicAddress string
	// Sequence is bookkeeping for the caller; the SDK never changes it.
	Sequence uint32
}

// New creates a wallet with a random key.
func New() (*Wallet, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate private key: %w", err)
	}
	return fromKey(key)
}

// FromPrivateKeyHex creates a wallet from a hex encoded private key. The
// 33 byte form with a leading 00 is accepted as well.
func FromPrivateKeyHex(privateKeyHex string) (*Wallet, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(privateKeyHex))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	if len(raw) == 33 && raw[0] == 0x00 {
		raw = raw[1:]
	}
	if len(raw) != secp256k1.PrivKeyBytesLen {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPrivateKey, secp256k1.PrivKeyBytesLen, len(raw))
	}
	key := secp256k1.PrivKeyFromBytes(raw)
	if key.Key.IsZero() {
		return nil, fmt.Errorf("%w: zero key", ErrInvalidPrivateKey)
	}
	return fromKey(key)
}

func fromKey(key *secp256k1.PrivateKey) (*Wallet, error) {
	pub := key.PubKey().SerializeCompressed()
	address, err := addresscodec.ClassicAddressFromPublicKey(pub)
	if err != nil {
		return nil, err
	}
	return &Wallet{
		PrivateKey:     key,
		PublicKey:      strings.ToUpper(hex.EncodeToString(pub)),
		ClassicAddress: address,
	}, nil
}

// LoadWallets reads wallets from a CSV file with the columns
// [Name, PrivateKeyHex]. The first row is a header. Rows that do not parse
// are skipped.
func LoadWallets(path string) (map[string]*Wallet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV file is empty or missing data")
	}

	wallets := make(map[string]*Wallet)
	for _, record := range records[1:] {
		if len(record) != 2 {
			continue
		}
		w, err := FromPrivateKeyHex(record[1])
		if err != nil {
			continue
		}
		wallets[record[0]] = w
	}
	return wallets, nil
}

// PrivateKeyHex returns the private key as upper case hex.
func (w *Wallet) PrivateKeyHex() string {
	return strings.ToUpper(hex.EncodeToString(w.PrivateKey.Serialize()))
}

// Sign signs a 32 byte digest with deterministic ECDSA and returns the DER
// signature as upper case hex.
func (w *Wallet) Sign(digest []byte) string {
	sig := ecdsa.Sign(w.PrivateKey, digest)
	return strings.ToUpper(hex.EncodeToString(sig.Serialize()))
}

// Verify checks a DER signature in hex against digest and a compressed
// public key in hex.
func Verify(publicKeyHex, signatureHex string, digest []byte) (bool, error) {
	pubBytes, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	pub, err := secp256k1.ParsePubKey(pubBytes)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	sigBytes, err := hex.DecodeString(signatureHex)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	sig, err := ecdsa.ParseDERSignature(sigBytes)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return sig.Verify(digest, pub), nil
}

// String returns the classic address of the wallet.
func (w *Wallet) String() string {
	return w.ClassicAddress
}
