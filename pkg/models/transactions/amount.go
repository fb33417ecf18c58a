package transactions

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// DropsPerXRP is the number of drops in one XRP.
const DropsPerXRP = 1_000_000

var ErrInvalidAmount = errors.New("invalid amount")

// IssuedCurrencyAmount is a non-XRP amount.
type IssuedCurrencyAmount struct {
	Currency string `json:"currency" validate:"required"`
	Issuer   string `json:"issuer" validate:"required"`
	Value    string `json:"value" validate:"required"`
}

// Amount is either an XRP amount in drops or an issued currency amount.
// On the wire XRP is a string of drops and issued currencies are objects.
type Amount struct {
	Drops  string
	Issued *IssuedCurrencyAmount
}

// XRPDrops builds an XRP amount from a number of drops.
func XRPDrops(drops uint64) Amount {
	return Amount{Drops: strconv.FormatUint(drops, 10)}
}

// IssuedCurrency builds an issued currency amount.
func IssuedCurrency(currency, issuer, value string) Amount {
	return Amount{Issued: &IssuedCurrencyAmount{Currency: currency, Issuer: issuer, Value: value}}
}

// IsXRP reports whether the amount is denominated in drops.
func (a Amount) IsXRP() bool {
	return a.Issued == nil
}

// IsZero reports whether the amount is unset.
func (a Amount) IsZero() bool {
	return a.Drops == "" && a.Issued == nil
}

// Check validates the amount's shape.
func (a Amount) Check() error {
	if a.Issued != nil {
		if a.Drops != "" {
			return fmt.Errorf("%w: both drops and issued currency set", ErrInvalidAmount)
		}
		if a.Issued.Currency == "" || a.Issued.Issuer == "" || a.Issued.Value == "" {
			return fmt.Errorf("%w: incomplete issued currency", ErrInvalidAmount)
		}
		if a.Issued.Currency == "XRP" {
			return fmt.Errorf("%w: XRP cannot be an issued currency", ErrInvalidAmount)
		}
		return nil
	}
	if _, err := strconv.ParseUint(a.Drops, 10, 64); err != nil {
		return fmt.Errorf("%w: drops %q", ErrInvalidAmount, a.Drops)
	}
	return nil
}

func (a Amount) String() string {
	if a.Issued != nil {
		return fmt.Sprintf("%s %s/%s", a.Issued.Value, a.Issued.Currency, a.Issued.Issuer)
	}
	return a.Drops + " drops"
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if a.Issued != nil {
		return json.Marshal(a.Issued)
	}
	return json.Marshal(a.Drops)
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}
	if data[0] == '"' {
		var drops string
		if err := json.Unmarshal(data, &drops); err != nil {
			return err
		}
		*a = Amount{Drops: drops}
		return nil
	}
	var issued IssuedCurrencyAmount
	if err := json.Unmarshal(data, &issued); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	*a = Amount{Issued: &issued}
	return nil
}
