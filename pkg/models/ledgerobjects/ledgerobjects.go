// pkg/models/ledgerobjects/ledgerobjects.go
package ledgerobjects

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// EntryType is the LedgerEntryType of a ledger object.
type EntryType string

const (
	EntryEscrow     EntryType = "Escrow"
	EntryAmendments EntryType = "Amendments"
)

var (
	ErrUnknownEntryType = errors.New("unknown ledger entry type")
	ErrInvalidObject    = errors.New("invalid ledger object")
)

// Object is a ledger entry as stored in a validated ledger.
type Object interface {
	EntryType() EntryType
	Validate() error
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func objectValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		validate = v
	})
	return validate
}

func checkObject(t EntryType, v any) error {
	err := objectValidator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %s: %v", ErrInvalidObject, t, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fmt.Errorf("%w: %s: %s", ErrInvalidObject, t, strings.Join(fields, ", "))
}

// ObjectFromJSON decodes and validates a ledger object, picking the concrete
// type from its LedgerEntryType field.
func ObjectFromJSON(data []byte) (Object, error) {
	var head struct {
		LedgerEntryType EntryType `json:"LedgerEntryType"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode ledger object: %w", err)
	}

	var obj Object
	switch head.LedgerEntryType {
	case EntryEscrow:
		var e Escrow
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("decode escrow: %w", err)
		}
		obj = e
	case EntryAmendments:
		var a Amendments
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("decode amendments: %w", err)
		}
		obj = a
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntryType, head.LedgerEntryType)
	}

	if err := obj.Validate(); err != nil {
		return nil, err
	}
	return obj, nil
}
