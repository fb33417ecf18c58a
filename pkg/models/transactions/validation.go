// pkg/models/transactions/validation.go
package transactions

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/rovshanmuradov/xrpl-sdk/pkg/addresscodec"
)

// ErrInvalidTransaction is matched by every *ValidationError.
var ErrInvalidTransaction = errors.New("invalid transaction")

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Type   TxType
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "invalid %s", e.Type)
	if len(e.Fields) > 0 {
		fmt.Fprintf(&sb, ": missing or malformed %s", strings.Join(e.Fields, ", "))
	}
	if e.Reason != "" {
		fmt.Fprintf(&sb, ": %s", e.Reason)
	}
	return sb.String()
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidTransaction
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator with the ledger specific rules
// registered. Field names in errors are the JSON names.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("classic_address", func(fl validator.FieldLevel) bool {
			return addresscodec.IsValidClassicAddress(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// checkStruct runs the tag based rules over v and converts failures into a
// *ValidationError for the given type.
func checkStruct(t TxType, v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Type: t, Reason: err.Error()}
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Type: t, Fields: fields}
}

func invalid(t TxType, format string, args ...any) error {
	return &ValidationError{Type: t, Reason: fmt.Sprintf(format, args...)}
}

func checkAmount(t TxType, field string, a Amount) error {
	if err := a.Check(); err != nil {
		return &ValidationError{Type: t, Fields: []string{field}, Reason: err.Error()}
	}
	return nil
}

func checkOptionalAmount(t TxType, field string, a *Amount) error {
	if a == nil {
		return nil
	}
	return checkAmount(t, field, *a)
}
