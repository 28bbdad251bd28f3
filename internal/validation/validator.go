// Package validation turns untyped request payloads into typed requests
package validation

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Error is returned when a payload fails validation. It carries every
// violation found, in field order.
type Error struct {
	Violations []string
}

func (e *Error) Error() string {
	return strings.Join(e.Violations, "; ")
}

func (e *Error) add(field, msg string) {
	e.Violations = append(e.Violations, field+": "+msg)
}

func (e *Error) orNil() error {
	if len(e.Violations) == 0 {
		return nil
	}
	return e
}

// Validator validates loan payloads
type Validator struct {
	v *validator.Validate
}

// New creates a Validator with the custom rules registered
func New() *Validator {
	v := validator.New()
	if err := v.RegisterValidation("currencycode", validateCurrencyCode); err != nil {
		panic(err)
	}
	return &Validator{v: v}
}

// validateCurrencyCode checks for a three letter alphabetic code, any case
func validateCurrencyCode(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if len(value) != 3 {
		return false
	}
	for _, r := range value {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
