package validation

import (
	"branchloan/internal/models"
	"encoding/json"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	fieldRequired   = "field required"
	fieldBorrowerID = "borrower_id"
	fieldAmount     = "amount"
	fieldCurrency   = "currency"
	fieldTermMonths = "term_months"
	fieldAPR        = "interest_rate_apr"
)

// CreateLoanRequest validates payload and returns the typed request. Either
// every field is valid or an *Error listing all violations is returned.
func (v *Validator) CreateLoanRequest(payload map[string]interface{}) (*models.CreateLoanRequest, error) {
	verr := &Error{}
	req := &models.CreateLoanRequest{}

	if raw, ok := present(payload, fieldBorrowerID); !ok {
		verr.add(fieldBorrowerID, fieldRequired)
	} else if s, ok := raw.(string); !ok {
		verr.add(fieldBorrowerID, "must be a string")
	} else if id, err := uuid.Parse(strings.TrimSpace(s)); err != nil {
		verr.add(fieldBorrowerID, "must be a valid UUID")
	} else {
		req.BorrowerID = id
	}

	if raw, ok := present(payload, fieldAmount); !ok {
		verr.add(fieldAmount, fieldRequired)
	} else if d, err := toDecimal(raw); err != nil {
		verr.add(fieldAmount, err.Error())
	} else if !d.IsPositive() {
		verr.add(fieldAmount, "must be greater than 0")
	} else {
		req.Amount = d
	}

	if raw, ok := present(payload, fieldCurrency); !ok {
		verr.add(fieldCurrency, fieldRequired)
	} else if s, ok := raw.(string); !ok {
		verr.add(fieldCurrency, "must be a string")
	} else if err := v.v.Var(s, "required,currencycode"); err != nil {
		verr.add(fieldCurrency, "must be a 3-letter currency code")
	} else {
		req.Currency = s
	}

	if raw, ok := present(payload, fieldTermMonths); !ok {
		verr.add(fieldTermMonths, fieldRequired)
	} else if n, err := toInt(raw); err != nil {
		verr.add(fieldTermMonths, err.Error())
	} else if err := v.v.Var(n, "gt=0"); err != nil {
		verr.add(fieldTermMonths, "must be greater than 0")
	} else {
		req.TermMonths = n
	}

	if raw, ok := present(payload, fieldAPR); ok {
		if d, err := toDecimal(raw); err != nil {
			verr.add(fieldAPR, err.Error())
		} else if d.IsNegative() {
			verr.add(fieldAPR, "must be greater than or equal to 0")
		} else {
			req.InterestRateAPR = decimal.NewNullDecimal(d)
		}
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}
	return req, nil
}

// present reports whether key holds a non-null value
func present(payload map[string]interface{}, key string) (interface{}, bool) {
	raw, ok := payload[key]
	if !ok || raw == nil {
		return nil, false
	}
	return raw, true
}

// Postgres NUMERIC limits. Values outside them are rejected before their
// digits are ever expanded.
const (
	maxIntegerDigits  = 131072
	maxFractionDigits = 16383
	maxNumberLength   = maxIntegerDigits + maxFractionDigits + 32
)

var (
	errNotNumber  = errors.New("must be a number")
	errNotInt     = errors.New("must be an integer")
	errOutOfRange = errors.New("out of range")
)

// toDecimal accepts JSON numbers and numeric strings. Floats only appear when
// the payload was decoded without UseNumber.
func toDecimal(raw interface{}) (decimal.Decimal, error) {
	switch val := raw.(type) {
	case json.Number:
		return parseDecimal(val.String())
	case string:
		return parseDecimal(strings.TrimSpace(val))
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return decimal.Decimal{}, errNotNumber
		}
		return decimal.NewFromFloat(val), nil
	case int:
		return decimal.NewFromInt(int64(val)), nil
	case int64:
		return decimal.NewFromInt(val), nil
	default:
		return decimal.Decimal{}, errNotNumber
	}
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if len(s) > maxNumberLength {
		return decimal.Decimal{}, errOutOfRange
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, errNotNumber
	}
	if !fitsNumeric(d) {
		return decimal.Decimal{}, errOutOfRange
	}
	return d, nil
}

// fitsNumeric checks the digit counts from the coefficient and exponent
// without materialising the value.
func fitsNumeric(d decimal.Decimal) bool {
	if d.IsZero() {
		return true
	}
	exp := int64(d.Exponent())
	digits := int64(len(strings.TrimPrefix(d.Coefficient().String(), "-")))
	if digits+exp > maxIntegerDigits {
		return false
	}
	return exp >= 0 || -exp <= maxFractionDigits
}

// toInt accepts integral JSON numbers and integer strings within int32
func toInt(raw interface{}) (int, error) {
	d, err := toDecimal(raw)
	if errors.Is(err, errOutOfRange) {
		return 0, errOutOfRange
	}
	if err != nil || !d.Equal(d.Truncate(0)) {
		return 0, errNotInt
	}
	if d.GreaterThan(decimal.NewFromInt(math.MaxInt32)) || d.LessThan(decimal.NewFromInt(math.MinInt32)) {
		return 0, errOutOfRange
	}
	return int(d.IntPart()), nil
}
