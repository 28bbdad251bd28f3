package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanStatus is the lifecycle state of a loan
type LoanStatus string

// LoanStatusPending is the only state reachable at creation
const LoanStatusPending LoanStatus = "pending"

// Loan represents a persisted loan record
type Loan struct {
	ID              uuid.UUID           `db:"id"`
	BorrowerID      uuid.UUID           `db:"borrower_id"`
	Amount          decimal.Decimal     `db:"amount"`
	Currency        string              `db:"currency"`
	TermMonths      int                 `db:"term_months"`
	InterestRateAPR decimal.NullDecimal `db:"interest_rate_apr"`
	Status          LoanStatus          `db:"status"`
	CreatedAt       time.Time           `db:"created_at"`
}

// CreateLoanRequest represents a validated request to create a loan
type CreateLoanRequest struct {
	BorrowerID      uuid.UUID           `json:"borrower_id" example:"7f1c2a9e-3b4d-4e5f-8a6b-9c0d1e2f3a4b"`
	Amount          decimal.Decimal     `json:"amount" swaggertype:"number" example:"1000.50"`
	Currency        string              `json:"currency" example:"usd"`
	TermMonths      int                 `json:"term_months" example:"12"`
	InterestRateAPR decimal.NullDecimal `json:"interest_rate_apr" swaggertype:"number" example:"7.25"`
}

// LoanResponse is the external representation of a loan. Decimal fields are
// emitted as JSON numbers carrying the exact stored digits.
type LoanResponse struct {
	ID              uuid.UUID    `json:"id" example:"0b9d6a3e-1c2f-4a5b-8d7e-6f5a4b3c2d1e"`
	BorrowerID      uuid.UUID    `json:"borrower_id" example:"7f1c2a9e-3b4d-4e5f-8a6b-9c0d1e2f3a4b"`
	Amount          json.Number  `json:"amount" swaggertype:"number" example:"1000.50"`
	Currency        string       `json:"currency" example:"USD"`
	TermMonths      int          `json:"term_months" example:"12"`
	InterestRateAPR *json.Number `json:"interest_rate_apr" swaggertype:"number" extensions:"x-nullable"`
	Status          LoanStatus   `json:"status" example:"pending"`
	CreatedAt       time.Time    `json:"created_at" example:"2025-11-14T18:00:00Z"`
}

// NewLoanResponse maps a stored loan to its external representation
func NewLoanResponse(l *Loan) LoanResponse {
	resp := LoanResponse{
		ID:         l.ID,
		BorrowerID: l.BorrowerID,
		Amount:     json.Number(l.Amount.String()),
		Currency:   l.Currency,
		TermMonths: l.TermMonths,
		Status:     l.Status,
		CreatedAt:  l.CreatedAt,
	}
	if l.InterestRateAPR.Valid {
		apr := json.Number(l.InterestRateAPR.Decimal.String())
		resp.InterestRateAPR = &apr
	}
	return resp
}

// NewLoanResponses maps a slice of loans, never returning nil
func NewLoanResponses(loans []Loan) []LoanResponse {
	out := make([]LoanResponse, 0, len(loans))
	for i := range loans {
		out = append(out, NewLoanResponse(&loans[i]))
	}
	return out
}
