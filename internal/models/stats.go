package models

import "encoding/json"

// LoanStats summarises the loan book
type LoanStats struct {
	TotalLoans int                  `json:"total_loans" example:"3"`
	ByStatus   map[LoanStatus]int   `json:"by_status"`
	ByCurrency []CurrencyLoanTotals `json:"by_currency"`
}

// CurrencyLoanTotals aggregates loans sharing a currency
type CurrencyLoanTotals struct {
	Currency    string      `json:"currency" example:"USD"`
	Count       int         `json:"count" example:"2"`
	TotalAmount json.Number `json:"total_amount" swaggertype:"number" example:"2500.75"`
}
