// Package testutil provides utilities for testing
package testutil

import (
	"branchloan/internal/api/handlers"
	"branchloan/internal/api/middleware"
	"branchloan/internal/models"
	"branchloan/internal/repository"
	"branchloan/internal/validation"
	"bytes"
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// FakeLoanRepository is an in-memory repository.LoanRepository. It assigns
// ids, status and timestamps the way the database does.
type FakeLoanRepository struct {
	mu    sync.Mutex
	loans []models.Loan

	// Now supplies created_at values; defaults to time.Now
	Now func() time.Time
	// Err, when set, is returned by every operation
	Err error
}

var _ repository.LoanRepository = (*FakeLoanRepository)(nil)

// NewFakeLoanRepository creates an empty fake repository
func NewFakeLoanRepository() *FakeLoanRepository {
	return &FakeLoanRepository{Now: time.Now}
}

func (r *FakeLoanRepository) Transaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return fn(nil)
}

func (r *FakeLoanRepository) ReadOnly(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return fn(nil)
}

func (r *FakeLoanRepository) DB() *sql.DB {
	return nil
}

func (r *FakeLoanRepository) List(ctx context.Context) ([]models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	loans := make([]models.Loan, 0, len(r.loans))
	for i := len(r.loans) - 1; i >= 0; i-- {
		loans = append(loans, r.loans[i])
	}
	sort.SliceStable(loans, func(i, j int) bool {
		return loans[i].CreatedAt.After(loans[j].CreatedAt)
	})
	return loans, nil
}

func (r *FakeLoanRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	for _, loan := range r.loans {
		if loan.ID == id {
			l := loan
			return &l, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *FakeLoanRepository) Create(ctx context.Context, req *models.CreateLoanRequest) (*models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	loan := models.Loan{
		ID:              uuid.New(),
		BorrowerID:      req.BorrowerID,
		Amount:          req.Amount,
		Currency:        strings.ToUpper(req.Currency),
		TermMonths:      req.TermMonths,
		InterestRateAPR: req.InterestRateAPR,
		Status:          models.LoanStatusPending,
		CreatedAt:       r.Now().UTC(),
	}
	r.loans = append(r.loans, loan)
	return &loan, nil
}

func (r *FakeLoanRepository) Stats(ctx context.Context) (*models.LoanStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	stats := &models.LoanStats{
		ByStatus:   map[models.LoanStatus]int{},
		ByCurrency: []models.CurrencyLoanTotals{},
	}
	index := map[string]int{}
	sums := map[string]decimal.Decimal{}
	for _, loan := range r.loans {
		stats.TotalLoans++
		stats.ByStatus[loan.Status]++
		if _, ok := index[loan.Currency]; !ok {
			index[loan.Currency] = len(stats.ByCurrency)
			stats.ByCurrency = append(stats.ByCurrency, models.CurrencyLoanTotals{Currency: loan.Currency})
		}
		stats.ByCurrency[index[loan.Currency]].Count++
		sums[loan.Currency] = sums[loan.Currency].Add(loan.Amount)
	}
	sort.Slice(stats.ByCurrency, func(i, j int) bool {
		return stats.ByCurrency[i].Currency < stats.ByCurrency[j].Currency
	})
	for i := range stats.ByCurrency {
		stats.ByCurrency[i].TotalAmount = Number(sums[stats.ByCurrency[i].Currency].String())
	}
	return stats, nil
}

// Count returns the number of stored loans
func (r *FakeLoanRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.loans)
}

// TestContext holds common test dependencies
type TestContext struct {
	T         *testing.T
	Repo      *FakeLoanRepository
	Validator *validation.Validator
	Logs      *bytes.Buffer
	Logger    zerolog.Logger
}

// NewTestContext creates a new test context backed by the in-memory repository
func NewTestContext(t *testing.T) *TestContext {
	t.Helper()

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	logs := &bytes.Buffer{}
	return &TestContext{
		T:         t,
		Repo:      NewFakeLoanRepository(),
		Validator: validation.New(),
		Logs:      logs,
		Logger:    zerolog.New(logs).With().Timestamp().Logger(),
	}
}

// LoanRouter returns a router serving the loan and stats endpoints with the
// request id middleware installed
func (tc *TestContext) LoanRouter() *gin.Engine {
	loanHandler := handlers.NewLoanHandler(tc.Repo, tc.Validator)
	statsHandler := handlers.NewStatsHandler(tc.Repo)

	router := gin.New()
	router.Use(middleware.RequestID(tc.Logger))
	router.GET("/api/loans", loanHandler.ListLoans)
	router.GET("/api/loans/:id", loanHandler.GetLoan)
	router.POST("/api/loans", loanHandler.CreateLoan)
	router.GET("/api/stats", statsHandler.GetStats)
	return router
}

// CreateTestLoan stores a loan directly through the repository
func (tc *TestContext) CreateTestLoan(amount, currency string, termMonths int) *models.Loan {
	tc.T.Helper()

	loan, err := tc.Repo.Create(context.Background(), &models.CreateLoanRequest{
		BorrowerID: uuid.New(),
		Amount:     decimal.RequireFromString(amount),
		Currency:   currency,
		TermMonths: termMonths,
	})
	require.NoError(tc.T, err, "Failed to create test loan")
	return loan
}
