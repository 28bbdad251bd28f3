package postgres

import (
	"branchloan/internal/models"
	"branchloan/internal/repository"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const loanColumns = `id, borrower_id, amount, currency, term_months, interest_rate_apr, status, created_at`

type loanRepository struct {
	repository.BaseRepository
}

// NewLoanRepository creates a new PostgreSQL loan repository
func NewLoanRepository(db *sql.DB) repository.LoanRepository {
	return &loanRepository{
		BaseRepository: repository.NewBaseRepository(db),
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLoan(row rowScanner) (*models.Loan, error) {
	var loan models.Loan
	err := row.Scan(
		&loan.ID,
		&loan.BorrowerID,
		&loan.Amount,
		&loan.Currency,
		&loan.TermMonths,
		&loan.InterestRateAPR,
		&loan.Status,
		&loan.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *loanRepository) List(ctx context.Context) ([]models.Loan, error) {
	// seq breaks created_at ties in insertion order
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		ORDER BY created_at DESC, seq DESC`

	loans := []models.Loan{}
	err := r.ReadOnly(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			loan, err := scanLoan(rows)
			if err != nil {
				return err
			}
			loans = append(loans, *loan)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return loans, nil
}

func (r *loanRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE id = $1`

	var loan *models.Loan
	err := r.ReadOnly(ctx, func(tx *sql.Tx) error {
		var err error
		loan, err = scanLoan(tx.QueryRowContext(ctx, query, id))
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get loan %s: %w", id, err)
	}
	return loan, nil
}

func (r *loanRepository) Create(ctx context.Context, req *models.CreateLoanRequest) (*models.Loan, error) {
	// id and created_at are assigned by the database; reading every column
	// back keeps the returned loan identical to what GetByID will see.
	query := `
		INSERT INTO loans (borrower_id, amount, currency, term_months, interest_rate_apr, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + loanColumns

	var loan *models.Loan
	err := r.Transaction(ctx, func(tx *sql.Tx) error {
		var err error
		loan, err = scanLoan(tx.QueryRowContext(ctx, query,
			req.BorrowerID,
			req.Amount,
			strings.ToUpper(req.Currency),
			req.TermMonths,
			req.InterestRateAPR,
			models.LoanStatusPending,
		))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create loan: %w", err)
	}
	return loan, nil
}

func (r *loanRepository) Stats(ctx context.Context) (*models.LoanStats, error) {
	stats := &models.LoanStats{
		ByStatus:   map[models.LoanStatus]int{},
		ByCurrency: []models.CurrencyLoanTotals{},
	}

	err := r.ReadOnly(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `
			SELECT status, COUNT(*)
			FROM loans
			GROUP BY status`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var status models.LoanStatus
			var count int
			if err := rows.Scan(&status, &count); err != nil {
				return err
			}
			stats.ByStatus[status] = count
			stats.TotalLoans += count
		}
		if err := rows.Err(); err != nil {
			return err
		}

		currencyRows, err := tx.QueryContext(ctx, `
			SELECT currency, COUNT(*), SUM(amount)
			FROM loans
			GROUP BY currency
			ORDER BY currency ASC`)
		if err != nil {
			return err
		}
		defer currencyRows.Close()

		for currencyRows.Next() {
			var totals models.CurrencyLoanTotals
			var sum decimal.Decimal
			if err := currencyRows.Scan(&totals.Currency, &totals.Count, &sum); err != nil {
				return err
			}
			totals.TotalAmount = json.Number(sum.String())
			stats.ByCurrency = append(stats.ByCurrency, totals)
		}
		return currencyRows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("loan stats: %w", err)
	}
	return stats, nil
}
