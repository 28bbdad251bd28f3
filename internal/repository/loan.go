package repository

import (
	"branchloan/internal/models"
	"context"

	"github.com/google/uuid"
)

// LoanRepository defines the interface for loan-related database operations.
// Every method runs inside its own scoped transaction.
type LoanRepository interface {
	Repository
	// List returns all loans, most recently created first
	List(ctx context.Context) ([]models.Loan, error)
	// GetByID returns ErrNotFound when no loan has the given id
	GetByID(ctx context.Context, id uuid.UUID) (*models.Loan, error)
	// Create stores a new pending loan and returns it as persisted
	Create(ctx context.Context, req *models.CreateLoanRequest) (*models.Loan, error)
	// Stats aggregates the loan book
	Stats(ctx context.Context) (*models.LoanStats, error)
}
