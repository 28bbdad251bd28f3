package handlers

import (
	"branchloan/internal/models"
	"branchloan/internal/repository"
	"branchloan/internal/validation"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LoanHandler handles loan-related requests
type LoanHandler struct {
	repo      repository.LoanRepository
	validator *validation.Validator
}

// NewLoanHandler creates a new LoanHandler
func NewLoanHandler(repo repository.LoanRepository, validator *validation.Validator) *LoanHandler {
	return &LoanHandler{repo: repo, validator: validator}
}

// ListLoans godoc
// @Summary List all loans
// @Description Returns every loan, most recently created first
// @Tags loans
// @Produce json
// @Success 200 {array} models.LoanResponse
// @Failure 429 {object} models.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /api/loans [get]
func (h *LoanHandler) ListLoans(c *gin.Context) {
	logger := zerolog.Ctx(c.Request.Context())
	logger.Info().Msg("Fetching all loans")

	loans, err := h.repo.List(c.Request.Context())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch loans")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to fetch loans"})
		return
	}

	logger.Info().Int("count", len(loans)).Msg("Retrieved loans")
	c.JSON(http.StatusOK, models.NewLoanResponses(loans))
}

// GetLoan godoc
// @Summary Get a loan by ID
// @Description Returns a loan by its ID
// @Tags loans
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} models.LoanResponse
// @Failure 400 {object} models.ErrorResponse "Invalid loan id"
// @Failure 404 {object} models.ErrorResponse "Loan not found"
// @Failure 429 {object} models.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /api/loans/{id} [get]
func (h *LoanHandler) GetLoan(c *gin.Context) {
	logger := zerolog.Ctx(c.Request.Context())
	rawID := c.Param("id")
	logger.Info().Str("loan_id", rawID).Msg("Fetching loan")

	id, err := uuid.Parse(rawID)
	if err != nil {
		logger.Warn().Str("loan_id", rawID).Msg("Invalid loan ID format")
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid loan id"})
		return
	}

	loan, err := h.repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		logger.Warn().Str("loan_id", rawID).Msg("Loan not found")
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Loan not found"})
		return
	}
	if err != nil {
		logger.Error().Err(err).Str("loan_id", rawID).Msg("Failed to fetch loan")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to fetch loan"})
		return
	}

	logger.Info().Str("loan_id", rawID).Msg("Loan found")
	c.JSON(http.StatusOK, models.NewLoanResponse(loan))
}

// CreateLoan godoc
// @Summary Create a new loan
// @Description Validates the payload and stores a new pending loan. The currency is upper-cased;
// @Description id, status and created_at are assigned by the server. A missing or malformed JSON
// @Description body is treated as an empty object.
// @Tags loans
// @Accept json
// @Produce json
// @Param loan body models.CreateLoanRequest true "Loan to create"
// @Success 201 {object} models.LoanResponse
// @Failure 400 {object} models.ErrorResponse "Validation failed"
// @Failure 429 {object} models.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /api/loans [post]
func (h *LoanHandler) CreateLoan(c *gin.Context) {
	logger := zerolog.Ctx(c.Request.Context())
	logger.Info().Msg("Creating new loan")

	payload := validation.DecodePayload(c.Request.Body)
	req, err := h.validator.CreateLoanRequest(payload)
	if err != nil {
		logger.Warn().Err(err).Msg("Loan creation failed validation")
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	loan, err := h.repo.Create(c.Request.Context(), req)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create loan")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create loan"})
		return
	}

	logger.Info().
		Str("loan_id", loan.ID.String()).
		Str("amount", loan.Amount.String()).
		Str("currency", loan.Currency).
		Msg("Loan created successfully")
	c.JSON(http.StatusCreated, models.NewLoanResponse(loan))
}
