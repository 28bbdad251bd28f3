package handlers

import (
	"branchloan/internal/models"
	"branchloan/internal/repository"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// StatsHandler reports aggregate figures over the loan book
type StatsHandler struct {
	repo repository.LoanRepository
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(repo repository.LoanRepository) *StatsHandler {
	return &StatsHandler{repo: repo}
}

// GetStats godoc
// @Summary Loan statistics
// @Description Returns loan counts by status and counts and totals by currency
// @Tags stats
// @Produce json
// @Success 200 {object} models.LoanStats
// @Failure 429 {object} models.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /api/stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.repo.Stats(c.Request.Context())
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("Failed to compute loan stats")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
