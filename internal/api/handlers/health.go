package handlers

import (
	"branchloan/internal/models"
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// healthProbeTimeout bounds the database round-trip made by the health check
const healthProbeTimeout = 3 * time.Second

// HealthHandler reports service liveness and database connectivity
type HealthHandler struct {
	db      *sql.DB
	service string
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *sql.DB, service string) *HealthHandler {
	return &HealthHandler{db: db, service: service}
}

// Health godoc
// @Summary Health check
// @Description Reports service liveness and database connectivity. Always answers 200 so that
// @Description monitoring can tell "service up, database down" from "service down".
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthProbeTimeout)
	defer cancel()

	dbStatus := models.DatabaseConnected
	if err := h.probe(ctx); err != nil {
		zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("Database health probe failed")
		dbStatus = models.DatabaseDisconnected + ": " + err.Error()
	}

	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "ok",
		Database:  dbStatus,
		Service:   h.service,
		Timestamp: time.Now().UTC(),
	})
}

// probe runs a trivial query inside its own transaction
func (h *HealthHandler) probe(ctx context.Context) error {
	tx, err := h.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var one int
	return tx.QueryRowContext(ctx, "SELECT 1").Scan(&one)
}
