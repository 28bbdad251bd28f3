package handlers_test

import (
	"branchloan/internal/api/handlers"
	"branchloan/internal/models"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Health(t *testing.T) {
	tests := []struct {
		name         string
		expect       func(mock sqlmock.Sqlmock)
		wantDatabase string
	}{
		{
			name: "Database reachable",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT 1`).WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
				mock.ExpectRollback()
			},
			wantDatabase: models.DatabaseConnected,
		},
		{
			name: "Begin fails",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("connection refused"))
			},
			wantDatabase: "disconnected: connection refused",
		},
		{
			name: "Probe query fails",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT 1`).WillReturnError(errors.New("server closed the connection unexpectedly"))
				mock.ExpectRollback()
			},
			wantDatabase: "disconnected: server closed the connection unexpectedly",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)

			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.expect(mock)

			handler := handlers.NewHealthHandler(db, "branch-loan-api")
			router := gin.New()
			router.GET("/health", handler.Health)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/health", nil)
			router.ServeHTTP(w, req)

			// Health always answers 200, even when the database is down
			require.Equal(t, http.StatusOK, w.Code)

			var resp models.HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "ok", resp.Status)
			assert.Equal(t, tt.wantDatabase, resp.Database)
			assert.Equal(t, "branch-loan-api", resp.Service)
			assert.WithinDuration(t, time.Now(), resp.Timestamp, time.Minute)

			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
