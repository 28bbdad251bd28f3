// Package routes handles the setup and configuration of API routes
package routes

import (
	_ "branchloan/docs" // Import swagger docs
	"branchloan/internal/api/handlers"
	"branchloan/internal/api/middleware"
	"branchloan/internal/config"
	"branchloan/internal/repository"
	"branchloan/internal/validation"
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes and their handlers
func SetupRoutes(cfg *config.Config, db *sql.DB, loanRepo repository.LoanRepository, logger zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// Correlation id first so every later log line carries it
	r.Use(middleware.RequestID(logger))
	r.Use(middleware.Logger())

	healthHandler := handlers.NewHealthHandler(db, cfg.ServiceName)

	// Routes without rate limiting
	r.GET("/health", healthHandler.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if cfg.RateLimit.Enabled {
		r.Use(middleware.NewRateLimiter(cfg).Middleware())
	}

	loanHandler := handlers.NewLoanHandler(loanRepo, validation.New())
	statsHandler := handlers.NewStatsHandler(loanRepo)

	api := r.Group("/api")
	{
		loans := api.Group("/loans")
		{
			loans.GET("", loanHandler.ListLoans)
			loans.POST("", loanHandler.CreateLoan)
			loans.GET("/:id", loanHandler.GetLoan)
		}

		api.GET("/stats", statsHandler.GetStats)
	}

	return r
}
