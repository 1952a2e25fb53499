package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/points-ledger/internal/api/handler"
	"github.com/points-ledger/internal/api/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	transferHandler *handler.TransferHandler,
	accountHandler *handler.AccountHandler,
	leaderboardHandler *handler.LeaderboardHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Metrics())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Account reads
		accounts := v1.Group("/accounts")
		{
			accounts.GET("/:id/balance", accountHandler.GetBalance)
			accounts.GET("/:id/transfers", accountHandler.GetTransfers)
		}

		// Transfer operations
		transfers := v1.Group("/transfers")
		{
			transfers.POST("", transferHandler.Create)
			transfers.GET("/:id", transferHandler.GetByID)
		}

		v1.GET("/leaderboard", leaderboardHandler.Get)
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
