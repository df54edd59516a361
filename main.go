package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"splitsight-bff/config"
	"splitsight-bff/handlers"
	"splitsight-bff/ledger"
	"splitsight-bff/logging"
	"splitsight-bff/middleware"
	"splitsight-bff/models"
)

func main() {
	logging.Setup()

	// Load configuration
	config.Load()
	models.SetSettleTolerance(config.AppConfig.SettleToleranceCents)

	if config.AppConfig.JWTSecret == "" {
		slog.Error("JWT_SECRET is required to identify viewers")
		os.Exit(1)
	}

	// Upstream ledger client with a short-lived Redis snapshot cache
	cache := ledger.NewSnapshotCache(config.AppConfig.RedisURL, config.AppConfig.SnapshotTTL)
	handlers.Init(ledger.NewClient(config.AppConfig.LedgerAPIURL, cache))

	// Setup router
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORSMiddleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": config.AppConfig.AppName,
		})
	})

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Default-currency inference is needed before login (registration flow)
	r.GET("/api/currencies/default", handlers.GetDefaultCurrency)

	// ==========================================
	// API ROUTES (viewer identified via the ledger-issued token)
	// ==========================================
	api := r.Group("/api")
	api.Use(middleware.ViewerRequired(config.AppConfig.JWTSecret))
	{
		// Split computation
		api.POST("/splits/preview", handlers.PreviewSplits)
		api.POST("/groups/:id/expenses", handlers.CreateExpense)

		// Balances
		api.GET("/balances", handlers.GetOverallBalances)
		api.GET("/friends/balances", handlers.GetFriendBalances)
		api.GET("/groups/:id/breakdown", handlers.GetGroupBreakdown)

		// Settlement proposals and recording
		api.POST("/groups/:id/proposals", handlers.ProposeGroupSettlement)
		api.POST("/groups/:id/settle", handlers.RecordSettlement)
		api.POST("/friends/:id/proposals", handlers.ProposeFriendSettlement)
		api.POST("/friends/:id/settle", handlers.SettleFriend)
	}

	// Start server
	addr := "0.0.0.0:" + config.AppConfig.Port
	slog.Info("server starting", "service", config.AppConfig.AppName, "addr", addr)
	if err := r.Run(addr); err != nil {
		slog.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}
