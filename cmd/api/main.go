package main

import (
	"fmt"
	"net/http"
	"os"

	"stockfolio/internal/config"
	"stockfolio/internal/database"
	"stockfolio/internal/handlers"
	"stockfolio/internal/logger"
	"stockfolio/internal/marketdata"
	"stockfolio/internal/middleware"
	"stockfolio/internal/services"
	"stockfolio/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "stockfolio/internal/docs" // Import swagger docs
)

// @title           Stockfolio API
// @version         1.0
// @description     Stockfolio is a social stock-portfolio backend: portfolios, trades priced from recorded market data, cash movement, valuations, friends, and shareable stocklists.

// @host      localhost:8080
// @BasePath  /api

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	market := marketdata.NewProvider(db)
	userService := services.NewUserService(db)
	portfolioService := services.NewPortfolioService(db)
	tradeService := services.NewTradeService(db, market)
	cashService := services.NewCashService(db)
	valuationService := services.NewValuationService(db, market)
	ledgerService := services.NewLedgerService(db)
	friendshipService := services.NewFriendshipService(db)
	stocklistService := services.NewStocklistService(db)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	tradeHandler := handlers.NewTradeHandler(tradeService)
	cashHandler := handlers.NewCashHandler(cashService, portfolioService)
	valuationHandler := handlers.NewValuationHandler(valuationService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)
	stockHandler := handlers.NewStockHandler(market)
	friendshipHandler := handlers.NewFriendshipHandler(friendshipService)
	stocklistHandler := handlers.NewStocklistHandler(stocklistService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API group
	api := router.Group("/api")

	// Users and portfolios
	api.POST("/users", userHandler.Register)
	api.POST("/create-portfolio", portfolioHandler.CreatePortfolio)
	api.GET("/portfolios", portfolioHandler.GetUserPortfolios)

	// Portfolio operations
	portfolio := api.Group("/portfolio")
	portfolio.POST("/transaction", tradeHandler.ExecuteTrade)
	portfolio.GET("/user-transactions", ledgerHandler.UserTransactions)
	portfolio.GET("/:id/holdings", valuationHandler.PortfolioHoldings)
	portfolio.GET("/:id/value", valuationHandler.PortfolioValue)
	portfolio.GET("/:id/analytics", valuationHandler.PortfolioAnalytics)
	portfolio.POST("/:id/deposit", cashHandler.Deposit)
	portfolio.POST("/:id/withdraw", cashHandler.Withdraw)
	portfolio.POST("/:id/transfer", cashHandler.Transfer)
	portfolio.GET("/:id/cash", cashHandler.CashBalance)

	// Stock prices
	stock := api.Group("/stock")
	stock.GET("/:symbol/latest-price", stockHandler.LatestPrice)
	stock.GET("/:symbol/history", stockHandler.PriceHistory)

	// Friends
	api.POST("/send-friend-request", friendshipHandler.SendRequest)
	api.POST("/accept-friend-request", friendshipHandler.AcceptRequest)
	api.POST("/reject-friend-request", friendshipHandler.RejectRequest)
	api.POST("/delete-friend", friendshipHandler.DeleteFriend)
	api.GET("/friends", friendshipHandler.Friends)
	api.GET("/friend-requests", friendshipHandler.IncomingRequests)
	api.GET("/friend-outgoings", friendshipHandler.OutgoingRequests)

	// Stocklists and reviews
	api.GET("/get-stocklists", stocklistHandler.UserStocklists)
	api.POST("/create-stocklist", stocklistHandler.CreateStocklist)
	api.DELETE("/delete-stocklist", stocklistHandler.DeleteStocklist)
	stocklists := api.Group("/stocklists")
	stocklists.GET("/public", stocklistHandler.PublicStocklists)
	stocklists.GET("/shared-with-me", stocklistHandler.SharedWithMe)
	stocklists.POST("/:id/add-stock", stocklistHandler.AddItem)
	stocklists.DELETE("/:id/remove-stock/:symbol", stocklistHandler.RemoveItem)
	stocklists.POST("/:id/share", stocklistHandler.Share)
	stocklists.GET("/:id/shared-users", stocklistHandler.SharedUsers)
	stocklists.GET("/:id/value", valuationHandler.StocklistValue)
	stocklists.GET("/:id/reviews", stocklistHandler.StocklistReviews)
	api.POST("/create-review", stocklistHandler.CreateReview)
	api.GET("/my-reviews", stocklistHandler.UserReviews)
	api.DELETE("/reviews/:id", stocklistHandler.DeleteReview)

	log.Infof("Starting Stockfolio backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
