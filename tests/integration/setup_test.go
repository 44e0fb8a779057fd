package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stockfolio/internal/handlers"
	"stockfolio/internal/logger"
	"stockfolio/internal/marketdata"
	"stockfolio/internal/middleware"
	"stockfolio/internal/models"
	"stockfolio/internal/services"
	"stockfolio/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// SQLite allows a single writer; one connection keeps concurrent
	// handlers from tripping over each other.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	allModels := []interface{}{
		&models.User{},
		&models.Portfolio{},
		&models.Holding{},
		&models.LedgerEntry{},
		&models.Stock{},
		&models.StockPrice{},
		&models.Friendship{},
		&models.Stocklist{},
		&models.StocklistItem{},
		&models.SharedStocklist{},
		&models.Review{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	market := marketdata.NewProvider(db)
	userService := services.NewUserService(db)
	portfolioService := services.NewPortfolioService(db)
	tradeService := services.NewTradeService(db, market)
	cashService := services.NewCashService(db)
	valuationService := services.NewValuationService(db, market)
	ledgerService := services.NewLedgerService(db)
	friendshipService := services.NewFriendshipService(db)
	stocklistService := services.NewStocklistService(db)

	// Handlers
	userHandler := handlers.NewUserHandler(userService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	tradeHandler := handlers.NewTradeHandler(tradeService)
	cashHandler := handlers.NewCashHandler(cashService, portfolioService)
	valuationHandler := handlers.NewValuationHandler(valuationService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)
	stockHandler := handlers.NewStockHandler(market)
	friendshipHandler := handlers.NewFriendshipHandler(friendshipService)
	stocklistHandler := handlers.NewStocklistHandler(stocklistService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	api := router.Group("/api")

	api.POST("/users", userHandler.Register)
	api.POST("/create-portfolio", portfolioHandler.CreatePortfolio)
	api.GET("/portfolios", portfolioHandler.GetUserPortfolios)

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

	stock := api.Group("/stock")
	stock.GET("/:symbol/latest-price", stockHandler.LatestPrice)
	stock.GET("/:symbol/history", stockHandler.PriceHistory)

	api.POST("/send-friend-request", friendshipHandler.SendRequest)
	api.POST("/accept-friend-request", friendshipHandler.AcceptRequest)
	api.POST("/reject-friend-request", friendshipHandler.RejectRequest)
	api.POST("/delete-friend", friendshipHandler.DeleteFriend)
	api.GET("/friends", friendshipHandler.Friends)
	api.GET("/friend-requests", friendshipHandler.IncomingRequests)
	api.GET("/friend-outgoings", friendshipHandler.OutgoingRequests)

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

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// parseJSONList parses the response body into a slice of maps.
func parseJSONList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var result []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON list: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the user ID.
func (app *testApp) registerUser(t *testing.T, username string) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":"password123"}`, username)
	rec := app.request("POST", "/api/users", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["user_id"].(float64)
}

// createPortfolio creates a portfolio over the API and returns its ID.
func (app *testApp) createPortfolio(t *testing.T, userID float64, name, initialCash string) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"user_id":%.0f,"name":%q,"initial_cash":%q}`, userID, name, initialCash)
	rec := app.request("POST", "/api/create-portfolio", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create portfolio failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["portfolio_id"].(float64)
}

// seedStock records a stock and a single closing price dated now.
func (app *testApp) seedStock(t *testing.T, symbol, closePx string) {
	t.Helper()
	stock := &models.Stock{Symbol: symbol, CompanyName: symbol + " Inc."}
	if err := app.DB.Create(stock).Error; err != nil {
		t.Fatalf("failed to seed stock: %v", err)
	}
	price := &models.StockPrice{
		Symbol:    symbol,
		Timestamp: time.Now(),
		Close:     decimal.RequireFromString(closePx),
	}
	if err := app.DB.Create(price).Error; err != nil {
		t.Fatalf("failed to seed price: %v", err)
	}
}

// cashBalance fetches a portfolio's cash balance over the API.
func (app *testApp) cashBalance(t *testing.T, portfolioID float64) string {
	t.Helper()
	rec := app.request("GET", fmt.Sprintf("/api/portfolio/%.0f/cash", portfolioID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("cash balance failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["cash_balance"].(string)
}
