package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"stockfolio/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithName(t, db, fmt.Sprintf("user%d", nextID()))
}

// CreateTestUserWithName creates a user with the given username.
func CreateTestUserWithName(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestPortfolio creates a portfolio with the given cash balance.
func CreateTestPortfolio(t *testing.T, db *gorm.DB, userID uint, cash decimal.Decimal) *models.Portfolio {
	t.Helper()
	return CreateTestPortfolioWithName(t, db, userID, fmt.Sprintf("Portfolio %d", nextID()), cash)
}

// CreateTestPortfolioWithName creates a named portfolio with the given cash balance.
func CreateTestPortfolioWithName(t *testing.T, db *gorm.DB, userID uint, name string, cash decimal.Decimal) *models.Portfolio {
	t.Helper()

	portfolio := &models.Portfolio{
		UserID:      userID,
		Name:        name,
		CashBalance: cash,
	}
	if err := db.Create(portfolio).Error; err != nil {
		t.Fatalf("failed to create test portfolio: %v", err)
	}
	return portfolio
}

// CreateTestHolding creates a holding of the given size.
func CreateTestHolding(t *testing.T, db *gorm.DB, portfolioID uint, symbol string, shares int64) *models.Holding {
	t.Helper()

	holding := &models.Holding{
		PortfolioID: portfolioID,
		StockSymbol: symbol,
		Shares:      shares,
	}
	if err := db.Create(holding).Error; err != nil {
		t.Fatalf("failed to create test holding: %v", err)
	}
	return holding
}

// CreateTestStock creates a stock row for the given symbol.
func CreateTestStock(t *testing.T, db *gorm.DB, symbol string) *models.Stock {
	t.Helper()

	stock := &models.Stock{
		Symbol:      symbol,
		CompanyName: fmt.Sprintf("%s Inc.", symbol),
	}
	if err := db.Create(stock).Error; err != nil {
		t.Fatalf("failed to create test stock: %v", err)
	}
	return stock
}

// CreateTestPrice records a closing price for the symbol at the given time.
func CreateTestPrice(t *testing.T, db *gorm.DB, symbol string, ts time.Time, closePx decimal.Decimal) *models.StockPrice {
	t.Helper()

	price := &models.StockPrice{
		Symbol:    symbol,
		Timestamp: ts,
		Close:     closePx,
	}
	if err := db.Create(price).Error; err != nil {
		t.Fatalf("failed to create test price: %v", err)
	}
	return price
}

// CreateTestLatestPrice records a closing price for the symbol at the current time.
func CreateTestLatestPrice(t *testing.T, db *gorm.DB, symbol string, closePx decimal.Decimal) *models.StockPrice {
	t.Helper()
	return CreateTestPrice(t, db, symbol, time.Now(), closePx)
}

// CreateTestStocklist creates a stocklist for the given creator.
func CreateTestStocklist(t *testing.T, db *gorm.DB, creatorID uint, isPublic bool) *models.Stocklist {
	t.Helper()

	list := &models.Stocklist{
		CreatorID: creatorID,
		Name:      fmt.Sprintf("Stocklist %d", nextID()),
		IsPublic:  isPublic,
	}
	if err := db.Create(list).Error; err != nil {
		t.Fatalf("failed to create test stocklist: %v", err)
	}
	return list
}

// CreateTestFriendship creates a friendship row with the given status.
func CreateTestFriendship(t *testing.T, db *gorm.DB, senderID, receiverID uint, status models.FriendshipStatus) *models.Friendship {
	t.Helper()

	friendship := &models.Friendship{
		SenderID:      senderID,
		ReceiverID:    receiverID,
		Status:        status,
		LastTimestamp: time.Now(),
	}
	if err := db.Create(friendship).Error; err != nil {
		t.Fatalf("failed to create test friendship: %v", err)
	}
	return friendship
}
