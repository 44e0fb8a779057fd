package services

import (
	"time"

	"github.com/shopspring/decimal"

	"stockfolio/internal/models"
	"stockfolio/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Register(username, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
}

// PortfolioServicer defines the contract for portfolio CRUD.
type PortfolioServicer interface {
	CreatePortfolio(userID uint, name string, initialCash decimal.Decimal) (*models.Portfolio, error)
	GetUserPortfolios(userID uint) ([]models.Portfolio, error)
	GetPortfolioByID(portfolioID uint) (*models.Portfolio, error)
	CashBalance(portfolioID uint) (decimal.Decimal, error)
}

// TradeServicer validates and atomically applies a single buy/sell against
// the portfolio store and the market data provider.
type TradeServicer interface {
	// ExecuteTrade applies a signed-share trade (positive = buy, negative =
	// sell) and returns the portfolio's new cash balance.
	ExecuteTrade(portfolioID uint, symbol string, signedShares int64) (decimal.Decimal, error)
}

// CashServicer moves cash into, out of, and between portfolios.
type CashServicer interface {
	Deposit(portfolioID uint, amount decimal.Decimal) error
	Withdraw(portfolioID uint, amount decimal.Decimal) error
	Transfer(sourcePortfolioID uint, targetPortfolioName string, amount decimal.Decimal) error
}

// HoldingView is one row of a portfolio's holdings breakdown.
type HoldingView struct {
	StockSymbol   string          `json:"stock_symbol"`
	CompanyName   string          `json:"company_name"`
	Shares        int64           `json:"shares"`
	LatestPrice   decimal.Decimal `json:"latest_price"`
	MarketValue   decimal.Decimal `json:"market_value"`
	PortfolioName string          `json:"portfolio_name"`
}

// PortfolioValue is the current market value of a portfolio's holdings.
type PortfolioValue struct {
	PortfolioID uint            `json:"portfolio_id"`
	MarketValue decimal.Decimal `json:"market_value"`
}

// StocklistItemView is one priced entry of a stocklist.
type StocklistItemView struct {
	StockSymbol string          `json:"stock_symbol"`
	Shares      int64           `json:"shares"`
	LatestPrice decimal.Decimal `json:"latest_price"`
	MarketValue decimal.Decimal `json:"market_value"`
}

// StocklistValue is the current market value of a stocklist with its items.
type StocklistValue struct {
	StocklistID uint                `json:"stocklist_id"`
	Value       decimal.Decimal     `json:"value"`
	Items       []StocklistItemView `json:"items"`
}

// SymbolStats holds per-symbol dispersion statistics over historical closes.
type SymbolStats struct {
	Symbol                 string  `json:"symbol"`
	Mean                   float64 `json:"mean"`
	StdDev                 float64 `json:"std_dev"`
	CoefficientOfVariation float64 `json:"coefficient_of_variation"`
}

// PairStats holds pairwise statistics between two holdings' close series.
type PairStats struct {
	SymbolA     string  `json:"symbol_a"`
	SymbolB     string  `json:"symbol_b"`
	Covariance  float64 `json:"covariance"`
	Correlation float64 `json:"correlation"`
}

// AnalyticsReport aggregates derived statistics for a portfolio's holdings.
type AnalyticsReport struct {
	PortfolioID uint          `json:"portfolio_id"`
	Window      int           `json:"window"`
	Symbols     []SymbolStats `json:"symbols"`
	Pairs       []PairStats   `json:"pairs"`
}

// ValuationServicer is the read-only aggregation layer over the portfolio
// store and the market data provider. It never mutates state.
type ValuationServicer interface {
	PortfolioHoldings(portfolioID uint) ([]HoldingView, error)
	PortfolioValue(portfolioID uint) (*PortfolioValue, error)
	StocklistValue(stocklistID uint) (*StocklistValue, error)
	PortfolioAnalytics(portfolioID uint, window int) (*AnalyticsReport, error)
}

// LedgerServicer reads the append-only ledger.
type LedgerServicer interface {
	// UserTransactions lists ledger entries across all the user's
	// portfolios, newest first. A non-empty kind restricts the listing
	// to entries of that kind.
	UserTransactions(userID uint, kind models.LedgerKind, page pagination.Request) (*pagination.Response[models.LedgerEntry], error)
}

// FriendView is one entry in a user's friends listing.
type FriendView struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

// FriendRequestView is one pending incoming or outgoing friend request.
type FriendRequestView struct {
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
}

// FriendshipServicer defines the contract for the social graph.
type FriendshipServicer interface {
	SendRequest(senderID, receiverID uint) error
	AcceptRequest(senderID, receiverID uint) error
	RejectRequest(senderID, receiverID uint) error
	DeleteFriend(userID, friendID uint) error
	Friends(userID uint) ([]FriendView, error)
	IncomingRequests(userID uint) ([]FriendRequestView, error)
	OutgoingRequests(userID uint) ([]FriendRequestView, error)
}

// StocklistView is one stocklist with its owner's username.
type StocklistView struct {
	StocklistID   uint   `json:"stocklist_id"`
	Name          string `json:"name"`
	OwnerUsername string `json:"owner_username"`
}

// ReviewView is one review with reviewer/list context resolved.
type ReviewView struct {
	ReviewID      uint      `json:"review_id"`
	ReviewerID    uint      `json:"reviewer_id"`
	Username      string    `json:"username,omitempty"`
	StocklistID   uint      `json:"stocklist_id"`
	StocklistName string    `json:"stocklist_name,omitempty"`
	Content       string    `json:"content"`
	Timestamp     time.Time `json:"timestamp"`
}

// StocklistServicer defines the contract for stocklists, sharing, and reviews.
type StocklistServicer interface {
	CreateStocklist(creatorID uint, name string, isPublic bool) (*models.Stocklist, error)
	UserStocklists(creatorID uint) ([]models.Stocklist, error)
	DeleteStocklist(userID, stocklistID uint) error
	AddItem(stocklistID uint, symbol string, shares int64) error
	RemoveItem(stocklistID uint, symbol string) error
	Share(stocklistID, ownerID, sharedToID uint) error
	SharedUsers(stocklistID uint) ([]FriendView, error)
	PublicStocklists() ([]StocklistView, error)
	SharedWithMe(userID uint) ([]StocklistView, error)
	CreateReview(reviewerID, stocklistID uint, content string) (*models.Review, error)
	StocklistReviews(stocklistID uint) ([]ReviewView, error)
	UserReviews(reviewerID uint) ([]ReviewView, error)
	DeleteReview(reviewID uint) error
}
