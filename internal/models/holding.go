package models

// Holding is the share count a portfolio has in one stock symbol.
// A persisted holding always has Shares > 0: the row is deleted in the same
// transaction that brings its share count to zero.
type Holding struct {
	PortfolioID uint   `gorm:"primaryKey;autoIncrement:false" json:"portfolio_id"`
	StockSymbol string `gorm:"primaryKey;size:10" json:"stock_symbol"`
	Shares      int64  `gorm:"not null" json:"shares"`
}
