package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock is a listed instrument known to the market data tables.
type Stock struct {
	Symbol      string `gorm:"primaryKey;size:10" json:"stock_symbol"`
	CompanyName string `gorm:"not null" json:"company_name"`
}

// StockPrice is one historical closing price for a symbol. Rows are written
// only by the market-data ingestion path and read by everything else.
type StockPrice struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Symbol    string          `gorm:"not null;size:10;index:idx_stock_prices_symbol_ts" json:"symbol"`
	Timestamp time.Time       `gorm:"not null;index:idx_stock_prices_symbol_ts" json:"timestamp"`
	Close     decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"close"`
}
