package models

import "time"

// Stocklist is a shareable watchlist of symbols with notional share counts.
type Stocklist struct {
	ID        uint      `gorm:"primaryKey" json:"stocklist_id"`
	CreatorID uint      `gorm:"not null;index" json:"creator_id"`
	Name      string    `gorm:"not null" json:"name"`
	IsPublic  bool      `gorm:"not null;default:false" json:"is_public"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Items []StocklistItem `gorm:"foreignKey:StocklistID" json:"items,omitempty"`
}

// StocklistItem is one symbol entry in a stocklist. Adding the same symbol
// again accumulates shares rather than duplicating the row.
type StocklistItem struct {
	StocklistID uint   `gorm:"primaryKey;autoIncrement:false" json:"stocklist_id"`
	StockSymbol string `gorm:"primaryKey;size:10" json:"stock_symbol"`
	Shares      int64  `gorm:"not null" json:"shares"`
}

// SharedStocklist grants one user read access to a private stocklist.
type SharedStocklist struct {
	StocklistID uint `gorm:"primaryKey;autoIncrement:false" json:"stocklist_id"`
	SharedToID  uint `gorm:"primaryKey;autoIncrement:false" json:"sharedto_id"`
}
