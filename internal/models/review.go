package models

import "time"

// Review is one user's review of a stocklist. A reviewer may hold at most
// one review per stocklist.
type Review struct {
	ID          uint      `gorm:"primaryKey" json:"review_id"`
	ReviewerID  uint      `gorm:"not null;uniqueIndex:uq_reviews_reviewer_stocklist" json:"reviewer_id"`
	StocklistID uint      `gorm:"not null;uniqueIndex:uq_reviews_reviewer_stocklist" json:"stocklist_id"`
	Content     string    `gorm:"not null" json:"content"`
	Timestamp   time.Time `gorm:"not null" json:"timestamp"`
}
