package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Portfolio is a named bucket of cash and stock holdings owned by one user.
// CashBalance must never be negative in any committed state; every mutation
// goes through the trade or cash-movement services under a row lock.
type Portfolio struct {
	ID          uint            `gorm:"primaryKey" json:"portfolio_id"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Name        string          `gorm:"not null" json:"name"`
	CashBalance decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"cash_balance"`
	CreatedAt   time.Time       `json:"created_at"`

	// Relationships
	Holdings []Holding `gorm:"foreignKey:PortfolioID" json:"holdings,omitempty"`
}
