package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerKind classifies a ledger entry.
type LedgerKind string

const (
	LedgerKindBuy         LedgerKind = "buy"
	LedgerKindSell        LedgerKind = "sell"
	LedgerKindDeposit     LedgerKind = "deposit"
	LedgerKindWithdraw    LedgerKind = "withdraw"
	LedgerKindTransferOut LedgerKind = "transfer_out"
	LedgerKindTransferIn  LedgerKind = "transfer_in"
)

// LedgerEntry is an immutable record of one completed cash/share movement.
// Entries are created in the same transaction as the portfolio mutation they
// describe and are never updated or deleted afterwards. StockSymbol and
// Shares are nil for pure cash movements; Shares is always the unsigned
// magnitude of the traded quantity.
type LedgerEntry struct {
	ID          uint            `gorm:"primaryKey" json:"transaction_id"`
	PortfolioID uint            `gorm:"not null;index" json:"portfolio_id"`
	StockSymbol *string         `gorm:"size:10" json:"stock_symbol,omitempty"`
	Shares      *int64          `json:"shares,omitempty"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"total_price"`
	Timestamp   time.Time       `gorm:"not null;index" json:"timestamp"`
	Kind        LedgerKind      `gorm:"not null;size:16" json:"kind"`
}

// CashEffect returns the signed cash delta this entry applied to its
// portfolio. Summing it over a portfolio's entries reconciles with the cash
// balance delta since creation.
func (e *LedgerEntry) CashEffect() decimal.Decimal {
	switch e.Kind {
	case LedgerKindBuy, LedgerKindWithdraw, LedgerKindTransferOut:
		return e.TotalPrice.Neg()
	default:
		return e.TotalPrice
	}
}
