// Package marketdata exposes closing-price lookups over the stock price
// history tables. The ledger engine consumes it as a read-only collaborator;
// writes happen only through the ingestion Loader.
package marketdata

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "stockfolio/internal/errors"
)

// ClosePoint is one historical closing price.
type ClosePoint struct {
	Timestamp time.Time       `json:"timestamp"`
	Close     decimal.Decimal `json:"close"`
}

// Provider serves the most recent and historical closing prices per symbol.
type Provider interface {
	// LatestPrice returns the most recent close for symbol, or
	// ErrPriceNotFound when no quote is on record.
	LatestPrice(symbol string) (decimal.Decimal, error)
	// LatestPrices batches LatestPrice over many symbols. Symbols with no
	// quote are absent from the result map.
	LatestPrices(symbols []string) (map[string]decimal.Decimal, error)
	// PriceHistory returns up to limit closes for symbol, oldest first.
	PriceHistory(symbol string, limit int) ([]ClosePoint, error)
}

// gormProvider reads prices from the stock_prices table.
type gormProvider struct {
	db *gorm.DB
}

// NewProvider creates a database-backed Provider.
func NewProvider(db *gorm.DB) Provider {
	return &gormProvider{db: db}
}

func (p *gormProvider) LatestPrice(symbol string) (decimal.Decimal, error) {
	var row struct {
		Close decimal.Decimal
	}
	err := p.db.Table("stock_prices").
		Select("close").
		Where("symbol = ?", symbol).
		Order("timestamp DESC").
		Limit(1).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, apperrors.ErrPriceNotFound
		}
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return row.Close, nil
}

func (p *gormProvider) LatestPrices(symbols []string) (map[string]decimal.Decimal, error) {
	if len(symbols) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	type priceRow struct {
		Symbol string
		Close  decimal.Decimal
	}
	var rows []priceRow

	subq := p.db.Table("stock_prices").
		Select("symbol, MAX(timestamp) AS max_ts").
		Where("symbol IN ?", symbols).
		Group("symbol")

	if err := p.db.Table("stock_prices sp").
		Select("sp.symbol, sp.close").
		Joins("INNER JOIN (?) latest ON sp.symbol = latest.symbol AND sp.timestamp = latest.max_ts", subq).
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		result[r.Symbol] = r.Close
	}
	return result, nil
}

func (p *gormProvider) PriceHistory(symbol string, limit int) ([]ClosePoint, error) {
	if limit <= 0 {
		limit = 252
	}

	var rows []ClosePoint
	if err := p.db.Table("stock_prices").
		Select("timestamp, close").
		Where("symbol = ?", symbol).
		Order("timestamp DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrPriceNotFound
	}

	// Query is newest-first so the LIMIT keeps the most recent window;
	// callers expect oldest-first series.
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}
