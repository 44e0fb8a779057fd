package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/marketdata"
	"stockfolio/internal/models"
)

// tradeService applies buy/sell trades against the portfolio store.
//
// Every trade runs as one transaction: the portfolio row is locked first, so
// the precondition reads (cash, holding) and the mutations observe the same
// snapshot and concurrent trades on the same portfolio serialize.
type tradeService struct {
	db     *gorm.DB
	market marketdata.Provider
}

// NewTradeService creates a new TradeServicer.
func NewTradeService(db *gorm.DB, market marketdata.Provider) TradeServicer {
	return &tradeService{db: db, market: market}
}

// ExecuteTrade applies a signed-share trade to a portfolio. Positive shares
// buy, negative shares sell. On success it returns the new cash balance; on
// any failure the portfolio, holdings, and ledger are untouched.
func (s *tradeService) ExecuteTrade(portfolioID uint, symbol string, signedShares int64) (decimal.Decimal, error) {
	if signedShares == 0 {
		return decimal.Zero, apperrors.ErrInvalidQuantity
	}

	// The commit reuses the price from this lookup; it is not re-read inside
	// the transaction, so a price tick between lookup and commit prices the
	// trade at lookup time.
	price, err := s.market.LatestPrice(symbol)
	if err != nil {
		return decimal.Zero, err
	}

	magnitude := signedShares
	if magnitude < 0 {
		magnitude = -magnitude
	}
	totalPrice := price.Mul(decimal.NewFromInt(magnitude))
	isBuy := signedShares > 0

	var newCash decimal.Decimal
	err = s.db.Transaction(func(tx *gorm.DB) error {
		portfolio, txErr := lockPortfolio(tx, portfolioID)
		if txErr != nil {
			return txErr
		}

		// Holding read shares the transaction snapshot with the lock above;
		// a missing row counts as zero shares.
		currentShares := int64(0)
		holdingExists := true
		var holding models.Holding
		if txErr := tx.Where("portfolio_id = ? AND stock_symbol = ?", portfolioID, symbol).
			Take(&holding).Error; txErr != nil {
			if !errors.Is(txErr, gorm.ErrRecordNotFound) {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}
			holdingExists = false
		} else {
			currentShares = holding.Shares
		}

		if !isBuy && currentShares < magnitude {
			return apperrors.ErrInsufficientShares
		}
		if isBuy && portfolio.CashBalance.LessThan(totalPrice) {
			return apperrors.ErrInsufficientCash
		}

		if isBuy {
			newCash = portfolio.CashBalance.Sub(totalPrice)
		} else {
			newCash = portfolio.CashBalance.Add(totalPrice)
		}
		if txErr := tx.Model(&models.Portfolio{}).Where("id = ?", portfolioID).
			Update("cash_balance", newCash).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		newShares := currentShares + signedShares
		switch {
		case newShares < 0:
			return apperrors.ErrNegativeShareCount
		case newShares == 0:
			// A holding reaching zero is deleted, never stored as zero.
			if txErr := tx.Where("portfolio_id = ? AND stock_symbol = ?", portfolioID, symbol).
				Delete(&models.Holding{}).Error; txErr != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}
		case holdingExists:
			if txErr := tx.Model(&models.Holding{}).
				Where("portfolio_id = ? AND stock_symbol = ?", portfolioID, symbol).
				Update("shares", newShares).Error; txErr != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}
		default:
			newHolding := models.Holding{PortfolioID: portfolioID, StockSymbol: symbol, Shares: newShares}
			if txErr := tx.Create(&newHolding).Error; txErr != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}
		}

		kind := models.LedgerKindBuy
		if !isBuy {
			kind = models.LedgerKindSell
		}
		entrySymbol := symbol
		entryShares := magnitude
		return appendLedgerEntry(tx, &models.LedgerEntry{
			PortfolioID: portfolioID,
			StockSymbol: &entrySymbol,
			Shares:      &entryShares,
			TotalPrice:  totalPrice,
			Timestamp:   time.Now(),
			Kind:        kind,
		})
	})
	if err != nil {
		return decimal.Zero, err
	}

	return newCash, nil
}
