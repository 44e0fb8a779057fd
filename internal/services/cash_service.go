package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/models"
)

// cashService moves cash into, out of, and between portfolios. Every
// operation is one transaction; transfers lock both portfolio rows in
// ascending ID order so two opposite transfers cannot deadlock.
type cashService struct {
	db *gorm.DB
}

// NewCashService creates a new CashServicer.
func NewCashService(db *gorm.DB) CashServicer {
	return &cashService{db: db}
}

// Deposit credits amount to the portfolio's cash balance.
func (s *cashService) Deposit(portfolioID uint, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.ErrInvalidAmount
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		portfolio, err := lockPortfolio(tx, portfolioID)
		if err != nil {
			return err
		}

		newCash := portfolio.CashBalance.Add(amount)
		if txErr := tx.Model(&models.Portfolio{}).Where("id = ?", portfolioID).
			Update("cash_balance", newCash).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		return appendLedgerEntry(tx, &models.LedgerEntry{
			PortfolioID: portfolioID,
			TotalPrice:  amount,
			Timestamp:   time.Now(),
			Kind:        models.LedgerKindDeposit,
		})
	})
}

// Withdraw debits amount from the portfolio's cash balance. The balance
// check and the debit share one transaction snapshot, so a concurrent
// withdraw or buy cannot drive the balance negative.
func (s *cashService) Withdraw(portfolioID uint, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.ErrInvalidAmount
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		portfolio, err := lockPortfolio(tx, portfolioID)
		if err != nil {
			return err
		}

		if portfolio.CashBalance.LessThan(amount) {
			return apperrors.ErrInsufficientCash
		}

		newCash := portfolio.CashBalance.Sub(amount)
		if txErr := tx.Model(&models.Portfolio{}).Where("id = ?", portfolioID).
			Update("cash_balance", newCash).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		return appendLedgerEntry(tx, &models.LedgerEntry{
			PortfolioID: portfolioID,
			TotalPrice:  amount,
			Timestamp:   time.Now(),
			Kind:        models.LedgerKindWithdraw,
		})
	})
}

// Transfer moves amount from the source portfolio to the portfolio resolved
// by name, debiting and crediting in one transaction spanning both rows.
func (s *cashService) Transfer(sourcePortfolioID uint, targetPortfolioName string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.ErrInvalidAmount
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var target models.Portfolio
		if txErr := tx.Where("name = ?", targetPortfolioName).
			Take(&target).Error; txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				return apperrors.ErrTargetNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		if target.ID == sourcePortfolioID {
			return apperrors.ErrSamePortfolio
		}

		// Fixed global lock order: ascending portfolio ID.
		lockOrder := []uint{sourcePortfolioID, target.ID}
		if lockOrder[0] > lockOrder[1] {
			lockOrder[0], lockOrder[1] = lockOrder[1], lockOrder[0]
		}
		locked := make(map[uint]*models.Portfolio, 2)
		for _, id := range lockOrder {
			p, err := lockPortfolio(tx, id)
			if err != nil {
				return err
			}
			locked[id] = p
		}
		source := locked[sourcePortfolioID]

		if source.CashBalance.LessThan(amount) {
			return apperrors.ErrInsufficientCash
		}

		if txErr := tx.Model(&models.Portfolio{}).Where("id = ?", source.ID).
			Update("cash_balance", source.CashBalance.Sub(amount)).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		if txErr := tx.Model(&models.Portfolio{}).Where("id = ?", target.ID).
			Update("cash_balance", locked[target.ID].CashBalance.Add(amount)).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		now := time.Now()
		if err := appendLedgerEntry(tx, &models.LedgerEntry{
			PortfolioID: source.ID,
			TotalPrice:  amount,
			Timestamp:   now,
			Kind:        models.LedgerKindTransferOut,
		}); err != nil {
			return err
		}
		return appendLedgerEntry(tx, &models.LedgerEntry{
			PortfolioID: target.ID,
			TotalPrice:  amount,
			Timestamp:   now,
			Kind:        models.LedgerKindTransferIn,
		})
	})
}

// lockPortfolio loads a portfolio row under a row lock within tx.
func lockPortfolio(tx *gorm.DB, portfolioID uint) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	if err := lockForUpdate(tx).Take(&portfolio, portfolioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPortfolioNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &portfolio, nil
}
