package services

import (
	"gorm.io/gorm"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/models"
	"stockfolio/internal/pagination"
)

// appendLedgerEntry writes one ledger entry inside the caller's transaction.
// The entry commits or rolls back together with the mutation it records.
func appendLedgerEntry(tx *gorm.DB, entry *models.LedgerEntry) error {
	if err := tx.Create(entry).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ledgerService reads the append-only ledger.
type ledgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(db *gorm.DB) LedgerServicer {
	return &ledgerService{db: db}
}

// UserTransactions returns ledger entries across all the user's portfolios,
// newest first, optionally restricted to a single entry kind.
func (s *ledgerService) UserTransactions(userID uint, kind models.LedgerKind, page pagination.Request) (*pagination.Response[models.LedgerEntry], error) {
	page.Defaults()

	base := s.db.Model(&models.LedgerEntry{}).
		Joins("JOIN portfolios ON portfolios.id = ledger_entries.portfolio_id").
		Where("portfolios.user_id = ?", userID)
	if kind != "" {
		base = base.Where("ledger_entries.kind = ?", kind)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.LedgerEntry
	if err := base.Order("ledger_entries.timestamp DESC, ledger_entries.id DESC").
		Scopes(pagination.Scope(page)).
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}
