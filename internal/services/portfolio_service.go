package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/models"
)

// portfolioService handles portfolio CRUD. All balance and holding
// mutations go through the trade and cash services, never through here.
type portfolioService struct {
	db *gorm.DB
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB) PortfolioServicer {
	return &portfolioService{db: db}
}

// CreatePortfolio creates a portfolio for a user with an opening cash
// balance. The opening balance is part of creation, not a cash movement, so
// no ledger entry is written for it.
func (s *portfolioService) CreatePortfolio(userID uint, name string, initialCash decimal.Decimal) (*models.Portfolio, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "portfolio name is required")
	}
	if initialCash.IsNegative() {
		return nil, apperrors.ErrInvalidAmount
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrUserNotFound
	}

	portfolio := &models.Portfolio{
		UserID:      userID,
		Name:        name,
		CashBalance: initialCash,
	}
	if err := s.db.Create(portfolio).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return portfolio, nil
}

// GetUserPortfolios lists all portfolios owned by a user.
func (s *portfolioService) GetUserPortfolios(userID uint) ([]models.Portfolio, error) {
	var portfolios []models.Portfolio
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&portfolios).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return portfolios, nil
}

// GetPortfolioByID retrieves a portfolio by ID.
func (s *portfolioService) GetPortfolioByID(portfolioID uint) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	if err := s.db.Take(&portfolio, portfolioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPortfolioNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &portfolio, nil
}

// CashBalance returns the portfolio's current cash balance.
func (s *portfolioService) CashBalance(portfolioID uint) (decimal.Decimal, error) {
	portfolio, err := s.GetPortfolioByID(portfolioID)
	if err != nil {
		return decimal.Zero, err
	}
	return portfolio.CashBalance, nil
}
