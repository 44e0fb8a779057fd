package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/models"
)

// stocklistService handles stocklists, private sharing, and reviews.
type stocklistService struct {
	db *gorm.DB
}

// NewStocklistService creates a new StocklistServicer.
func NewStocklistService(db *gorm.DB) StocklistServicer {
	return &stocklistService{db: db}
}

// CreateStocklist creates a public or private stocklist.
func (s *stocklistService) CreateStocklist(creatorID uint, name string, isPublic bool) (*models.Stocklist, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "stocklist name is required")
	}

	list := &models.Stocklist{
		CreatorID: creatorID,
		Name:      name,
		IsPublic:  isPublic,
	}
	if err := s.db.Create(list).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return list, nil
}

// UserStocklists lists the stocklists a user created.
func (s *stocklistService) UserStocklists(creatorID uint) ([]models.Stocklist, error) {
	var lists []models.Stocklist
	if err := s.db.Where("creator_id = ?", creatorID).Order("id").Find(&lists).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return lists, nil
}

// DeleteStocklist removes a stocklist with its items and share grants.
// Only the creator may delete it.
func (s *stocklistService) DeleteStocklist(userID, stocklistID uint) error {
	var list models.Stocklist
	if err := s.db.Where("id = ? AND creator_id = ?", stocklistID, userID).Take(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotStocklistOwner
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if txErr := tx.Where("stocklist_id = ?", stocklistID).Delete(&models.StocklistItem{}).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		if txErr := tx.Where("stocklist_id = ?", stocklistID).Delete(&models.SharedStocklist{}).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		if txErr := tx.Delete(&models.Stocklist{}, stocklistID).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
}

// AddItem adds shares of a symbol to a stocklist; repeated adds accumulate.
func (s *stocklistService) AddItem(stocklistID uint, symbol string, shares int64) error {
	if shares <= 0 {
		return apperrors.ErrInvalidAmount
	}
	if err := s.requireStocklist(stocklistID); err != nil {
		return err
	}

	item := models.StocklistItem{
		StocklistID: stocklistID,
		StockSymbol: symbol,
		Shares:      shares,
	}
	if err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "stocklist_id"}, {Name: "stock_symbol"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"shares": gorm.Expr("stocklist_items.shares + excluded.shares"),
		}),
	}).Create(&item).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// RemoveItem removes a symbol from a stocklist.
func (s *stocklistService) RemoveItem(stocklistID uint, symbol string) error {
	if err := s.db.Where("stocklist_id = ? AND stock_symbol = ?", stocklistID, symbol).
		Delete(&models.StocklistItem{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Share grants a user read access to a private stocklist. Public lists are
// already visible and cannot be shared; only the owner may share.
func (s *stocklistService) Share(stocklistID, ownerID, sharedToID uint) error {
	var list models.Stocklist
	if err := s.db.Take(&list, stocklistID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrStocklistNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if list.IsPublic {
		return apperrors.ErrPublicStocklist
	}
	if list.CreatorID != ownerID {
		return apperrors.ErrNotStocklistOwner
	}

	grant := models.SharedStocklist{StocklistID: stocklistID, SharedToID: sharedToID}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&grant).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// SharedUsers lists the users a stocklist has been shared with.
func (s *stocklistService) SharedUsers(stocklistID uint) ([]FriendView, error) {
	var views []FriendView
	if err := s.db.Model(&models.SharedStocklist{}).
		Select("users.id AS user_id, users.username").
		Joins("JOIN users ON users.id = shared_stocklists.shared_to_id").
		Where("shared_stocklists.stocklist_id = ?", stocklistID).
		Scan(&views).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if views == nil {
		views = []FriendView{}
	}
	return views, nil
}

// PublicStocklists lists all public stocklists with their owners.
func (s *stocklistService) PublicStocklists() ([]StocklistView, error) {
	var views []StocklistView
	if err := s.db.Model(&models.Stocklist{}).
		Select("stocklists.id AS stocklist_id, stocklists.name, users.username AS owner_username").
		Joins("JOIN users ON users.id = stocklists.creator_id").
		Where("stocklists.is_public = ?", true).
		Scan(&views).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if views == nil {
		views = []StocklistView{}
	}
	return views, nil
}

// SharedWithMe lists stocklists privately shared with a user.
func (s *stocklistService) SharedWithMe(userID uint) ([]StocklistView, error) {
	var views []StocklistView
	if err := s.db.Model(&models.SharedStocklist{}).
		Select("stocklists.id AS stocklist_id, stocklists.name, users.username AS owner_username").
		Joins("JOIN stocklists ON stocklists.id = shared_stocklists.stocklist_id").
		Joins("JOIN users ON users.id = stocklists.creator_id").
		Where("shared_stocklists.shared_to_id = ?", userID).
		Scan(&views).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if views == nil {
		views = []StocklistView{}
	}
	return views, nil
}

// CreateReview adds a review to a stocklist; a reviewer may hold at most
// one review per list.
func (s *stocklistService) CreateReview(reviewerID, stocklistID uint, content string) (*models.Review, error) {
	if content == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "review content is required")
	}
	if err := s.requireStocklist(stocklistID); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Review{}).
		Where("reviewer_id = ? AND stocklist_id = ?", reviewerID, stocklistID).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateReview
	}

	review := &models.Review{
		ReviewerID:  reviewerID,
		StocklistID: stocklistID,
		Content:     content,
		Timestamp:   time.Now(),
	}
	if err := s.db.Create(review).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return review, nil
}

// StocklistReviews lists the reviews on a stocklist with reviewer names.
func (s *stocklistService) StocklistReviews(stocklistID uint) ([]ReviewView, error) {
	var views []ReviewView
	if err := s.db.Model(&models.Review{}).
		Select("reviews.id AS review_id, reviews.reviewer_id, users.username, reviews.stocklist_id, reviews.content, reviews.timestamp").
		Joins("JOIN users ON users.id = reviews.reviewer_id").
		Where("reviews.stocklist_id = ?", stocklistID).
		Scan(&views).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if views == nil {
		views = []ReviewView{}
	}
	return views, nil
}

// UserReviews lists the reviews a user has written, with stocklist names.
func (s *stocklistService) UserReviews(reviewerID uint) ([]ReviewView, error) {
	var views []ReviewView
	if err := s.db.Model(&models.Review{}).
		Select("reviews.id AS review_id, reviews.reviewer_id, reviews.stocklist_id, stocklists.name AS stocklist_name, reviews.content, reviews.timestamp").
		Joins("JOIN stocklists ON stocklists.id = reviews.stocklist_id").
		Where("reviews.reviewer_id = ?", reviewerID).
		Scan(&views).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if views == nil {
		views = []ReviewView{}
	}
	return views, nil
}

// DeleteReview removes a review by ID.
func (s *stocklistService) DeleteReview(reviewID uint) error {
	result := s.db.Delete(&models.Review{}, reviewID)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrReviewNotFound
	}
	return nil
}

func (s *stocklistService) requireStocklist(stocklistID uint) error {
	var count int64
	if err := s.db.Model(&models.Stocklist{}).Where("id = ?", stocklistID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrStocklistNotFound
	}
	return nil
}
