package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/services"
)

// StocklistHandler handles stocklists, sharing, and reviews.
type StocklistHandler struct {
	stocklistService services.StocklistServicer
}

// NewStocklistHandler creates a new StocklistHandler.
func NewStocklistHandler(stocklistService services.StocklistServicer) *StocklistHandler {
	return &StocklistHandler{stocklistService: stocklistService}
}

// CreateStocklistRequest represents the payload for creating a stocklist.
type CreateStocklistRequest struct {
	UserID   uint   `json:"user_id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	IsPublic bool   `json:"is_public"`
}

// DeleteStocklistRequest identifies a stocklist to delete with its owner.
type DeleteStocklistRequest struct {
	UserID      uint `json:"user_id" binding:"required"`
	StocklistID uint `json:"stocklist_id" binding:"required"`
}

// StocklistItemRequest represents the payload for adding shares of a stock
// to a stocklist.
type StocklistItemRequest struct {
	StockSymbol string `json:"stock_symbol" binding:"required,stock_symbol"`
	Shares      int64  `json:"shares" binding:"required"`
}

// ShareStocklistRequest represents the payload for sharing a stocklist with
// another user.
type ShareStocklistRequest struct {
	OwnerID    uint `json:"owner_id" binding:"required"`
	SharedToID uint `json:"shared_to_id" binding:"required"`
}

// CreateReviewRequest represents the payload for reviewing a stocklist.
type CreateReviewRequest struct {
	ReviewerID  uint   `json:"reviewer_id" binding:"required"`
	StocklistID uint   `json:"stocklist_id" binding:"required"`
	Content     string `json:"content" binding:"required,max=4000"`
}

// CreateStocklist creates a stocklist
// @Summary     Create a stocklist
// @Tags        stocklists
// @Accept      json
// @Produce     json
// @Param       request body CreateStocklistRequest true "Stocklist details"
// @Success     201 {object} models.Stocklist
// @Failure     400 {object} ErrorResponse
// @Router      /create-stocklist [post]
func (h *StocklistHandler) CreateStocklist(c *gin.Context) {
	var req CreateStocklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	list, err := h.stocklistService.CreateStocklist(req.UserID, req.Name, req.IsPublic)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, list)
}

// UserStocklists lists a user's own stocklists
// @Summary     List own stocklists
// @Tags        stocklists
// @Produce     json
// @Param       user_id query int true "User ID"
// @Success     200 {array} models.Stocklist
// @Router      /get-stocklists [get]
func (h *StocklistHandler) UserStocklists(c *gin.Context) {
	userID, err := parseUserIDQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	lists, err := h.stocklistService.UserStocklists(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, lists)
}

// DeleteStocklist deletes a stocklist and everything attached to it
// @Summary     Delete a stocklist
// @Tags        stocklists
// @Accept      json
// @Produce     json
// @Param       request body DeleteStocklistRequest true "Stocklist and owner"
// @Success     200 {object} StatusResponse
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Stocklist not found"
// @Router      /delete-stocklist [delete]
func (h *StocklistHandler) DeleteStocklist(c *gin.Context) {
	var req DeleteStocklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.stocklistService.DeleteStocklist(req.UserID, req.StocklistID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Status: "success", Message: "Stocklist deleted"})
}

// AddItem adds shares of a stock to a stocklist
// @Summary     Add stock to stocklist
// @Tags        stocklists
// @Accept      json
// @Produce     json
// @Param       id      path int                  true "Stocklist ID"
// @Param       request body StocklistItemRequest true "Symbol and share count"
// @Success     200 {object} StatusResponse
// @Failure     400 {object} ErrorResponse "Non-positive share count"
// @Failure     404 {object} ErrorResponse "Stocklist not found"
// @Router      /stocklists/{id}/add-stock [post]
func (h *StocklistHandler) AddItem(c *gin.Context) {
	stocklistID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req StocklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.stocklistService.AddItem(stocklistID, req.StockSymbol, req.Shares); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Status: "success", Message: "Stock added"})
}

// RemoveItem removes a stock from a stocklist
// @Summary     Remove stock from stocklist
// @Tags        stocklists
// @Produce     json
// @Param       id     path string true "Stocklist ID"
// @Param       symbol path string true "Stock symbol"
// @Success     200 {object} StatusResponse
// @Failure     404 {object} ErrorResponse "Stocklist not found"
// @Router      /stocklists/{id}/remove-stock/{symbol} [delete]
func (h *StocklistHandler) RemoveItem(c *gin.Context) {
	stocklistID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	symbol := strings.ToUpper(c.Param("symbol"))

	if err := h.stocklistService.RemoveItem(stocklistID, symbol); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Status: "success", Message: "Stock removed"})
}

// Share shares a private stocklist with another user
// @Summary     Share a stocklist
// @Tags        stocklists
// @Accept      json
// @Produce     json
// @Param       id      path int                   true "Stocklist ID"
// @Param       request body ShareStocklistRequest true "Owner and recipient"
// @Success     200 {object} StatusResponse
// @Failure     400 {object} ErrorResponse "Stocklist is public"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Router      /stocklists/{id}/share [post]
func (h *StocklistHandler) Share(c *gin.Context) {
	stocklistID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ShareStocklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.stocklistService.Share(stocklistID, req.OwnerID, req.SharedToID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Status: "success", Message: "Stocklist shared"})
}

// SharedUsers lists the users a stocklist is shared with
// @Summary     List shared users
// @Tags        stocklists
// @Produce     json
// @Param       id path int true "Stocklist ID"
// @Success     200 {array} services.FriendView
// @Router      /stocklists/{id}/shared-users [get]
func (h *StocklistHandler) SharedUsers(c *gin.Context) {
	stocklistID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	users, err := h.stocklistService.SharedUsers(stocklistID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// PublicStocklists lists all public stocklists
// @Summary     List public stocklists
// @Tags        stocklists
// @Produce     json
// @Success     200 {array} services.StocklistView
// @Router      /stocklists/public [get]
func (h *StocklistHandler) PublicStocklists(c *gin.Context) {
	lists, err := h.stocklistService.PublicStocklists()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, lists)
}

// SharedWithMe lists stocklists shared with a user
// @Summary     List stocklists shared with me
// @Tags        stocklists
// @Produce     json
// @Param       user_id query int true "User ID"
// @Success     200 {array} services.StocklistView
// @Router      /stocklists/shared-with-me [get]
func (h *StocklistHandler) SharedWithMe(c *gin.Context) {
	userID, err := parseUserIDQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	lists, err := h.stocklistService.SharedWithMe(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, lists)
}

// CreateReview reviews a stocklist
// @Summary     Create a review
// @Tags        reviews
// @Accept      json
// @Produce     json
// @Param       request body CreateReviewRequest true "Review details"
// @Success     201 {object} models.Review
// @Failure     400 {object} ErrorResponse "Empty content or duplicate review"
// @Failure     404 {object} ErrorResponse "Stocklist not found"
// @Router      /create-review [post]
func (h *StocklistHandler) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	review, err := h.stocklistService.CreateReview(req.ReviewerID, req.StocklistID, req.Content)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// StocklistReviews lists reviews of a stocklist
// @Summary     List stocklist reviews
// @Tags        reviews
// @Produce     json
// @Param       id path int true "Stocklist ID"
// @Success     200 {array} services.ReviewView
// @Router      /stocklists/{id}/reviews [get]
func (h *StocklistHandler) StocklistReviews(c *gin.Context) {
	stocklistID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	reviews, err := h.stocklistService.StocklistReviews(stocklistID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// UserReviews lists a user's own reviews
// @Summary     List my reviews
// @Tags        reviews
// @Produce     json
// @Param       user_id query int true "User ID"
// @Success     200 {array} services.ReviewView
// @Router      /my-reviews [get]
func (h *StocklistHandler) UserReviews(c *gin.Context) {
	userID, err := parseUserIDQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	reviews, err := h.stocklistService.UserReviews(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// DeleteReview deletes a review
// @Summary     Delete a review
// @Tags        reviews
// @Produce     json
// @Param       id path int true "Review ID"
// @Success     200 {object} StatusResponse
// @Failure     404 {object} ErrorResponse "Review not found"
// @Router      /reviews/{id} [delete]
func (h *StocklistHandler) DeleteReview(c *gin.Context) {
	reviewID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.stocklistService.DeleteReview(reviewID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Status: "success", Message: "Review deleted"})
}
