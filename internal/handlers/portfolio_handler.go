package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/services"
)

// PortfolioHandler handles portfolio creation and listing.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService services.PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// CreatePortfolioRequest represents the payload for creating a portfolio.
type CreatePortfolioRequest struct {
	UserID      uint            `json:"user_id" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	InitialCash decimal.Decimal `json:"initial_cash"`
}

// CreatePortfolio opens a new portfolio for a user
// @Summary     Create a portfolio
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Param       request body CreatePortfolioRequest true "Portfolio details"
// @Success     201 {object} models.Portfolio
// @Failure     400 {object} ErrorResponse "Missing name or negative initial cash"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /create-portfolio [post]
func (h *PortfolioHandler) CreatePortfolio(c *gin.Context) {
	var req CreatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(req.UserID, req.Name, req.InitialCash)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, portfolio)
}

// GetUserPortfolios lists a user's portfolios
// @Summary     List portfolios
// @Tags        portfolio
// @Produce     json
// @Param       user_id query int true "User ID"
// @Success     200 {array} models.Portfolio
// @Failure     400 {object} ErrorResponse "Invalid user_id"
// @Router      /portfolios [get]
func (h *PortfolioHandler) GetUserPortfolios(c *gin.Context) {
	userID, err := parseUserIDQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolios, err := h.portfolioService.GetUserPortfolios(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, portfolios)
}
