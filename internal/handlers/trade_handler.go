package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/services"
)

// TradeHandler handles buy/sell trade requests.
type TradeHandler struct {
	tradeService services.TradeServicer
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(tradeService services.TradeServicer) *TradeHandler {
	return &TradeHandler{tradeService: tradeService}
}

// TradeRequest represents the request payload for a buy/sell transaction.
// Shares are signed: positive buys, negative sells. PricePerShare is
// accepted for wire compatibility but ignored; the server re-prices from
// the latest close.
type TradeRequest struct {
	PortfolioID   uint             `json:"portfolio_id" binding:"required"`
	StockSymbol   string           `json:"stock_symbol" binding:"required,stock_symbol"`
	Shares        int64            `json:"shares"`
	PricePerShare *decimal.Decimal `json:"price_per_share,omitempty"`
}

// TradeResponse represents a completed trade.
type TradeResponse struct {
	Status         string          `json:"status"`
	NewCashBalance decimal.Decimal `json:"new_cash_balance"`
}

// ExecuteTrade handles a stock buy/sell against a portfolio
// @Summary     Execute a trade
// @Description Buy (positive shares) or sell (negative shares) a stock at the latest close price
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Param       request body TradeRequest true "Trade details"
// @Success     200 {object} TradeResponse "Trade applied"
// @Failure     400 {object} ErrorResponse "Invalid quantity or insufficient shares/cash"
// @Failure     404 {object} ErrorResponse "Portfolio or price not found"
// @Router      /portfolio/transaction [post]
func (h *TradeHandler) ExecuteTrade(c *gin.Context) {
	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	newCash, err := h.tradeService.ExecuteTrade(req.PortfolioID, req.StockSymbol, req.Shares)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, TradeResponse{
		Status:         "success",
		NewCashBalance: newCash,
	})
}
