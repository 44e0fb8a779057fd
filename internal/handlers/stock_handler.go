package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/marketdata"
)

// StockHandler serves stock price lookups.
type StockHandler struct {
	provider marketdata.Provider
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(provider marketdata.Provider) *StockHandler {
	return &StockHandler{provider: provider}
}

// LatestPriceResponse is the most recent close price for a symbol.
type LatestPriceResponse struct {
	StockSymbol string          `json:"stock_symbol"`
	Close       decimal.Decimal `json:"close"`
}

// LatestPrice returns the most recent close price for a symbol
// @Summary     Get latest price
// @Tags        stocks
// @Produce     json
// @Param       symbol path string true "Stock symbol"
// @Success     200 {object} LatestPriceResponse
// @Failure     404 {object} ErrorResponse "No price recorded for the symbol"
// @Router      /stock/{symbol}/latest-price [get]
func (h *StockHandler) LatestPrice(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))

	price, err := h.provider.LatestPrice(symbol)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, LatestPriceResponse{StockSymbol: symbol, Close: price})
}

// PriceHistory returns historical daily closes for a symbol, oldest first
// @Summary     Get price history
// @Tags        stocks
// @Produce     json
// @Param       symbol path  string true  "Stock symbol"
// @Param       limit  query int    false "Maximum number of closes (default 252)"
// @Success     200 {array} marketdata.ClosePoint
// @Failure     404 {object} ErrorResponse "No price recorded for the symbol"
// @Router      /stock/{symbol}/history [get]
func (h *StockHandler) PriceHistory(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		var err error
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid limit"))
			return
		}
	}

	history, err := h.provider.PriceHistory(symbol, limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}
