package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/services"
)

// ValuationHandler serves read-only valuations of portfolios and stocklists.
type ValuationHandler struct {
	valuationService services.ValuationServicer
}

// NewValuationHandler creates a new ValuationHandler.
func NewValuationHandler(valuationService services.ValuationServicer) *ValuationHandler {
	return &ValuationHandler{valuationService: valuationService}
}

// PortfolioHoldings lists a portfolio's holdings with market values
// @Summary     Get portfolio holdings
// @Description Per-holding breakdown at the latest known close; holdings without a price quote are omitted
// @Tags        valuation
// @Produce     json
// @Param       id path int true "Portfolio ID"
// @Success     200 {array} services.HoldingView
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolio/{id}/holdings [get]
func (h *ValuationHandler) PortfolioHoldings(c *gin.Context) {
	portfolioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	holdings, err := h.valuationService.PortfolioHoldings(portfolioID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, holdings)
}

// PortfolioValue reports the market value of a portfolio's holdings
// @Summary     Get portfolio market value
// @Tags        valuation
// @Produce     json
// @Param       id path int true "Portfolio ID"
// @Success     200 {object} services.PortfolioValue
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolio/{id}/value [get]
func (h *ValuationHandler) PortfolioValue(c *gin.Context) {
	portfolioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	value, err := h.valuationService.PortfolioValue(portfolioID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, value)
}

// PortfolioAnalytics reports dispersion statistics for a portfolio's holdings
// @Summary     Get portfolio analytics
// @Description Mean, standard deviation, and coefficient of variation per holding, plus pairwise covariance and correlation over the requested window of daily closes
// @Tags        valuation
// @Produce     json
// @Param       id     path  int true  "Portfolio ID"
// @Param       window query int false "Number of daily closes (default 252)"
// @Success     200 {object} services.AnalyticsReport
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolio/{id}/analytics [get]
func (h *ValuationHandler) PortfolioAnalytics(c *gin.Context) {
	portfolioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	window := 0
	if raw := c.Query("window"); raw != "" {
		window, err = strconv.Atoi(raw)
		if err != nil || window < 2 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid window"))
			return
		}
	}

	report, err := h.valuationService.PortfolioAnalytics(portfolioID, window)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// StocklistValue reports the market value of a stocklist
// @Summary     Get stocklist market value
// @Tags        valuation
// @Produce     json
// @Param       id path int true "Stocklist ID"
// @Success     200 {object} services.StocklistValue
// @Failure     404 {object} ErrorResponse "Stocklist not found"
// @Router      /stocklists/{id}/value [get]
func (h *ValuationHandler) StocklistValue(c *gin.Context) {
	stocklistID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	value, err := h.valuationService.StocklistValue(stocklistID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, value)
}
