package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/services"
)

// CashHandler handles deposits, withdrawals, and transfers.
type CashHandler struct {
	cashService      services.CashServicer
	portfolioService services.PortfolioServicer
}

// NewCashHandler creates a new CashHandler.
func NewCashHandler(cashService services.CashServicer, portfolioService services.PortfolioServicer) *CashHandler {
	return &CashHandler{cashService: cashService, portfolioService: portfolioService}
}

// AmountRequest carries the cash amount for a deposit or withdrawal.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// TransferRequest carries the amount and destination of a cash transfer.
type TransferRequest struct {
	Amount              decimal.Decimal `json:"amount" binding:"required"`
	TargetPortfolioName string          `json:"target_portfolio_name" binding:"required"`
}

// StatusResponse is a generic success acknowledgement.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// CashBalanceResponse reports a portfolio's current cash balance.
type CashBalanceResponse struct {
	CashBalance decimal.Decimal `json:"cash_balance"`
}

// Deposit adds cash to a portfolio
// @Summary     Deposit cash
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Param       id      path int           true "Portfolio ID"
// @Param       request body AmountRequest true "Deposit amount"
// @Success     200 {object} StatusResponse
// @Failure     400 {object} ErrorResponse "Non-positive amount"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolio/{id}/deposit [post]
func (h *CashHandler) Deposit(c *gin.Context) {
	portfolioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.cashService.Deposit(portfolioID, req.Amount); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Status: "success", Message: "Deposit completed"})
}

// Withdraw removes cash from a portfolio
// @Summary     Withdraw cash
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Param       id      path int           true "Portfolio ID"
// @Param       request body AmountRequest true "Withdrawal amount"
// @Success     200 {object} StatusResponse
// @Failure     400 {object} ErrorResponse "Non-positive amount or insufficient cash"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolio/{id}/withdraw [post]
func (h *CashHandler) Withdraw(c *gin.Context) {
	portfolioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.cashService.Withdraw(portfolioID, req.Amount); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Status: "success", Message: "Withdrawal completed"})
}

// Transfer moves cash from one portfolio to another
// @Summary     Transfer cash between portfolios
// @Description Moves cash from the source portfolio to the portfolio named in the request
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Param       id      path int             true "Source portfolio ID"
// @Param       request body TransferRequest true "Transfer details"
// @Success     200 {object} StatusResponse
// @Failure     400 {object} ErrorResponse "Non-positive amount, insufficient cash, or same portfolio"
// @Failure     404 {object} ErrorResponse "Source or target portfolio not found"
// @Router      /portfolio/{id}/transfer [post]
func (h *CashHandler) Transfer(c *gin.Context) {
	portfolioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.cashService.Transfer(portfolioID, req.TargetPortfolioName, req.Amount); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Status: "success", Message: "Transfer completed"})
}

// CashBalance reports a portfolio's cash balance
// @Summary     Get cash balance
// @Tags        portfolio
// @Produce     json
// @Param       id path int true "Portfolio ID"
// @Success     200 {object} CashBalanceResponse
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolio/{id}/cash [get]
func (h *CashHandler) CashBalance(c *gin.Context) {
	portfolioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	balance, err := h.portfolioService.CashBalance(portfolioID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CashBalanceResponse{CashBalance: balance})
}
