package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/models"
	"stockfolio/internal/pagination"
	"stockfolio/internal/services"
)

// LedgerHandler serves the append-only transaction ledger.
type LedgerHandler struct {
	ledgerService services.LedgerServicer
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService services.LedgerServicer) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// LedgerQuery carries the optional filters of a ledger listing.
type LedgerQuery struct {
	Kind string `form:"kind" binding:"omitempty,ledger_kind"`
}

// UserTransactions lists ledger entries across all of a user's portfolios
// @Summary     List user transactions
// @Description Paginated ledger entries across every portfolio owned by the user, newest first
// @Tags        ledger
// @Produce     json
// @Param       user_id   query int    true  "User ID"
// @Param       kind      query string false "Restrict to one entry kind (buy, sell, deposit, withdraw, transfer_out, transfer_in)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Page size (default 25)"
// @Success     200 {object} pagination.Response[models.LedgerEntry]
// @Failure     400 {object} ErrorResponse "Invalid user_id or kind"
// @Router      /portfolio/user-transactions [get]
func (h *LedgerHandler) UserTransactions(c *gin.Context) {
	userID, err := parseUserIDQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query LedgerQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var page pagination.Request
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	page.Defaults()

	entries, err := h.ledgerService.UserTransactions(userID, models.LedgerKind(query.Kind), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
