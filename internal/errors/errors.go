// Package errors provides custom error types for the Stockfolio API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrForbidden      = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Ledger engine errors. Each maps to a 4xx response; none are retried by the
// server, and every one aborts the operation before any mutation commits.
var (
	ErrInvalidQuantity    = &AppError{Code: "INVALID_QUANTITY", Message: "Transaction must involve at least 1 share", StatusCode: http.StatusBadRequest}
	ErrInvalidAmount      = &AppError{Code: "INVALID_AMOUNT", Message: "Amount must be greater than zero", StatusCode: http.StatusBadRequest}
	ErrPriceNotFound      = &AppError{Code: "PRICE_NOT_FOUND", Message: "Stock price not found", StatusCode: http.StatusNotFound}
	ErrPortfolioNotFound  = &AppError{Code: "PORTFOLIO_NOT_FOUND", Message: "Portfolio not found", StatusCode: http.StatusNotFound}
	ErrTargetNotFound     = &AppError{Code: "TARGET_NOT_FOUND", Message: "Target portfolio not found", StatusCode: http.StatusNotFound}
	ErrInsufficientShares = &AppError{Code: "INSUFFICIENT_SHARES", Message: "Insufficient shares to sell", StatusCode: http.StatusBadRequest}
	ErrInsufficientCash   = &AppError{Code: "INSUFFICIENT_CASH", Message: "Insufficient cash", StatusCode: http.StatusBadRequest}
	// Unreachable while trades hold the portfolio row lock; kept as a hard
	// stop in case isolation is ever weakened.
	ErrNegativeShareCount = &AppError{Code: "NEGATIVE_SHARE_COUNT", Message: "Negative share count not allowed", StatusCode: http.StatusBadRequest}
	ErrSamePortfolio      = &AppError{Code: "SAME_PORTFOLIO_TRANSFER", Message: "Cannot transfer to the same portfolio", StatusCode: http.StatusBadRequest}
)

// User errors.
var (
	ErrUserNotFound      = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateUsername = &AppError{Code: "DUPLICATE_USERNAME", Message: "Username already exists", StatusCode: http.StatusConflict}
)

// Stock errors.
var (
	ErrStockNotFound = &AppError{Code: "STOCK_NOT_FOUND", Message: "Stock not found or invalid", StatusCode: http.StatusNotFound}
)

// Friendship errors.
var (
	ErrSelfFriendRequest  = &AppError{Code: "SELF_FRIEND_REQUEST", Message: "You cannot add yourself", StatusCode: http.StatusBadRequest}
	ErrFriendshipPending  = &AppError{Code: "FRIENDSHIP_PENDING", Message: "Friendship already pending", StatusCode: http.StatusBadRequest}
	ErrAlreadyFriends     = &AppError{Code: "ALREADY_FRIENDS", Message: "You are already friends", StatusCode: http.StatusBadRequest}
	ErrRejectionCooldown  = &AppError{Code: "REJECTION_COOLDOWN", Message: "Cannot send request yet (wait for 5 minute cooldown)", StatusCode: http.StatusBadRequest}
	ErrNoPendingRequest   = &AppError{Code: "NO_PENDING_REQUEST", Message: "No pending request found", StatusCode: http.StatusNotFound}
	ErrFriendshipNotFound = &AppError{Code: "FRIENDSHIP_NOT_FOUND", Message: "No accepted friendship found", StatusCode: http.StatusNotFound}
)

// Stocklist and review errors.
var (
	ErrStocklistNotFound = &AppError{Code: "STOCKLIST_NOT_FOUND", Message: "Stocklist not found", StatusCode: http.StatusNotFound}
	ErrNotStocklistOwner = &AppError{Code: "NOT_STOCKLIST_OWNER", Message: "You do not own this stocklist", StatusCode: http.StatusForbidden}
	ErrPublicStocklist   = &AppError{Code: "PUBLIC_STOCKLIST", Message: "Cannot share a public stocklist", StatusCode: http.StatusBadRequest}
	ErrDuplicateReview   = &AppError{Code: "DUPLICATE_REVIEW", Message: "You have already reviewed this stocklist", StatusCode: http.StatusBadRequest}
	ErrReviewNotFound    = &AppError{Code: "REVIEW_NOT_FOUND", Message: "Review not found", StatusCode: http.StatusNotFound}
)
