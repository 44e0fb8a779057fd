package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/services"
)

// UserHandler handles user registration and lookup.
type UserHandler struct {
	userService services.UserServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRequest represents the payload for creating a user account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=8"`
}

// RegisterResponse is the created account without credential material.
type RegisterResponse struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

// Register creates a user account
// @Summary     Register a user
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "Account details"
// @Success     201 {object} RegisterResponse
// @Failure     400 {object} ErrorResponse "Invalid username or password"
// @Failure     409 {object} ErrorResponse "Username already taken"
// @Router      /users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.Register(req.Username, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, RegisterResponse{UserID: user.ID, Username: user.Username})
}
