package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/services"
)

// FriendshipHandler handles friend requests and the friends listing.
type FriendshipHandler struct {
	friendshipService services.FriendshipServicer
}

// NewFriendshipHandler creates a new FriendshipHandler.
func NewFriendshipHandler(friendshipService services.FriendshipServicer) *FriendshipHandler {
	return &FriendshipHandler{friendshipService: friendshipService}
}

// FriendRequestPayload identifies the two sides of a friend request.
type FriendRequestPayload struct {
	SenderID   uint `json:"sender_id" binding:"required"`
	ReceiverID uint `json:"receiver_id" binding:"required"`
}

// DeleteFriendPayload identifies an existing friendship to dissolve.
type DeleteFriendPayload struct {
	UserID   uint `json:"user_id" binding:"required"`
	FriendID uint `json:"friend_id" binding:"required"`
}

// SendRequest sends a friend request
// @Summary     Send friend request
// @Tags        friends
// @Accept      json
// @Produce     json
// @Param       request body FriendRequestPayload true "Sender and receiver"
// @Success     200 {object} StatusResponse
// @Failure     400 {object} ErrorResponse "Self request, already friends, pending, or cooldown active"
// @Router      /send-friend-request [post]
func (h *FriendshipHandler) SendRequest(c *gin.Context) {
	var req FriendRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.friendshipService.SendRequest(req.SenderID, req.ReceiverID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Status: "success", Message: "Friend request sent"})
}

// AcceptRequest accepts a pending friend request
// @Summary     Accept friend request
// @Tags        friends
// @Accept      json
// @Produce     json
// @Param       request body FriendRequestPayload true "Sender and receiver of the pending request"
// @Success     200 {object} StatusResponse
// @Failure     404 {object} ErrorResponse "No pending request"
// @Router      /accept-friend-request [post]
func (h *FriendshipHandler) AcceptRequest(c *gin.Context) {
	var req FriendRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.friendshipService.AcceptRequest(req.SenderID, req.ReceiverID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Status: "success", Message: "Friend request accepted"})
}

// RejectRequest rejects a pending friend request
// @Summary     Reject friend request
// @Tags        friends
// @Accept      json
// @Produce     json
// @Param       request body FriendRequestPayload true "Sender and receiver of the pending request"
// @Success     200 {object} StatusResponse
// @Failure     404 {object} ErrorResponse "No pending request"
// @Router      /reject-friend-request [post]
func (h *FriendshipHandler) RejectRequest(c *gin.Context) {
	var req FriendRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.friendshipService.RejectRequest(req.SenderID, req.ReceiverID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Status: "success", Message: "Friend request rejected"})
}

// DeleteFriend removes an existing friendship
// @Summary     Delete friend
// @Tags        friends
// @Accept      json
// @Produce     json
// @Param       request body DeleteFriendPayload true "The friendship to dissolve"
// @Success     200 {object} StatusResponse
// @Failure     404 {object} ErrorResponse "Friendship not found"
// @Router      /delete-friend [post]
func (h *FriendshipHandler) DeleteFriend(c *gin.Context) {
	var req DeleteFriendPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.friendshipService.DeleteFriend(req.UserID, req.FriendID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Status: "success", Message: "Friend deleted"})
}

// Friends lists a user's accepted friends
// @Summary     List friends
// @Tags        friends
// @Produce     json
// @Param       user_id query int true "User ID"
// @Success     200 {array} services.FriendView
// @Router      /friends [get]
func (h *FriendshipHandler) Friends(c *gin.Context) {
	userID, err := parseUserIDQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	friends, err := h.friendshipService.Friends(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, friends)
}

// IncomingRequests lists pending requests sent to a user
// @Summary     List incoming friend requests
// @Tags        friends
// @Produce     json
// @Param       user_id query int true "User ID"
// @Success     200 {array} services.FriendRequestView
// @Router      /friend-requests [get]
func (h *FriendshipHandler) IncomingRequests(c *gin.Context) {
	userID, err := parseUserIDQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	requests, err := h.friendshipService.IncomingRequests(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

// OutgoingRequests lists pending requests a user has sent
// @Summary     List outgoing friend requests
// @Tags        friends
// @Produce     json
// @Param       user_id query int true "User ID"
// @Success     200 {array} services.FriendRequestView
// @Router      /friend-outgoings [get]
func (h *FriendshipHandler) OutgoingRequests(c *gin.Context) {
	userID, err := parseUserIDQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	requests, err := h.friendshipService.OutgoingRequests(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}
