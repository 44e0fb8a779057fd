package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/models"
)

// rejectionCooldown is how long a sender must wait to re-request after
// their request was rejected.
const rejectionCooldown = 5 * time.Minute

// friendshipService maintains the directed friend-request graph.
type friendshipService struct {
	db *gorm.DB
}

// NewFriendshipService creates a new FriendshipServicer.
func NewFriendshipService(db *gorm.DB) FriendshipServicer {
	return &friendshipService{db: db}
}

// SendRequest creates or revives a pending friend request from sender to
// receiver. A rejected sender is held to the cooldown window before they
// may ask again.
func (s *friendshipService) SendRequest(senderID, receiverID uint) error {
	if senderID == receiverID {
		return apperrors.ErrSelfFriendRequest
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Friendship
		err := tx.Where(
			"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			senderID, receiverID, receiverID, senderID,
		).Take(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err == nil {
			switch existing.Status {
			case models.FriendshipPending:
				return apperrors.ErrFriendshipPending
			case models.FriendshipAccepted:
				return apperrors.ErrAlreadyFriends
			case models.FriendshipRejected:
				if existing.SenderID == senderID &&
					time.Since(existing.LastTimestamp) < rejectionCooldown {
					return apperrors.ErrRejectionCooldown
				}
			}
		}

		// Drop any reverse-direction row so only one edge exists per pair.
		if txErr := tx.Where("sender_id = ? AND receiver_id = ?", receiverID, senderID).
			Delete(&models.Friendship{}).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		request := models.Friendship{
			SenderID:      senderID,
			ReceiverID:    receiverID,
			Status:        models.FriendshipPending,
			LastTimestamp: time.Now(),
		}
		if txErr := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "sender_id"}, {Name: "receiver_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"status":         models.FriendshipPending,
				"last_timestamp": request.LastTimestamp,
			}),
		}).Create(&request).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
}

// AcceptRequest marks a pending request from sender to receiver as accepted.
func (s *friendshipService) AcceptRequest(senderID, receiverID uint) error {
	return s.resolvePending(senderID, receiverID, models.FriendshipAccepted)
}

// RejectRequest marks a pending request from sender to receiver as rejected,
// starting the sender's cooldown.
func (s *friendshipService) RejectRequest(senderID, receiverID uint) error {
	return s.resolvePending(senderID, receiverID, models.FriendshipRejected)
}

func (s *friendshipService) resolvePending(senderID, receiverID uint, status models.FriendshipStatus) error {
	result := s.db.Model(&models.Friendship{}).
		Where("sender_id = ? AND receiver_id = ? AND status = ?", senderID, receiverID, models.FriendshipPending).
		Updates(map[string]interface{}{
			"status":         status,
			"last_timestamp": time.Now(),
		})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNoPendingRequest
	}
	return nil
}

// DeleteFriend removes an accepted friendship and leaves a rejected edge
// from the deleted friend toward the deleter, which gates immediate re-adds
// through the cooldown.
func (s *friendshipService) DeleteFriend(userID, friendID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Friendship
		err := tx.Where(
			"((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND status = ?",
			userID, friendID, friendID, userID, models.FriendshipAccepted,
		).Take(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrFriendshipNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if txErr := tx.Where(
			"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, friendID, friendID, userID,
		).Delete(&models.Friendship{}).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		tombstone := models.Friendship{
			SenderID:      friendID,
			ReceiverID:    userID,
			Status:        models.FriendshipRejected,
			LastTimestamp: time.Now(),
		}
		if txErr := tx.Create(&tombstone).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
}

// Friends lists all accepted friends of a user.
func (s *friendshipService) Friends(userID uint) ([]FriendView, error) {
	var friendships []models.Friendship
	if err := s.db.Where(
		"status = ? AND (sender_id = ? OR receiver_id = ?)",
		models.FriendshipAccepted, userID, userID,
	).Find(&friendships).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	ids := make([]uint, 0, len(friendships))
	for i := range friendships {
		other := friendships[i].SenderID
		if other == userID {
			other = friendships[i].ReceiverID
		}
		ids = append(ids, other)
	}
	return s.usersByID(ids)
}

// IncomingRequests lists pending requests sent to the user.
func (s *friendshipService) IncomingRequests(userID uint) ([]FriendRequestView, error) {
	return s.pendingRequests("friendships.receiver_id = ?", "friendships.sender_id", userID)
}

// OutgoingRequests lists pending requests the user has sent.
func (s *friendshipService) OutgoingRequests(userID uint) ([]FriendRequestView, error) {
	return s.pendingRequests("friendships.sender_id = ?", "friendships.receiver_id", userID)
}

func (s *friendshipService) pendingRequests(filter, otherColumn string, userID uint) ([]FriendRequestView, error) {
	var views []FriendRequestView
	if err := s.db.Model(&models.Friendship{}).
		Select("users.id AS user_id, users.username, friendships.last_timestamp AS timestamp").
		Joins("JOIN users ON users.id = "+otherColumn).
		Where(filter, userID).
		Where("friendships.status = ?", models.FriendshipPending).
		Scan(&views).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if views == nil {
		views = []FriendRequestView{}
	}
	return views, nil
}

func (s *friendshipService) usersByID(ids []uint) ([]FriendView, error) {
	if len(ids) == 0 {
		return []FriendView{}, nil
	}

	var views []FriendView
	if err := s.db.Model(&models.User{}).
		Select("id AS user_id, username").
		Where("id IN ?", ids).
		Scan(&views).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return views, nil
}
