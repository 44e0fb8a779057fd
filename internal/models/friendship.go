package models

import "time"

// FriendshipStatus tracks the state of a friend request.
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipRejected FriendshipStatus = "rejected"
)

// Friendship is one directed friend-request edge. At most one row exists per
// (sender, receiver) pair; the reverse direction is a separate row. Rejected
// rows gate re-requests through a cooldown window on LastTimestamp.
type Friendship struct {
	SenderID      uint             `gorm:"primaryKey;autoIncrement:false" json:"sender_id"`
	ReceiverID    uint             `gorm:"primaryKey;autoIncrement:false" json:"receiver_id"`
	Status        FriendshipStatus `gorm:"not null;size:16" json:"status"`
	LastTimestamp time.Time        `gorm:"not null" json:"last_timestamp"`
}
