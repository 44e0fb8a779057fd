package models

import "time"

// User represents a registered account holder. Credential verification is
// handled upstream of this service; the hash is stored for the registration
// flow only.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"user_id"`
	Username     string    `gorm:"not null;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`

	// Relationships
	Portfolios []Portfolio `gorm:"foreignKey:UserID" json:"portfolios,omitempty"`
}
