package db_models

import "github.com/google/uuid"

const (
	FriendStatusPending  = "pending"
	FriendStatusAccepted = "accepted"
	FriendStatusRejected = "rejected"
)

// Friendship is a directed request edge. Once accepted either party is
// "the friend" of the other; the unordered pair is unique, enforced by
// the same-direction unique index plus a both-direction lookup on insert.
type Friendship struct {
	BaseModel
	RequesterID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_friend_pair"`
	RecipientID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_friend_pair"`
	Status      string    `gorm:"default:pending"`

	Requester User `gorm:"foreignKey:RequesterID"`
	Recipient User `gorm:"foreignKey:RecipientID"`
}
