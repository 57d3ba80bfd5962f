package models

import (
	"time"
)

// FriendRequest statuses
const (
	FriendRequestPending  = "pending"
	FriendRequestAccepted = "accepted"
	FriendRequestRejected = "rejected"
)

// FriendRequest connects two users. An accepted request is a friendship;
// requests are unique per (sender, receiver) pair.
type FriendRequest struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SenderID   uint      `json:"sender_id" gorm:"uniqueIndex:idx_friend_sender_receiver;not null"`
	ReceiverID uint      `json:"receiver_id" gorm:"uniqueIndex:idx_friend_sender_receiver;not null"`
	Status     string    `json:"status" gorm:"default:'pending'"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Sender     User      `json:"-" gorm:"foreignKey:SenderID"`
	Receiver   User      `json:"-" gorm:"foreignKey:ReceiverID"`
}
