package models

import "time"

const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
)

type FriendRequest struct {
	ID          int64     `db:"id" json:"id"`
	SenderID    int64     `db:"sender_id" json:"senderId"`
	RecipientID int64     `db:"recipient_id" json:"recipientId"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// FriendRequestWithUser is a request row joined with the profile of one
// participant. Which side is joined depends on the query: pending incoming
// requests carry the sender, accepted and outgoing ones the recipient.
type FriendRequestWithUser struct {
	FriendRequest
	User FriendProfile `db:"user" json:"user"`
}

type Friendship struct {
	ID       int64 `db:"id" json:"id"`
	UserID   int64 `db:"user_id" json:"user_id"`
	FriendID int64 `db:"friend_id" json:"friend_id"`
}
