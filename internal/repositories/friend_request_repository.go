package repositories

import (
	"context"
	"errors"
	"log"

	"github.com/jmoiron/sqlx"

	"streamify/internal/models"
	"streamify/internal/rabbitmq"
)

var ErrRequestForbidden = errors.New("not authorized to act on this friend request")

type FriendRequestRepository interface {
	Create(ctx context.Context, senderID, recipientID int64) (*models.FriendRequest, error)
	GetByID(ctx context.Context, id int64) (*models.FriendRequest, error)
	ExistsForPair(ctx context.Context, a, b int64) (bool, error)
	ListByRecipientAndStatus(ctx context.Context, recipientID int64, status string) ([]models.FriendRequestWithUser, error)
	ListBySenderAndStatus(ctx context.Context, senderID int64, status string) ([]models.FriendRequestWithUser, error)
	Accept(ctx context.Context, requestID, recipientID int64) error
}

type friendRequestRepository struct {
	db        *sqlx.DB
	publisher rabbitmq.Publisher
}

func NewFriendRequestRepository(db *sqlx.DB, publisher rabbitmq.Publisher) FriendRequestRepository {
	return &friendRequestRepository{db: db, publisher: publisher}
}

const requestColumns = `id, sender_id, recipient_id, status, created_at`

func (r *friendRequestRepository) Create(ctx context.Context, senderID, recipientID int64) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.QueryRowxContext(ctx, `
INSERT INTO friend_requests (sender_id, recipient_id, status)
VALUES ($1, $2, 'pending')
RETURNING `+requestColumns+`
`, senderID, recipientID).StructScan(&req)
	if err != nil {
		return nil, err
	}

	r.logPublish(ctx, "friend.request.created", map[string]any{
		"request_id":   req.ID,
		"sender_id":    req.SenderID,
		"recipient_id": req.RecipientID,
		"created_at":   req.CreatedAt,
	})

	return &req, nil
}

func (r *friendRequestRepository) GetByID(ctx context.Context, id int64) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.GetContext(ctx, &req, `SELECT `+requestColumns+` FROM friend_requests WHERE id=$1`, id)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ExistsForPair reports whether any request exists between the two users in
// either direction, regardless of status.
func (r *friendRequestRepository) ExistsForPair(ctx context.Context, a, b int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
SELECT EXISTS(
SELECT 1 FROM friend_requests
WHERE (sender_id=$1 AND recipient_id=$2) OR (sender_id=$2 AND recipient_id=$1)
)
`, a, b)
	return exists, err
}

// ListByRecipientAndStatus joins each request with a participant profile.
// Pending rows carry the sender's profile, accepted rows the recipient's own.
func (r *friendRequestRepository) ListByRecipientAndStatus(ctx context.Context, recipientID int64, status string) ([]models.FriendRequestWithUser, error) {
	joinSide := "fr.sender_id"
	if status == models.RequestStatusAccepted {
		joinSide = "fr.recipient_id"
	}

	reqs := []models.FriendRequestWithUser{}
	err := r.db.SelectContext(ctx, &reqs, `
SELECT fr.id, fr.sender_id, fr.recipient_id, fr.status, fr.created_at,
	u.id AS "user.id",
	u.full_name AS "user.full_name",
	u.profile_picture AS "user.profile_picture",
	u.native_language AS "user.native_language",
	u.learning_language AS "user.learning_language"
FROM friend_requests fr
JOIN users u ON u.id = `+joinSide+`
WHERE fr.recipient_id=$1 AND fr.status=$2
ORDER BY fr.created_at DESC
`, recipientID, status)
	return reqs, err
}

func (r *friendRequestRepository) ListBySenderAndStatus(ctx context.Context, senderID int64, status string) ([]models.FriendRequestWithUser, error) {
	reqs := []models.FriendRequestWithUser{}
	err := r.db.SelectContext(ctx, &reqs, `
SELECT fr.id, fr.sender_id, fr.recipient_id, fr.status, fr.created_at,
	u.id AS "user.id",
	u.full_name AS "user.full_name",
	u.profile_picture AS "user.profile_picture",
	u.native_language AS "user.native_language",
	u.learning_language AS "user.learning_language"
FROM friend_requests fr
JOIN users u ON u.id = fr.recipient_id
WHERE fr.sender_id=$1 AND fr.status=$2
ORDER BY fr.created_at DESC
`, senderID, status)
	return reqs, err
}

// Accept transitions a pending request to accepted and inserts both
// friendship edges in a single transaction, so a crash never leaves the
// status and the edges disagreeing.
func (r *friendRequestRepository) Accept(ctx context.Context, requestID, recipientID int64) error {
	var eventPayload map[string]any
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		var req models.FriendRequest
		if err := tx.GetContext(ctx, &req, `SELECT `+requestColumns+` FROM friend_requests WHERE id=$1`, requestID); err != nil {
			return err
		}
		if req.RecipientID != recipientID {
			return ErrRequestForbidden
		}
		if req.Status != models.RequestStatusPending {
			return nil
		}

		if _, err := tx.ExecContext(ctx, `UPDATE friend_requests SET status='accepted' WHERE id=$1`, requestID); err != nil {
			return err
		}

		if err := insertFriendEdge(ctx, tx, req.SenderID, req.RecipientID); err != nil {
			return err
		}
		if err := insertFriendEdge(ctx, tx, req.RecipientID, req.SenderID); err != nil {
			return err
		}

		eventPayload = map[string]any{
			"request_id":   req.ID,
			"sender_id":    req.SenderID,
			"recipient_id": req.RecipientID,
		}
		return nil
	})
	if err != nil {
		return err
	}

	if eventPayload != nil {
		r.logPublish(ctx, "friendship.created", eventPayload)
	}

	return nil
}

func insertFriendEdge(ctx context.Context, tx *sqlx.Tx, userID, friendID int64) error {
	_, err := tx.ExecContext(ctx, `
INSERT INTO friendships (user_id, friend_id) VALUES ($1, $2)
ON CONFLICT (user_id, friend_id) DO NOTHING
`, userID, friendID)
	return err
}

func (r *friendRequestRepository) withTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (r *friendRequestRepository) logPublish(ctx context.Context, eventType string, payload any) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.Publish(ctx, eventType, payload); err != nil {
		log.Printf("warning: failed to publish %s: %v", eventType, err)
	}
}
