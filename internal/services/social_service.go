package services

import (
	"context"
	"errors"
	"log"

	"streamify/internal/cache"
	"streamify/internal/models"
	"streamify/internal/repositories"
)

var (
	ErrSelfRequest    = errors.New("cannot send a friend request to yourself")
	ErrAlreadyFriends = errors.New("users are already friends")
	ErrRequestExists  = errors.New("friend request already exists")
)

// SocialService orchestrates the user directory and the friend-request
// ledger. It holds no state of its own; every invariant that spans the two
// stores is enforced here.
type SocialService struct {
	users    repositories.UserRepository
	requests repositories.FriendRequestRepository
	recs     *cache.RecommendationCache
}

func NewSocialService(users repositories.UserRepository, requests repositories.FriendRequestRepository, recs *cache.RecommendationCache) *SocialService {
	return &SocialService{users: users, requests: requests, recs: recs}
}

// GetRecommendedUsers returns onboarded users that are neither the caller
// nor already friends with the caller. Served from cache when fresh.
func (s *SocialService) GetRecommendedUsers(ctx context.Context, userID int64) ([]models.User, error) {
	if users, ok := s.recs.Get(ctx, userID); ok {
		return users, nil
	}

	users, err := s.users.ListRecommended(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.recs.Set(ctx, userID, users); err != nil {
		log.Printf("warning: failed to cache recommendations for user %d: %v", userID, err)
	}
	return users, nil
}

func (s *SocialService) GetMyFriends(ctx context.Context, userID int64) ([]models.FriendProfile, error) {
	return s.users.ListFriends(ctx, userID)
}

// SendFriendRequest validates the invariants that neither store enforces
// alone, in order: no self-requests, recipient must exist, pair must not be
// friends already, and at most one request per unordered pair.
func (s *SocialService) SendFriendRequest(ctx context.Context, senderID, recipientID int64) (*models.FriendRequest, error) {
	if senderID == recipientID {
		return nil, ErrSelfRequest
	}

	recipient, err := s.users.GetByID(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	friends, err := s.users.AreFriends(ctx, recipient.ID, senderID)
	if err != nil {
		return nil, err
	}
	if friends {
		return nil, ErrAlreadyFriends
	}

	exists, err := s.requests.ExistsForPair(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrRequestExists
	}

	return s.requests.Create(ctx, senderID, recipientID)
}

// AcceptFriendRequest transitions the request to accepted and establishes
// the symmetric friend edge. Safe to re-drive: the status update and both
// edge insertions are idempotent.
func (s *SocialService) AcceptFriendRequest(ctx context.Context, recipientID, requestID int64) error {
	if err := s.requests.Accept(ctx, requestID, recipientID); err != nil {
		return err
	}

	// Cache upkeep is best-effort; the accept itself has already committed.
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		log.Printf("warning: failed to reload accepted request %d: %v", requestID, err)
		return nil
	}
	if err := s.recs.Invalidate(ctx, req.SenderID, req.RecipientID); err != nil {
		log.Printf("warning: failed to invalidate recommendations cache: %v", err)
	}
	return nil
}

// FriendRequests pairs the pending requests addressed to the user with the
// accepted ones. Pending entries carry the sender's profile, accepted ones
// the recipient's.
type FriendRequests struct {
	IncomingRequests []models.FriendRequestWithUser `json:"incomingRequests"`
	AcceptedRequests []models.FriendRequestWithUser `json:"acceptedRequests"`
}

func (s *SocialService) GetFriendRequests(ctx context.Context, userID int64) (*FriendRequests, error) {
	incoming, err := s.requests.ListByRecipientAndStatus(ctx, userID, models.RequestStatusPending)
	if err != nil {
		return nil, err
	}

	accepted, err := s.requests.ListByRecipientAndStatus(ctx, userID, models.RequestStatusAccepted)
	if err != nil {
		return nil, err
	}

	return &FriendRequests{IncomingRequests: incoming, AcceptedRequests: accepted}, nil
}

func (s *SocialService) GetOutgoingFriendRequests(ctx context.Context, userID int64) ([]models.FriendRequestWithUser, error) {
	return s.requests.ListBySenderAndStatus(ctx, userID, models.RequestStatusPending)
}
