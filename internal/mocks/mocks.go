package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"streamify/internal/chat"
	"streamify/internal/models"
	"streamify/internal/rabbitmq"
	"streamify/internal/repositories"
)

// MockUserRepository mocks user directory access for services and handlers.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, email, passwordHash, fullName, profilePicture string) (*models.User, error) {
	args := m.Called(ctx, email, passwordHash, fullName, profilePicture)
	var user *models.User
	if val := args.Get(0); val != nil {
		user = val.(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	var user *models.User
	if val := args.Get(0); val != nil {
		user = val.(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	var user *models.User
	if val := args.Get(0); val != nil {
		user = val.(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) ListRecommended(ctx context.Context, userID int64) ([]models.User, error) {
	args := m.Called(ctx, userID)
	var users []models.User
	if val := args.Get(0); val != nil {
		users = val.([]models.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) CompleteOnboarding(ctx context.Context, id int64, profile models.OnboardingProfile) (*models.User, error) {
	args := m.Called(ctx, id, profile)
	var user *models.User
	if val := args.Get(0); val != nil {
		user = val.(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) ListFriends(ctx context.Context, userID int64) ([]models.FriendProfile, error) {
	args := m.Called(ctx, userID)
	var friends []models.FriendProfile
	if val := args.Get(0); val != nil {
		friends = val.([]models.FriendProfile)
	}
	return friends, args.Error(1)
}

func (m *MockUserRepository) AreFriends(ctx context.Context, userID, otherID int64) (bool, error) {
	args := m.Called(ctx, userID, otherID)
	return args.Bool(0), args.Error(1)
}

var _ repositories.UserRepository = (*MockUserRepository)(nil)

// MockFriendRequestRepository mocks the friend-request ledger.
type MockFriendRequestRepository struct {
	mock.Mock
}

func (m *MockFriendRequestRepository) Create(ctx context.Context, senderID, recipientID int64) (*models.FriendRequest, error) {
	args := m.Called(ctx, senderID, recipientID)
	var req *models.FriendRequest
	if val := args.Get(0); val != nil {
		req = val.(*models.FriendRequest)
	}
	return req, args.Error(1)
}

func (m *MockFriendRequestRepository) GetByID(ctx context.Context, id int64) (*models.FriendRequest, error) {
	args := m.Called(ctx, id)
	var req *models.FriendRequest
	if val := args.Get(0); val != nil {
		req = val.(*models.FriendRequest)
	}
	return req, args.Error(1)
}

func (m *MockFriendRequestRepository) ExistsForPair(ctx context.Context, a, b int64) (bool, error) {
	args := m.Called(ctx, a, b)
	return args.Bool(0), args.Error(1)
}

func (m *MockFriendRequestRepository) ListByRecipientAndStatus(ctx context.Context, recipientID int64, status string) ([]models.FriendRequestWithUser, error) {
	args := m.Called(ctx, recipientID, status)
	var reqs []models.FriendRequestWithUser
	if val := args.Get(0); val != nil {
		reqs = val.([]models.FriendRequestWithUser)
	}
	return reqs, args.Error(1)
}

func (m *MockFriendRequestRepository) ListBySenderAndStatus(ctx context.Context, senderID int64, status string) ([]models.FriendRequestWithUser, error) {
	args := m.Called(ctx, senderID, status)
	var reqs []models.FriendRequestWithUser
	if val := args.Get(0); val != nil {
		reqs = val.([]models.FriendRequestWithUser)
	}
	return reqs, args.Error(1)
}

func (m *MockFriendRequestRepository) Accept(ctx context.Context, requestID, recipientID int64) error {
	args := m.Called(ctx, requestID, recipientID)
	return args.Error(0)
}

var _ repositories.FriendRequestRepository = (*MockFriendRequestRepository)(nil)

// MockPublisher mocks RabbitMQ publisher behavior for telemetry.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, event any) error {
	args := m.Called(ctx, routingKey, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

var _ rabbitmq.Publisher = (*MockPublisher)(nil)

// MockChatClient mocks the chat-provider client.
type MockChatClient struct {
	mock.Mock
}

func (m *MockChatClient) Token(userID int64) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *MockChatClient) UpsertUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

var _ chat.Client = (*MockChatClient)(nil)
