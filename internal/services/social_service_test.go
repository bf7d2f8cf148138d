package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"streamify/internal/mocks"
	"streamify/internal/models"
	"streamify/internal/repositories"
)

func newSocialService(users *mocks.MockUserRepository, requests *mocks.MockFriendRequestRepository) *SocialService {
	return NewSocialService(users, requests, nil)
}

func TestSendFriendRequestToSelf(t *testing.T) {
	users := new(mocks.MockUserRepository)
	requests := new(mocks.MockFriendRequestRepository)
	svc := newSocialService(users, requests)

	_, err := svc.SendFriendRequest(context.Background(), 1, 1)

	require.ErrorIs(t, err, ErrSelfRequest)
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	requests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendFriendRequestRecipientMissing(t *testing.T) {
	users := new(mocks.MockUserRepository)
	requests := new(mocks.MockFriendRequestRepository)
	svc := newSocialService(users, requests)

	users.On("GetByID", mock.Anything, int64(2)).Return(nil, sql.ErrNoRows).Once()

	_, err := svc.SendFriendRequest(context.Background(), 1, 2)

	require.ErrorIs(t, err, sql.ErrNoRows)
	requests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	users.AssertExpectations(t)
}

func TestSendFriendRequestAlreadyFriends(t *testing.T) {
	users := new(mocks.MockUserRepository)
	requests := new(mocks.MockFriendRequestRepository)
	svc := newSocialService(users, requests)

	users.On("GetByID", mock.Anything, int64(2)).Return(&models.User{ID: 2}, nil).Once()
	users.On("AreFriends", mock.Anything, int64(2), int64(1)).Return(true, nil).Once()

	_, err := svc.SendFriendRequest(context.Background(), 1, 2)

	require.ErrorIs(t, err, ErrAlreadyFriends)
	requests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	users.AssertExpectations(t)
}

func TestSendFriendRequestDuplicatePair(t *testing.T) {
	users := new(mocks.MockUserRepository)
	requests := new(mocks.MockFriendRequestRepository)
	svc := newSocialService(users, requests)

	users.On("GetByID", mock.Anything, int64(2)).Return(&models.User{ID: 2}, nil).Once()
	users.On("AreFriends", mock.Anything, int64(2), int64(1)).Return(false, nil).Once()
	requests.On("ExistsForPair", mock.Anything, int64(1), int64(2)).Return(true, nil).Once()

	_, err := svc.SendFriendRequest(context.Background(), 1, 2)

	require.ErrorIs(t, err, ErrRequestExists)
	requests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	requests.AssertExpectations(t)
}

func TestSendFriendRequestSuccess(t *testing.T) {
	users := new(mocks.MockUserRepository)
	requests := new(mocks.MockFriendRequestRepository)
	svc := newSocialService(users, requests)

	created := &models.FriendRequest{ID: 9, SenderID: 1, RecipientID: 2, Status: models.RequestStatusPending}
	users.On("GetByID", mock.Anything, int64(2)).Return(&models.User{ID: 2}, nil).Once()
	users.On("AreFriends", mock.Anything, int64(2), int64(1)).Return(false, nil).Once()
	requests.On("ExistsForPair", mock.Anything, int64(1), int64(2)).Return(false, nil).Once()
	requests.On("Create", mock.Anything, int64(1), int64(2)).Return(created, nil).Once()

	req, err := svc.SendFriendRequest(context.Background(), 1, 2)

	require.NoError(t, err)
	require.Equal(t, created, req)
	require.Equal(t, models.RequestStatusPending, req.Status)
	users.AssertExpectations(t)
	requests.AssertExpectations(t)
}

func TestAcceptFriendRequestForbiddenPassesThrough(t *testing.T) {
	users := new(mocks.MockUserRepository)
	requests := new(mocks.MockFriendRequestRepository)
	svc := newSocialService(users, requests)

	requests.On("Accept", mock.Anything, int64(9), int64(3)).Return(repositories.ErrRequestForbidden).Once()

	err := svc.AcceptFriendRequest(context.Background(), 3, 9)

	require.ErrorIs(t, err, repositories.ErrRequestForbidden)
	requests.AssertExpectations(t)
}

func TestAcceptFriendRequestSuccess(t *testing.T) {
	users := new(mocks.MockUserRepository)
	requests := new(mocks.MockFriendRequestRepository)
	svc := newSocialService(users, requests)

	requests.On("Accept", mock.Anything, int64(9), int64(2)).Return(nil).Once()
	requests.On("GetByID", mock.Anything, int64(9)).Return(&models.FriendRequest{ID: 9, SenderID: 1, RecipientID: 2, Status: models.RequestStatusAccepted}, nil).Once()

	err := svc.AcceptFriendRequest(context.Background(), 2, 9)

	require.NoError(t, err)
	requests.AssertExpectations(t)
}

func TestGetRecommendedUsersFallsThroughToStore(t *testing.T) {
	users := new(mocks.MockUserRepository)
	requests := new(mocks.MockFriendRequestRepository)
	svc := newSocialService(users, requests)

	recommended := []models.User{{ID: 2, IsOnboarded: true}, {ID: 3, IsOnboarded: true}}
	users.On("ListRecommended", mock.Anything, int64(1)).Return(recommended, nil).Once()

	got, err := svc.GetRecommendedUsers(context.Background(), 1)

	require.NoError(t, err)
	require.Equal(t, recommended, got)
	users.AssertExpectations(t)
}

func TestGetFriendRequestsSplitsByStatus(t *testing.T) {
	users := new(mocks.MockUserRepository)
	requests := new(mocks.MockFriendRequestRepository)
	svc := newSocialService(users, requests)

	incoming := []models.FriendRequestWithUser{{FriendRequest: models.FriendRequest{ID: 1, SenderID: 3, RecipientID: 1, Status: models.RequestStatusPending}}}
	accepted := []models.FriendRequestWithUser{{FriendRequest: models.FriendRequest{ID: 2, SenderID: 4, RecipientID: 1, Status: models.RequestStatusAccepted}}}
	requests.On("ListByRecipientAndStatus", mock.Anything, int64(1), models.RequestStatusPending).Return(incoming, nil).Once()
	requests.On("ListByRecipientAndStatus", mock.Anything, int64(1), models.RequestStatusAccepted).Return(accepted, nil).Once()

	got, err := svc.GetFriendRequests(context.Background(), 1)

	require.NoError(t, err)
	require.Equal(t, incoming, got.IncomingRequests)
	require.Equal(t, accepted, got.AcceptedRequests)
	requests.AssertExpectations(t)
}

func TestGetOutgoingFriendRequests(t *testing.T) {
	users := new(mocks.MockUserRepository)
	requests := new(mocks.MockFriendRequestRepository)
	svc := newSocialService(users, requests)

	outgoing := []models.FriendRequestWithUser{{FriendRequest: models.FriendRequest{ID: 5, SenderID: 1, RecipientID: 6, Status: models.RequestStatusPending}}}
	requests.On("ListBySenderAndStatus", mock.Anything, int64(1), models.RequestStatusPending).Return(outgoing, nil).Once()

	got, err := svc.GetOutgoingFriendRequests(context.Background(), 1)

	require.NoError(t, err)
	require.Equal(t, outgoing, got)
	requests.AssertExpectations(t)
}
