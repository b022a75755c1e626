package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/syncnotes/syncnotes/models"
	"github.com/syncnotes/syncnotes/service"
	"github.com/syncnotes/syncnotes/store"
)

func TestAddFriend(t *testing.T) {
	svc, mockStore, _, mockBroadcaster := setupService(t)
	ctx := context.Background()

	bob := models.User{Id: "bob", Name: "Bob", Email: "bob@example.com"}
	mockStore.On("GetUserByEmail", ctx, "bob@example.com").Return(bob, nil)
	mockStore.On("GetFriendshipsBetween", ctx, "alice", "bob").Return([]models.Friendship{}, nil)
	mockStore.On("CreateFriendship", ctx, models.Friendship{UserId: "alice", FriendId: "bob"}).Return(nil)

	friend, err := svc.AddFriend(ctx, "alice", " bob@example.com ")
	require.NoError(t, err)
	assert.Equal(t, bob, friend)
	mockStore.AssertExpectations(t)
	mockBroadcaster.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddFriend_Rejections(t *testing.T) {
	svc, mockStore, _, _ := setupService(t)
	ctx := context.Background()

	mockStore.On("GetUserByEmail", ctx, "alice@example.com").Return(models.User{Id: "alice"}, nil)
	mockStore.On("GetUserByEmail", ctx, "ghost@example.com").Return(models.User{}, store.ErrItemNotFound)
	mockStore.On("GetUserByEmail", ctx, "bob@example.com").Return(models.User{Id: "bob"}, nil)
	mockStore.On("GetUserByEmail", ctx, "carol@example.com").Return(models.User{Id: "carol"}, nil)
	mockStore.On("GetFriendshipsBetween", ctx, "alice", "bob").Return([]models.Friendship{}, nil)
	mockStore.On("GetFriendshipsBetween", ctx, "alice", "carol").
		Return([]models.Friendship{{UserId: "carol", FriendId: "alice"}}, nil)
	mockStore.On("CreateFriendship", ctx, models.Friendship{UserId: "alice", FriendId: "bob"}).Return(store.ErrConditionFailed)

	_, err := svc.AddFriend(ctx, "alice", "alice@example.com")
	assertFault(t, err, service.CodeInvalidArgument)

	_, err = svc.AddFriend(ctx, "alice", "ghost@example.com")
	assertFault(t, err, service.CodeNotFound)

	_, err = svc.AddFriend(ctx, "alice", "bob@example.com")
	assertFault(t, err, service.CodeInvalidArgument)

	_, err = svc.AddFriend(ctx, "alice", "carol@example.com")
	assertFault(t, err, service.CodeInvalidArgument)

	_, err = svc.AddFriend(ctx, "alice", "not-an-email")
	assertFault(t, err, service.CodeInvalidArgument)
	mockStore.AssertNumberOfCalls(t, "CreateFriendship", 1)
}

func TestRemoveFriend(t *testing.T) {
	svc, mockStore, _, _ := setupService(t)
	ctx := context.Background()

	mockStore.On("DeleteFriendship", ctx, "alice", "bob").Return(nil)
	require.NoError(t, svc.RemoveFriend(ctx, "alice", "bob"))

	assertFault(t, svc.RemoveFriend(ctx, "alice", ""), service.CodeInvalidArgument)
	mockStore.AssertNumberOfCalls(t, "DeleteFriendship", 1)
}

func TestGetFriends(t *testing.T) {
	svc, mockStore, _, _ := setupService(t)
	ctx := context.Background()

	mockStore.On("GetFriends", ctx, "alice").Return([]models.User{{Id: "bob"}}, nil)
	mockStore.On("GetFriends", ctx, "broken").Return([]models.User(nil), errors.New("timeout"))

	friends, err := svc.GetFriends(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []models.User{{Id: "bob"}}, friends)

	_, err = svc.GetFriends(ctx, "broken")
	assertFault(t, err, service.CodeStoreFailure)
}
