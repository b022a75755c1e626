package service

import (
	"context"
	"errors"
	"strings"

	"github.com/syncnotes/syncnotes/models"
	"github.com/syncnotes/syncnotes/store"
)

// GetFriends lists users linked to the caller in either direction.
func (s *Service) GetFriends(ctx context.Context, callerId string) ([]models.User, error) {
	if err := requireCaller(callerId); err != nil {
		return nil, err
	}

	friends, err := s.Store.GetFriends(ctx, callerId)
	if err != nil {
		return nil, storeFailure("GetFriends", err)
	}
	return friends, nil
}

// AddFriend links the caller to the user registered under email.
func (s *Service) AddFriend(ctx context.Context, callerId string, email string) (models.User, error) {
	if err := requireCaller(callerId); err != nil {
		return models.User{}, err
	}
	email = strings.TrimSpace(email)
	if err := s.validateEmail(email); err != nil {
		return models.User{}, err
	}

	friend, err := s.Store.GetUserByEmail(ctx, email)
	if err != nil {
		return models.User{}, fromStore("AddFriend", "user "+email, err)
	}
	if friend.Id == callerId {
		return models.User{}, invalidArgument("cannot add yourself as a friend")
	}

	existing, err := s.Store.GetFriendshipsBetween(ctx, callerId, friend.Id)
	if err != nil {
		return models.User{}, storeFailure("AddFriend", err)
	}
	if len(existing) > 0 {
		return models.User{}, invalidArgument("already friends with %s", email)
	}

	err = s.Store.CreateFriendship(ctx, models.Friendship{UserId: callerId, FriendId: friend.Id})
	if errors.Is(err, store.ErrConditionFailed) {
		return models.User{}, invalidArgument("already friends with %s", email)
	}
	if err != nil {
		return models.User{}, storeFailure("AddFriend", err)
	}
	return friend, nil
}

// RemoveFriend unlinks both directions. Removing a non-friend succeeds.
func (s *Service) RemoveFriend(ctx context.Context, callerId string, friendId string) error {
	if err := requireCaller(callerId); err != nil {
		return err
	}
	if friendId == "" {
		return invalidArgument("friend id is required")
	}

	if err := s.Store.DeleteFriendship(ctx, callerId, friendId); err != nil {
		return storeFailure("RemoveFriend", err)
	}
	return nil
}
