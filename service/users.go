package service

import (
	"context"

	"github.com/labstack/gommon/log"
	"github.com/syncnotes/syncnotes/models"
)

// UpdateUser changes the caller's own display name and color. Nothing is
// broadcast; other users see the new name on their next load.
func (s *Service) UpdateUser(ctx context.Context, callerId string, user models.User) (models.User, error) {
	if err := requireCaller(callerId); err != nil {
		return models.User{}, err
	}
	if user.Id != "" && user.Id != callerId {
		return models.User{}, accessDenied("cannot update another user")
	}
	if err := s.validateUser(user); err != nil {
		return models.User{}, err
	}

	existing, err := s.Store.GetUser(ctx, callerId)
	if err != nil {
		return models.User{}, fromStore("UpdateUser", "user", err)
	}
	existing.Name = user.Name
	existing.Color = user.Color

	if err := s.Store.UpdateUser(ctx, existing); err != nil {
		return models.User{}, fromStore("UpdateUser", "user", err)
	}

	if s.Cache != nil {
		if err := s.Cache.InvalidateDisplayName(ctx, callerId); err != nil {
			log.Warnf("UpdateUser: failed to invalidate cached name for %s: %v", callerId, err)
		}
	}
	return existing, nil
}

func (s *Service) GetProfile(ctx context.Context, callerId string) (models.User, error) {
	if err := requireCaller(callerId); err != nil {
		return models.User{}, err
	}

	user, err := s.Store.GetUser(ctx, callerId)
	if err != nil {
		return models.User{}, fromStore("GetProfile", "user", err)
	}
	return user, nil
}
