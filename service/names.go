package service

import (
	"context"

	"github.com/labstack/gommon/log"
	"github.com/syncnotes/syncnotes/models"
)

// displayName resolves a user's name through the cache, falling back to the
// store. Failures yield "".
func (s *Service) displayName(ctx context.Context, userId string) string {
	if userId == "" {
		return ""
	}

	if s.Cache != nil {
		name, ok, err := s.Cache.GetDisplayName(ctx, userId)
		if err != nil {
			log.Warnf("names: cache lookup for %s failed: %v", userId, err)
		} else if ok {
			return name
		}
	}

	user, err := s.Store.GetUser(ctx, userId)
	if err != nil {
		log.Debugf("names: could not resolve %s: %v", userId, err)
		return ""
	}

	if s.Cache != nil {
		if err := s.Cache.SetDisplayName(ctx, userId, user.Name); err != nil {
			log.Warnf("names: cache store for %s failed: %v", userId, err)
		}
	}
	return user.Name
}

// nameResolver memoises lookups for the duration of one operation.
type nameResolver struct {
	svc   *Service
	names map[string]string
}

func (s *Service) newNameResolver() *nameResolver {
	return &nameResolver{svc: s, names: make(map[string]string)}
}

func (r *nameResolver) resolve(ctx context.Context, userId string) string {
	if name, ok := r.names[userId]; ok {
		return name
	}
	name := r.svc.displayName(ctx, userId)
	r.names[userId] = name
	return name
}

func (r *nameResolver) notes(ctx context.Context, notes []models.Note) {
	for i := range notes {
		notes[i].LastModifiedByName = r.resolve(ctx, notes[i].LastModifiedBy)
	}
}

func (r *nameResolver) elements(ctx context.Context, elements []models.WhiteboardElement) {
	for i := range elements {
		elements[i].LastModifiedByName = r.resolve(ctx, elements[i].LastModifiedBy)
	}
}
