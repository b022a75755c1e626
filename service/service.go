package service

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid/v5"
	"github.com/syncnotes/syncnotes/cache"
	"github.com/syncnotes/syncnotes/hub"
	"github.com/syncnotes/syncnotes/store"
)

// Service applies client operations against the store and fans the results
// out to the affected audience. Faults are returned, never broadcast.
type Service struct {
	Store       store.NoteStore
	Cache       cache.NameCache
	Broadcaster hub.Broadcaster
	Policy      ConflictPolicy

	// LegacyElementDeleteBroadcast sends WhiteboardElementDeleted to every
	// connected client instead of the whiteboard audience.
	LegacyElementDeleteBroadcast bool

	validate *validator.Validate
	now      func() time.Time
}

func NewService(
	noteStore store.NoteStore,
	nameCache cache.NameCache,
	broadcaster hub.Broadcaster,
	legacyElementDeleteBroadcast bool,
) (*Service, error) {
	validate, err := newValidator()
	if err != nil {
		return nil, err
	}

	return &Service{
		Store:                        noteStore,
		Cache:                        nameCache,
		Broadcaster:                  broadcaster,
		Policy:                       LastWriteWins{},
		LegacyElementDeleteBroadcast: legacyElementDeleteBroadcast,
		validate:                     validate,
		now:                          func() time.Time { return time.Now().UTC() },
	}, nil
}

func newId() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
