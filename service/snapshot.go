package service

import (
	"context"

	"github.com/syncnotes/syncnotes/models"
)

// Snapshot collects everything the user may see: notes, whiteboard elements
// and whiteboard names, decorated with modifier names.
func (s *Service) Snapshot(ctx context.Context, userId string) (models.Snapshot, error) {
	if err := requireCaller(userId); err != nil {
		return models.Snapshot{}, err
	}

	notes, err := s.Store.GetNotesForUser(ctx, userId)
	if err != nil {
		return models.Snapshot{}, storeFailure("Snapshot", err)
	}
	elements, err := s.Store.GetElementsForUser(ctx, userId)
	if err != nil {
		return models.Snapshot{}, storeFailure("Snapshot", err)
	}
	boards, err := s.Store.GetWhiteboardsForUser(ctx, userId)
	if err != nil {
		return models.Snapshot{}, storeFailure("Snapshot", err)
	}

	names := s.newNameResolver()
	names.notes(ctx, notes)
	names.elements(ctx, elements)

	if notes == nil {
		notes = []models.Note{}
	}
	if elements == nil {
		elements = []models.WhiteboardElement{}
	}
	return models.Snapshot{
		Notes:           notes,
		Elements:        elements,
		WhiteboardNames: whiteboardNames(boards),
	}, nil
}
