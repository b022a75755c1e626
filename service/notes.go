package service

import (
	"context"
	"errors"
	"slices"

	"github.com/syncnotes/syncnotes/access"
	"github.com/syncnotes/syncnotes/hub"
	"github.com/syncnotes/syncnotes/models"
	"github.com/syncnotes/syncnotes/store"
)

// UpsertNote creates the note owned by the caller when its id is unknown,
// otherwise merges the edit into the stored note. The result is sent to the
// note's audience.
func (s *Service) UpsertNote(ctx context.Context, callerId string, note models.Note) (models.Note, error) {
	if err := requireCaller(callerId); err != nil {
		return models.Note{}, err
	}
	if err := s.validateNote(note); err != nil {
		return models.Note{}, err
	}

	if note.Id == "" {
		id, err := newId()
		if err != nil {
			return models.Note{}, storeFailure("UpsertNote", err)
		}
		note.Id = id
	}

	var saved models.Note
	existing, err := s.Store.GetNote(ctx, note.Id)
	switch {
	case errors.Is(err, store.ErrItemNotFound):
		saved = models.Note{
			Id:         note.Id,
			Name:       note.Name,
			Content:    note.Content,
			OwnerId:    callerId,
			SharedWith: []string{},
		}
	case err != nil:
		return models.Note{}, storeFailure("UpsertNote", err)
	default:
		if !access.CanWrite(existing, callerId) {
			return models.Note{}, accessDenied("no write access to note %s", note.Id)
		}
		saved = s.Policy.MergeNote(existing, note)
	}

	if saved.Name == "" {
		saved.Name = models.DefaultNoteName
	}
	saved.LastModified = s.now()
	saved.LastModifiedBy = callerId

	if err := s.Store.SaveNote(ctx, saved); err != nil {
		return models.Note{}, storeFailure("UpsertNote", err)
	}

	saved.LastModifiedByName = s.displayName(ctx, callerId)
	s.Broadcaster.Send(access.Audience(saved), hub.EventReceiveNoteUpdate, saved)
	return saved, nil
}

// DeleteNote is owner only. Everyone in the audience at the moment of
// deletion is notified.
func (s *Service) DeleteNote(ctx context.Context, callerId string, noteId string) error {
	if err := requireCaller(callerId); err != nil {
		return err
	}

	existing, err := s.Store.GetNote(ctx, noteId)
	if err != nil {
		return fromStore("DeleteNote", "note "+noteId, err)
	}
	if !access.IsOwner(existing, callerId) {
		return accessDenied("only the owner can delete note %s", noteId)
	}

	audience := access.Audience(existing)
	if err := s.Store.DeleteNote(ctx, noteId); err != nil {
		return fromStore("DeleteNote", "note "+noteId, err)
	}

	s.Broadcaster.Send(audience, hub.EventNoteDeleted, noteId)
	return nil
}

// ShareNote adds friendId to the note's shares and notifies only the two
// parties involved. Sharing twice is a no-op.
func (s *Service) ShareNote(ctx context.Context, callerId string, noteId string, friendId string) (models.Note, error) {
	if err := requireCaller(callerId); err != nil {
		return models.Note{}, err
	}
	if friendId == "" {
		return models.Note{}, invalidArgument("friend id is required")
	}
	if friendId == callerId {
		return models.Note{}, invalidArgument("cannot share with yourself")
	}

	note, err := s.Store.GetNote(ctx, noteId)
	if err != nil {
		return models.Note{}, fromStore("ShareNote", "note "+noteId, err)
	}
	if !access.IsOwner(note, callerId) {
		return models.Note{}, accessDenied("only the owner can share note %s", noteId)
	}
	if err := s.requireFriendship(ctx, "ShareNote", callerId, friendId); err != nil {
		return models.Note{}, err
	}

	if slices.Contains(note.SharedWith, friendId) {
		return note, nil
	}
	note.SharedWith = append(slices.Clone(note.SharedWith), friendId)

	if err := s.Store.SaveNote(ctx, note); err != nil {
		return models.Note{}, storeFailure("ShareNote", err)
	}

	note.LastModifiedByName = s.displayName(ctx, note.LastModifiedBy)
	parties := []string{callerId, friendId}
	s.Broadcaster.Send(parties, hub.EventNoteShared, note)
	s.Broadcaster.Send(parties, hub.EventReceiveNoteUpdate, note)
	return note, nil
}

func (s *Service) requireFriendship(ctx context.Context, op string, callerId string, friendId string) error {
	friendships, err := s.Store.GetFriendshipsBetween(ctx, callerId, friendId)
	if err != nil {
		return storeFailure(op, err)
	}
	if !access.CanShare(callerId, friendId, friendships) {
		return accessDenied("can only share with friends")
	}
	return nil
}
