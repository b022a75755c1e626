package service

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/syncnotes/syncnotes/access"
	"github.com/syncnotes/syncnotes/hub"
	"github.com/syncnotes/syncnotes/models"
	"github.com/syncnotes/syncnotes/store"
)

// loadWhiteboard reports found=false for unknown names.
func (s *Service) loadWhiteboard(ctx context.Context, op string, name string) (models.Whiteboard, bool, error) {
	board, err := s.Store.GetWhiteboard(ctx, name)
	if errors.Is(err, store.ErrItemNotFound) {
		return models.Whiteboard{}, false, nil
	}
	if err != nil {
		return models.Whiteboard{}, false, storeFailure(op, err)
	}
	return board, true, nil
}

// createWhiteboard creates the whiteboard for ownerId unless another caller
// created it first, in which case the stored whiteboard is returned with
// created=false and the caller must pass the usual access checks.
func (s *Service) createWhiteboard(ctx context.Context, op string, name string, ownerId string, sharedWith []string) (models.Whiteboard, bool, error) {
	if sharedWith == nil {
		sharedWith = []string{}
	}
	board := models.Whiteboard{
		Name:           name,
		OwnerId:        ownerId,
		SharedWith:     sharedWith,
		LastModified:   s.now(),
		LastModifiedBy: ownerId,
	}
	err := s.Store.CreateWhiteboard(ctx, board)
	if err == nil {
		return board, true, nil
	}
	if !errors.Is(err, store.ErrConditionFailed) {
		return models.Whiteboard{}, false, storeFailure(op, err)
	}

	existing, err := s.Store.GetWhiteboard(ctx, name)
	if err != nil {
		return models.Whiteboard{}, false, storeFailure(op, err)
	}
	return existing, false, nil
}

// RequestWhiteboardElements returns the elements of a whiteboard the caller
// may read. Unknown or unreadable whiteboards yield an empty list.
func (s *Service) RequestWhiteboardElements(ctx context.Context, callerId string, name string) ([]models.WhiteboardElement, error) {
	if err := requireCaller(callerId); err != nil {
		return nil, err
	}
	empty := []models.WhiteboardElement{}
	if strings.TrimSpace(name) == "" {
		return empty, nil
	}

	board, found, err := s.loadWhiteboard(ctx, "RequestWhiteboardElements", name)
	if err != nil {
		return nil, err
	}
	if !found || !access.CanRead(board, callerId) {
		return empty, nil
	}

	elements, err := s.Store.GetElements(ctx, name)
	if err != nil {
		return nil, storeFailure("RequestWhiteboardElements", err)
	}
	s.newNameResolver().elements(ctx, elements)
	return elements, nil
}

// UpsertWhiteboardElement stores an element on its whiteboard, creating the
// whiteboard for the caller when it does not exist yet. Ownership and shares
// always come from the whiteboard, never from the payload.
func (s *Service) UpsertWhiteboardElement(ctx context.Context, callerId string, element models.WhiteboardElement) (models.WhiteboardElement, error) {
	if err := requireCaller(callerId); err != nil {
		return models.WhiteboardElement{}, err
	}
	element.WhiteboardName = strings.TrimSpace(element.WhiteboardName)
	if err := s.validateElement(element); err != nil {
		return models.WhiteboardElement{}, err
	}

	if element.Id == "" {
		id, err := newId()
		if err != nil {
			return models.WhiteboardElement{}, storeFailure("SendWhiteboardElement", err)
		}
		element.Id = id
	}

	board, found, err := s.loadWhiteboard(ctx, "SendWhiteboardElement", element.WhiteboardName)
	if err != nil {
		return models.WhiteboardElement{}, err
	}
	created := false
	if !found {
		board, created, err = s.createWhiteboard(ctx, "SendWhiteboardElement", element.WhiteboardName, callerId, nil)
		if err != nil {
			return models.WhiteboardElement{}, err
		}
	}
	if !created && !access.CanWrite(board, callerId) {
		return models.WhiteboardElement{}, accessDenied("no write access to whiteboard %s", board.Name)
	}

	var saved models.WhiteboardElement
	existing, err := s.Store.GetElement(ctx, element.Id)
	switch {
	case errors.Is(err, store.ErrItemNotFound):
		saved = element
		if saved.Color == "" {
			saved.Color = models.DefaultColor
		}
		if saved.StrokeWidth == 0 {
			saved.StrokeWidth = models.DefaultStrokeWidth
		}
	case err != nil:
		return models.WhiteboardElement{}, storeFailure("SendWhiteboardElement", err)
	default:
		// moving an element off another whiteboard needs access there too
		if existing.WhiteboardName != board.Name && !access.CanWrite(existing, callerId) {
			return models.WhiteboardElement{}, accessDenied("no write access to element %s", element.Id)
		}
		saved = s.Policy.MergeElement(existing, element)
	}

	saved.WhiteboardName = board.Name
	saved.OwnerId = board.OwnerId
	saved.SharedWith = slices.Clone(board.SharedWith)
	if saved.SharedWith == nil {
		saved.SharedWith = []string{}
	}
	saved.LastModified = s.now()
	saved.LastModifiedBy = callerId

	if err := s.Store.SaveElement(ctx, saved); err != nil {
		return models.WhiteboardElement{}, storeFailure("SendWhiteboardElement", err)
	}

	saved.LastModifiedByName = s.displayName(ctx, callerId)
	audience := access.Union(access.Audience(board), []string{board.OwnerId})
	s.Broadcaster.Send(audience, hub.EventReceiveWhiteboardElement, saved)
	return saved, nil
}

// DeleteWhiteboardElement ignores unknown ids.
func (s *Service) DeleteWhiteboardElement(ctx context.Context, callerId string, elementId string) error {
	if err := requireCaller(callerId); err != nil {
		return err
	}

	existing, err := s.Store.GetElement(ctx, elementId)
	if errors.Is(err, store.ErrItemNotFound) {
		return nil
	}
	if err != nil {
		return storeFailure("DeleteWhiteboardElement", err)
	}
	if !access.CanWrite(existing, callerId) {
		return accessDenied("no write access to element %s", elementId)
	}

	err = s.Store.DeleteElement(ctx, elementId)
	if err != nil && !errors.Is(err, store.ErrItemNotFound) {
		return storeFailure("DeleteWhiteboardElement", err)
	}

	if s.LegacyElementDeleteBroadcast {
		s.Broadcaster.SendAll(hub.EventWhiteboardElementDeleted, elementId)
		return nil
	}
	s.Broadcaster.Send(access.Audience(existing), hub.EventWhiteboardElementDeleted, elementId)
	return nil
}

// ClearWhiteboard removes every element while keeping the whiteboard with
// its owner and shares.
func (s *Service) ClearWhiteboard(ctx context.Context, callerId string, name string) error {
	if err := requireCaller(callerId); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return invalidArgument("whiteboard name is required")
	}

	board, found, err := s.loadWhiteboard(ctx, "ClearWhiteboard", name)
	if err != nil || !found {
		return err
	}
	if !access.CanWrite(board, callerId) {
		return accessDenied("no write access to whiteboard %s", name)
	}

	if err := s.Store.ClearWhiteboard(ctx, name); err != nil {
		return storeFailure("ClearWhiteboard", err)
	}

	s.Broadcaster.Send(access.Audience(board), hub.EventWhiteboardCleared, name)
	return nil
}

// GetWhiteboardNames lists every whiteboard the caller may read.
func (s *Service) GetWhiteboardNames(ctx context.Context, callerId string) ([]string, error) {
	if err := requireCaller(callerId); err != nil {
		return nil, err
	}

	boards, err := s.Store.GetWhiteboardsForUser(ctx, callerId)
	if err != nil {
		return nil, storeFailure("GetWhiteboardNames", err)
	}
	return whiteboardNames(boards), nil
}

// CreateWhiteboard creates an empty whiteboard owned by the caller. Creating
// an existing whiteboard succeeds for members of its audience.
func (s *Service) CreateWhiteboard(ctx context.Context, callerId string, name string) (models.Whiteboard, error) {
	if err := requireCaller(callerId); err != nil {
		return models.Whiteboard{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Whiteboard{}, invalidArgument("whiteboard name is required")
	}

	board, found, err := s.loadWhiteboard(ctx, "CreateWhiteboard", name)
	if err != nil {
		return models.Whiteboard{}, err
	}
	created := false
	if !found {
		board, created, err = s.createWhiteboard(ctx, "CreateWhiteboard", name, callerId, nil)
		if err != nil {
			return models.Whiteboard{}, err
		}
	}
	if !created && !access.CanRead(board, callerId) {
		return models.Whiteboard{}, accessDenied("whiteboard %s already exists", name)
	}

	s.Broadcaster.Send(access.Audience(board), hub.EventWhiteboardCreated, name)
	return board, nil
}

// DeleteWhiteboard is owner only and ignores unknown names.
func (s *Service) DeleteWhiteboard(ctx context.Context, callerId string, name string) error {
	if err := requireCaller(callerId); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return invalidArgument("whiteboard name is required")
	}

	board, found, err := s.loadWhiteboard(ctx, "DeleteWhiteboard", name)
	if err != nil || !found {
		return err
	}
	if !access.IsOwner(board, callerId) {
		return accessDenied("only the owner can delete whiteboard %s", name)
	}

	audience := access.Audience(board)
	err = s.Store.DeleteWhiteboard(ctx, name)
	if err != nil && !errors.Is(err, store.ErrItemNotFound) {
		return storeFailure("DeleteWhiteboard", err)
	}

	s.Broadcaster.Send(audience, hub.EventWhiteboardDeleted, name)
	return nil
}

// ShareWhiteboard adds friendId to the whiteboard's shares and sends the
// friend everything needed to open it. A missing whiteboard is created for
// the caller, already shared.
func (s *Service) ShareWhiteboard(ctx context.Context, callerId string, name string, friendId string) error {
	if err := requireCaller(callerId); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return invalidArgument("whiteboard name is required")
	}
	if friendId == "" {
		return invalidArgument("friend id is required")
	}
	if friendId == callerId {
		return invalidArgument("cannot share with yourself")
	}
	if err := s.requireFriendship(ctx, "ShareWhiteboard", callerId, friendId); err != nil {
		return err
	}

	board, found, err := s.loadWhiteboard(ctx, "ShareWhiteboard", name)
	if err != nil {
		return err
	}

	created := false
	if !found {
		board, created, err = s.createWhiteboard(ctx, "ShareWhiteboard", name, callerId, []string{friendId})
		if err != nil {
			return err
		}
	}

	switch {
	case created:
	case !access.IsOwner(board, callerId):
		return accessDenied("only the owner can share whiteboard %s", name)
	case !slices.Contains(board.SharedWith, friendId):
		board.SharedWith = append(slices.Clone(board.SharedWith), friendId)
		if err := s.Store.SaveWhiteboard(ctx, board); err != nil {
			return storeFailure("ShareWhiteboard", err)
		}
	}

	elements, err := s.Store.GetElements(ctx, name)
	if err != nil {
		return storeFailure("ShareWhiteboard", err)
	}
	s.newNameResolver().elements(ctx, elements)

	friend := []string{friendId}
	s.Broadcaster.Send(friend, hub.EventWhiteboardShared, name)
	s.Broadcaster.Send(friend, hub.EventReceiveWhiteboardElements, elements)
	return nil
}

func whiteboardNames(boards []models.Whiteboard) []string {
	names := make([]string, 0, len(boards))
	for _, b := range boards {
		if !slices.Contains(names, b.Name) {
			names = append(names, b.Name)
		}
	}
	return names
}
