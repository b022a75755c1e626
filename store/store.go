package store

import (
	"context"
	"errors"

	"github.com/syncnotes/syncnotes/models"
)

// NoteStore is the durable gateway for every hub entity. Whiteboard elements
// returned from any method carry the owner and shares of their whiteboard.
type NoteStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	UpdateUser(ctx context.Context, user models.User) error

	GetNote(ctx context.Context, id string) (models.Note, error)
	GetNotesForUser(ctx context.Context, userId string) ([]models.Note, error)
	SaveNote(ctx context.Context, note models.Note) error
	DeleteNote(ctx context.Context, id string) error

	GetWhiteboard(ctx context.Context, name string) (models.Whiteboard, error)
	GetWhiteboardsForUser(ctx context.Context, userId string) ([]models.Whiteboard, error)
	// CreateWhiteboard fails with ErrConditionFailed when the name is taken.
	CreateWhiteboard(ctx context.Context, whiteboard models.Whiteboard) error
	SaveWhiteboard(ctx context.Context, whiteboard models.Whiteboard) error
	DeleteWhiteboard(ctx context.Context, name string) error
	ClearWhiteboard(ctx context.Context, name string) error

	GetElement(ctx context.Context, id string) (models.WhiteboardElement, error)
	GetElements(ctx context.Context, whiteboardName string) ([]models.WhiteboardElement, error)
	GetElementsForUser(ctx context.Context, userId string) ([]models.WhiteboardElement, error)
	SaveElement(ctx context.Context, element models.WhiteboardElement) error
	DeleteElement(ctx context.Context, id string) error

	GetFriendshipsBetween(ctx context.Context, userId string, friendId string) ([]models.Friendship, error)
	GetFriends(ctx context.Context, userId string) ([]models.User, error)
	CreateFriendship(ctx context.Context, friendship models.Friendship) error
	DeleteFriendship(ctx context.Context, userId string, friendId string) error
}

var (
	ErrItemNotFound    = errors.New("item does not exist")
	ErrConditionFailed = errors.New("condition not met")
)
