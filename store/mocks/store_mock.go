package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/syncnotes/syncnotes/models"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockStore) GetUser(ctx context.Context, id string) (models.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockStore) UpdateUser(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockStore) GetNote(ctx context.Context, id string) (models.Note, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Note), args.Error(1)
}

func (m *MockStore) GetNotesForUser(ctx context.Context, userId string) ([]models.Note, error) {
	args := m.Called(ctx, userId)
	return args.Get(0).([]models.Note), args.Error(1)
}

func (m *MockStore) SaveNote(ctx context.Context, note models.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockStore) DeleteNote(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) GetWhiteboard(ctx context.Context, name string) (models.Whiteboard, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(models.Whiteboard), args.Error(1)
}

func (m *MockStore) GetWhiteboardsForUser(ctx context.Context, userId string) ([]models.Whiteboard, error) {
	args := m.Called(ctx, userId)
	return args.Get(0).([]models.Whiteboard), args.Error(1)
}

func (m *MockStore) CreateWhiteboard(ctx context.Context, whiteboard models.Whiteboard) error {
	args := m.Called(ctx, whiteboard)
	return args.Error(0)
}

func (m *MockStore) SaveWhiteboard(ctx context.Context, whiteboard models.Whiteboard) error {
	args := m.Called(ctx, whiteboard)
	return args.Error(0)
}

func (m *MockStore) DeleteWhiteboard(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockStore) ClearWhiteboard(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockStore) GetElement(ctx context.Context, id string) (models.WhiteboardElement, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.WhiteboardElement), args.Error(1)
}

func (m *MockStore) GetElements(ctx context.Context, whiteboardName string) ([]models.WhiteboardElement, error) {
	args := m.Called(ctx, whiteboardName)
	return args.Get(0).([]models.WhiteboardElement), args.Error(1)
}

func (m *MockStore) GetElementsForUser(ctx context.Context, userId string) ([]models.WhiteboardElement, error) {
	args := m.Called(ctx, userId)
	return args.Get(0).([]models.WhiteboardElement), args.Error(1)
}

func (m *MockStore) SaveElement(ctx context.Context, element models.WhiteboardElement) error {
	args := m.Called(ctx, element)
	return args.Error(0)
}

func (m *MockStore) DeleteElement(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) GetFriendshipsBetween(ctx context.Context, userId string, friendId string) ([]models.Friendship, error) {
	args := m.Called(ctx, userId, friendId)
	return args.Get(0).([]models.Friendship), args.Error(1)
}

func (m *MockStore) GetFriends(ctx context.Context, userId string) ([]models.User, error) {
	args := m.Called(ctx, userId)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockStore) CreateFriendship(ctx context.Context, friendship models.Friendship) error {
	args := m.Called(ctx, friendship)
	return args.Error(0)
}

func (m *MockStore) DeleteFriendship(ctx context.Context, userId string, friendId string) error {
	args := m.Called(ctx, userId, friendId)
	return args.Error(0)
}
