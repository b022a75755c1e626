package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetDisplayName(ctx context.Context, userId string) (string, bool, error) {
	args := m.Called(ctx, userId)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockCache) SetDisplayName(ctx context.Context, userId string, name string) error {
	args := m.Called(ctx, userId, name)
	return args.Error(0)
}

func (m *MockCache) InvalidateDisplayName(ctx context.Context, userId string) error {
	args := m.Called(ctx, userId)
	return args.Error(0)
}
