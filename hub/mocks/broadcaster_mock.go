package mocks

import (
	"github.com/stretchr/testify/mock"
)

type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) Send(audience []string, event string, args ...any) {
	m.Called(audience, event, args)
}

func (m *MockBroadcaster) SendAll(event string, args ...any) {
	m.Called(event, args)
}
