//go:build unit
// +build unit

package messaging

import (
	"context"

	"github.com/eskiturk2021/api-gateway/internal/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockPublisher is a mock implementation of events.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
