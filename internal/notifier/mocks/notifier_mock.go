package mocks

import (
	"context"
	"sync"
)

// MockNotifier запоминает отправленные сообщения вместо доставки
type MockNotifier struct {
	mu       sync.Mutex
	Messages []string
	// Err возвращается из каждого вызова Notify, если задан
	Err error
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Notify(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, text)
	return m.Err
}

func (m *MockNotifier) Sent() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Messages) == 0 {
		return nil
	}
	out := make([]string, len(m.Messages))
	copy(out, m.Messages)
	return out
}
