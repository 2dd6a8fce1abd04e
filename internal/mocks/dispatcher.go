package mocks

import (
	"sync"

	"github.com/avalanche-blog/internal/notify"
)

// MockDispatcher records notification payloads instead of publishing them
type MockDispatcher struct {
	mu            sync.Mutex
	Dispatched    []notify.EmailMessage
	DispatchError error
	Closed        bool
}

// Verify interface compliance
var _ notify.Dispatcher = (*MockDispatcher)(nil)

func NewMockDispatcher() *MockDispatcher {
	return &MockDispatcher{}
}

func (m *MockDispatcher) DispatchNewArticle(msg notify.EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DispatchError != nil {
		return m.DispatchError
	}
	m.Dispatched = append(m.Dispatched, msg)
	return nil
}

func (m *MockDispatcher) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
}

// DispatchedCount returns the number of recorded payloads
func (m *MockDispatcher) DispatchedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Dispatched)
}
