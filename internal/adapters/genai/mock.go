package genai

import (
	"context"
	"sync"
)

// MockClient is a scripted implementation of Client for testing.
// Queued results are returned in order; once exhausted, Reply is returned.
type MockClient struct {
	mu       sync.Mutex
	Reply    string
	queue    []mockResult
	requests []GenerateRequest
}

type mockResult struct {
	text string
	err  error
}

// NewMockClient creates a new MockClient instance
func NewMockClient() *MockClient {
	return &MockClient{Reply: "Indeed."}
}

// Enqueue schedules the result of the next unanswered call
func (m *MockClient) Enqueue(text string, err error) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, mockResult{text: text, err: err})
	return m
}

// Generate implements Client.Generate
func (m *MockClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		return next.text, next.err
	}

	return m.Reply, nil
}

// Provider implements Client.Provider
func (m *MockClient) Provider() string {
	return "mock"
}

// Requests returns a copy of every request received
func (m *MockClient) Requests() []GenerateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]GenerateRequest(nil), m.requests...)
}
