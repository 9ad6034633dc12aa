package testutils

import "context"

// MockChatClient is a test chat client with a scripted reply or error
type MockChatClient struct {
	// Response is returned on success
	Response string

	// Err, when set, is returned instead of Response
	Err error

	// Prompts records every prompt passed to Chat
	Prompts []string
}

func NewMockChatClient(response string) *MockChatClient {
	return &MockChatClient{Response: response}
}

func (m *MockChatClient) Chat(_ context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// Calls reports how many times Chat was invoked.
func (m *MockChatClient) Calls() int {
	return len(m.Prompts)
}

func (m *MockChatClient) Close() error {
	return nil
}
