package llm

import "context"

// MockClient permite tests sin llamar a un LLM real.
type MockClient struct {
	Response  string
	Embedding []float32
	Err       error

	ChatCalls  int
	EmbedCalls int
	LastPrompt string
}

func (m *MockClient) Chat(ctx context.Context, messages []Message, opts Options) (string, error) {
	m.ChatCalls++
	if len(messages) > 0 {
		m.LastPrompt = messages[len(messages)-1].Content
	}
	return m.Response, m.Err
}

func (m *MockClient) Embed(ctx context.Context, text string) ([]float32, error) {
	m.EmbedCalls++
	return m.Embedding, m.Err
}
