package llm

import "context"

// MockClient is a configurable LLM client for testing.
// Set the response fields to control what Generate returns.
type MockClient struct {
	GenerateResponse string
	GenerateError    error

	// Call tracking for assertions
	GenerateCalls []string
}

func NewMockClient() *MockClient {
	return &MockClient{
		GenerateResponse: "Mock response",
	}
}

func (c *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	c.GenerateCalls = append(c.GenerateCalls, prompt)
	if c.GenerateError != nil {
		return "", c.GenerateError
	}
	return c.GenerateResponse, nil
}

// Reset clears all recorded calls and resets responses to defaults.
func (c *MockClient) Reset() {
	c.GenerateResponse = "Mock response"
	c.GenerateError = nil
	c.GenerateCalls = nil
}
