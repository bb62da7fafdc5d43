package llmprovider

import "context"

// Provider defines the interface for LLM completion providers
type Provider interface {
	// Complete sends a chat-completion request and returns the raw model output
	Complete(ctx context.Context, req *Request) (*Response, error)

	// Name returns the provider name (e.g., "groq", "deepseek")
	Name() string

	// Model returns the model being used
	Model() string
}

// Request represents a normalized completion request
type Request struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
	JSONMode    bool // ask the provider for strict-JSON output
}

// Message represents a role-tagged conversation turn
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Response represents a normalized completion response
type Response struct {
	Content      string
	ProviderName string
	ModelName    string
	Usage        *Usage
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
