package gemini

import "context"

// IGemini defines the interface for Gemini LLM client
type IGemini interface {
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
}
