package llmprovider

import (
	"context"
	"fmt"

	"conversational-task-management/pkg/deepseek"
	"conversational-task-management/pkg/gemini"
	"conversational-task-management/pkg/groq"
	"conversational-task-management/pkg/qwen"
)

// GroqAdapter adapts pkg/groq to the llmprovider.Provider interface
type GroqAdapter struct {
	client *groq.Client
}

// NewGroqAdapter creates a new Groq adapter
func NewGroqAdapter(client *groq.Client) *GroqAdapter {
	return &GroqAdapter{client: client}
}

// Complete implements Provider interface
func (a *GroqAdapter) Complete(ctx context.Context, req *Request) (*Response, error) {
	groqReq := &groq.Request{
		Messages:    convertToGroqMessages(req.Messages),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		TopP:        1,
		Stream:      false,
	}
	if req.JSONMode {
		groqReq.ResponseFormat = &groq.ResponseFormat{Type: "json_object"}
	}

	resp, err := a.client.GenerateContent(ctx, groqReq)
	if err != nil {
		return nil, &ProviderError{Provider: "groq", Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &ProviderError{Provider: "groq", Err: ErrEmptyResponse}
	}

	return &Response{
		Content:      resp.Choices[0].Message.Content,
		ProviderName: "groq",
		ModelName:    resp.Model,
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns provider name
func (a *GroqAdapter) Name() string {
	return "groq"
}

// Model returns model name
func (a *GroqAdapter) Model() string {
	return a.client.Model()
}

func convertToGroqMessages(msgs []Message) []groq.Message {
	messages := make([]groq.Message, len(msgs))
	for i, m := range msgs {
		messages[i] = groq.Message{Role: m.Role, Content: m.Content}
	}
	return messages
}

// DeepSeekAdapter adapts pkg/deepseek to the llmprovider.Provider interface
type DeepSeekAdapter struct {
	client *deepseek.Client
}

// NewDeepSeekAdapter creates a new DeepSeek adapter
func NewDeepSeekAdapter(client *deepseek.Client) *DeepSeekAdapter {
	return &DeepSeekAdapter{client: client}
}

// Complete implements Provider interface
func (a *DeepSeekAdapter) Complete(ctx context.Context, req *Request) (*Response, error) {
	dsReq := &deepseek.Request{
		Messages:    convertToDeepSeekMessages(req.Messages),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Stream:      false,
	}
	if req.JSONMode {
		dsReq.ResponseFormat = &deepseek.ResponseFormat{Type: "json_object"}
	}

	resp, err := a.client.GenerateContent(ctx, dsReq)
	if err != nil {
		return nil, &ProviderError{Provider: "deepseek", Err: fmt.Errorf("deepseek: %w", err)}
	}
	if len(resp.Choices) == 0 {
		return nil, &ProviderError{Provider: "deepseek", Err: ErrEmptyResponse}
	}

	return &Response{
		Content:      resp.Choices[0].Message.Content,
		ProviderName: "deepseek",
		ModelName:    resp.Model,
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns the provider name
func (a *DeepSeekAdapter) Name() string {
	return "deepseek"
}

// Model returns the model name
func (a *DeepSeekAdapter) Model() string {
	return a.client.Model()
}

func convertToDeepSeekMessages(msgs []Message) []deepseek.Message {
	messages := make([]deepseek.Message, len(msgs))
	for i, m := range msgs {
		messages[i] = deepseek.Message{Role: m.Role, Content: m.Content}
	}
	return messages
}

// QwenAdapter adapts pkg/qwen to the llmprovider.Provider interface
type QwenAdapter struct {
	client *qwen.Client
}

// NewQwenAdapter creates a new Qwen adapter
func NewQwenAdapter(client *qwen.Client) *QwenAdapter {
	return &QwenAdapter{client: client}
}

// Complete implements Provider interface
func (a *QwenAdapter) Complete(ctx context.Context, req *Request) (*Response, error) {
	qwenReq := &qwen.Request{
		Messages:    convertToQwenMessages(req.Messages),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Stream:      false,
	}
	if req.JSONMode {
		qwenReq.ResponseFormat = &qwen.ResponseFormat{Type: "json_object"}
	}

	resp, err := a.client.GenerateContent(ctx, qwenReq)
	if err != nil {
		return nil, &ProviderError{Provider: "qwen", Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &ProviderError{Provider: "qwen", Err: ErrEmptyResponse}
	}

	return &Response{
		Content:      resp.Choices[0].Message.Content,
		ProviderName: "qwen",
		ModelName:    resp.Model,
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns the provider name
func (a *QwenAdapter) Name() string {
	return "qwen"
}

// Model returns the model name
func (a *QwenAdapter) Model() string {
	return a.client.Model()
}

func convertToQwenMessages(msgs []Message) []qwen.Message {
	messages := make([]qwen.Message, len(msgs))
	for i, m := range msgs {
		messages[i] = qwen.Message{Role: m.Role, Content: m.Content}
	}
	return messages
}

// GeminiAdapter adapts pkg/gemini to the llmprovider.Provider interface
type GeminiAdapter struct {
	client *gemini.Client
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client *gemini.Client) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// Complete implements Provider interface
func (a *GeminiAdapter) Complete(ctx context.Context, req *Request) (*Response, error) {
	geminiReq := &gemini.Request{
		Messages:    convertToGeminiMessages(req.Messages),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		JSONMode:    req.JSONMode,
	}

	resp, err := a.client.GenerateContent(ctx, geminiReq)
	if err != nil {
		return nil, &ProviderError{Provider: "gemini", Err: err}
	}
	if resp.Content == "" {
		return nil, &ProviderError{Provider: "gemini", Err: ErrEmptyResponse}
	}

	return &Response{
		Content:      resp.Content,
		ProviderName: "gemini",
		ModelName:    resp.Model,
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns the provider name
func (a *GeminiAdapter) Name() string {
	return "gemini"
}

// Model returns the model name
func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}

func convertToGeminiMessages(msgs []Message) []gemini.Message {
	messages := make([]gemini.Message, len(msgs))
	for i, m := range msgs {
		messages[i] = gemini.Message{Role: m.Role, Content: m.Content}
	}
	return messages
}
