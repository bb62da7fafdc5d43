package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client implements IGemini interface
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// New creates a new Gemini client
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// GenerateContent sends a generateContent request to the Gemini API.
// HTTP-level failures are returned as *APIError so the caller can
// classify them.
func (c *Client) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	wireReq := transformRequest(req)

	body, err := json.Marshal(wireReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err != nil {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errResp.Error.Message}
	}

	var wireResp generateResponse
	if err := json.Unmarshal(respBody, &wireResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return transformResponse(c.model, &wireResp), nil
}

// transformRequest maps the neutral request onto the Gemini wire format.
// System messages become the system instruction, assistant turns map to
// the "model" role.
func transformRequest(req *Request) generateRequest {
	wireReq := generateRequest{
		GenerationConfig: &generationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		},
	}
	if req.JSONMode {
		wireReq.GenerationConfig.ResponseMimeType = "application/json"
	}

	var systemParts []wirePart
	for _, m := range req.Messages {
		switch m.Role {
		case "system":
			systemParts = append(systemParts, wirePart{Text: m.Content})
		case "assistant":
			wireReq.Contents = append(wireReq.Contents, wireContent{
				Role:  "model",
				Parts: []wirePart{{Text: m.Content}},
			})
		default:
			wireReq.Contents = append(wireReq.Contents, wireContent{
				Role:  "user",
				Parts: []wirePart{{Text: m.Content}},
			})
		}
	}
	if len(systemParts) > 0 {
		wireReq.SystemInstruction = &wireContent{Parts: systemParts}
	}

	return wireReq
}

func transformResponse(model string, wireResp *generateResponse) *Response {
	var sb strings.Builder
	if len(wireResp.Candidates) > 0 {
		for _, part := range wireResp.Candidates[0].Content.Parts {
			sb.WriteString(part.Text)
		}
	}

	return &Response{
		Content: sb.String(),
		Model:   model,
		Usage: Usage{
			PromptTokens:     wireResp.UsageMetadata.PromptTokenCount,
			CompletionTokens: wireResp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      wireResp.UsageMetadata.TotalTokenCount,
		},
	}
}
