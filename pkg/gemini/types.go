package gemini

import "fmt"

// Config holds client construction parameters.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Message is a single role-tagged conversation turn. System messages are
// lifted into the request's system instruction.
type Message struct {
	Role    string
	Content string
}

// Request is the provider-neutral generation request.
type Request struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
	JSONMode    bool
}

// Usage tracks token consumption.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Response is the generation result.
type Response struct {
	Content string
	Model   string
	Usage   Usage
}

// Wire types for the generateContent endpoint.
type generateRequest struct {
	SystemInstruction *wireContent      `json:"system_instruction,omitempty"`
	Contents          []wireContent     `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type wireContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []wirePart `json:"parts"`
}

type wirePart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content wireContent `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// ErrorResponse is the error body returned by the API.
type ErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// APIError carries the HTTP status of a failed API call so callers can
// distinguish rate limiting from other provider failures.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini: API error %d: %s", e.StatusCode, e.Message)
}

// HTTPStatus returns the HTTP status code of the failed call.
func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}
