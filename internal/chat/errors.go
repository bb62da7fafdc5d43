package chat

import "errors"

// Domain-specific errors for the chat package. Validation rejections are
// not errors, they come back inside HandleMessageOutput.
var (
	ErrEmptyMessage          = errors.New("chat message is empty")
	ErrAssistantRateLimited  = errors.New("assistant is rate limited")
	ErrAssistantUnavailable  = errors.New("assistant is unavailable")
	ErrTaskPersistenceFailed = errors.New("failed to persist tasks")
)
