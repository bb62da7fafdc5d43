package chat

import (
	"context"

	"conversational-task-management/internal/model"
)

// UseCase defines the business logic interface for the chat domain.
type UseCase interface {
	// HandleMessage runs the full pipeline for one user message: intent
	// parsing, complexity estimation, validation, and materialization.
	// Business rejections come back as a normal output with an
	// explanatory reply; only provider and persistence failures error.
	HandleMessage(ctx context.Context, sc model.Scope, input HandleMessageInput) (HandleMessageOutput, error)
}
