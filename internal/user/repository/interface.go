package repository

import (
	"context"

	"conversational-task-management/internal/model"
)

// Repository is the interface for user and competition data access.
type Repository interface {
	// GetByIDs returns the users matching the given IDs. Unknown IDs are
	// simply absent from the result, the caller decides if that matters.
	GetByIDs(ctx context.Context, ids []string) ([]model.User, error)

	// GetEnrolledCompetitions resolves each user's current competition.
	// Users without an enrollment are absent from the result map.
	GetEnrolledCompetitions(ctx context.Context, userIDs []string) (map[string]model.Competition, error)
}
