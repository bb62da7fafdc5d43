package usecase

import (
	"context"
	"encoding/json"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"conversational-task-management/internal/model"
	taskRepository "conversational-task-management/internal/task/repository"
	userRepository "conversational-task-management/internal/user/repository"
	"conversational-task-management/pkg/datemath"
	"conversational-task-management/pkg/llmprovider"
	pkgLog "conversational-task-management/pkg/log"
)

// completionGateway is the slice of the provider manager the pipeline
// needs. *llmprovider.Manager satisfies it.
type completionGateway interface {
	CompleteJSON(ctx context.Context, req *llmprovider.Request) (json.RawMessage, error)
	PrimaryModel() string
}

type implUseCase struct {
	l        pkgLog.Logger
	gateway  completionGateway
	taskRepo taskRepository.Repository
	userRepo userRepository.Repository

	// statusCache holds status rows by code. Status rows never change at
	// runtime, so a small cache spares a query per chat request.
	statusCache *lru.Cache[string, model.TaskStatus]

	// dates resolves relative due-date phrases the provider leaves
	// unresolved despite the prompt contract.
	dates *datemath.Parser

	banned []string
}

// New creates a new chat UseCase instance. extraBanned extends the
// built-in banned fragment list from configuration.
func New(
	l pkgLog.Logger,
	gateway completionGateway,
	taskRepo taskRepository.Repository,
	userRepo userRepository.Repository,
	extraBanned []string,
) *implUseCase {
	cache, _ := lru.New[string, model.TaskStatus](16)

	// Matching happens against a lowercased haystack, so configured
	// fragments must be lowercased too.
	banned := make([]string, 0, len(defaultBannedFragments)+len(extraBanned))
	banned = append(banned, defaultBannedFragments...)
	for _, fragment := range extraBanned {
		fragment = strings.ToLower(strings.TrimSpace(fragment))
		if fragment != "" {
			banned = append(banned, fragment)
		}
	}

	return &implUseCase{
		l:           l,
		gateway:     gateway,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		statusCache: cache,
		dates:       datemath.New(nil),
		banned:      banned,
	}
}
