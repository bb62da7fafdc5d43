package chat

import (
	"time"

	"conversational-task-management/internal/model"
)

// HandleMessageInput is the input for the chat pipeline.
type HandleMessageInput struct {
	Message      string   // Natural language task request from the user
	RecipientIDs []string // Target user IDs for fan-out; defaults to the requester
}

// HandleMessageOutput is the result of the chat pipeline.
type HandleMessageOutput struct {
	Reply   string       // Human-readable answer, always present
	Created []model.Task // Materialized tasks, empty on rejection
}

// IntentAction is what the provider decided the message asks for.
type IntentAction string

const (
	ActionCreateTask  IntentAction = "create_task"
	ActionUnsupported IntentAction = "unsupported"
)

// ParsedIntent is the normalized provider output for one user message.
type ParsedIntent struct {
	Reply  string
	Action IntentAction
	Draft  *TaskDraft // nil unless Action is ActionCreateTask
}

// TaskDraft is a candidate task extracted from the user message. It is
// not persisted until the validation pipeline accepts it.
type TaskDraft struct {
	Title       string
	Description string
	StatusCode  string
	DueDate     *time.Time
	Tags        []string

	// EstimatedPoints stays nil in two distinct situations: before the
	// estimator ran, and when the estimator judged the task meaningless.
	// The pipeline tells them apart by position, not by value.
	EstimatedPoints *int
	Confidence      float64
}

// Estimate is the complexity estimator's verdict on a draft.
type Estimate struct {
	Points      *int // nil means the task is meaningless
	Explanation string
	Confidence  float64
	ModelUsed   string
}

// ValidationOutcome is the result of running the validation pipeline.
type ValidationOutcome struct {
	Accepted       bool
	RejectionReply string
}
