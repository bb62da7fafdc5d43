package model

import "time"

// TaskStatus is a workflow column a task can sit in.
type TaskStatus struct {
	ID   int64
	Code string // machine code: "todo", "in_progress", "done"
	Name string // display name shown to users
}

// Tag is a label attached to tasks. Urgency tags are seeded at startup,
// anything else is created on first use.
type Tag struct {
	ID   int64
	Name string
}

// Task represents a materialized task assigned to a single user.
type Task struct {
	ID              string // UUID
	Title           string
	Description     string
	AssigneeID      string
	StatusID        int64
	StatusCode      string
	DueDate         *time.Time
	EstimatedPoints *int // nil until the complexity estimator has scored it
	AwardedPoints   int
	Tags            []Tag
	Metadata        string // JSON blob with model provenance for the estimate
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
