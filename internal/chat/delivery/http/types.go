package http

import (
	"time"

	"conversational-task-management/internal/model"
)

// chatRequest is the inbound body for POST /api/chat.
type chatRequest struct {
	Message      string   `json:"message" binding:"required"`
	RecipientIDs []string `json:"recipient_ids"`
}

// taskItem is the wire shape of a created task.
type taskItem struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	AssigneeID      string     `json:"assignee_id"`
	StatusID        int64      `json:"status_id"`
	DueDate         *time.Time `json:"due_date"`
	EstimatedPoints *int       `json:"estimated_points"`
	AwardedPoints   int        `json:"awarded_points"`
	Tags            []string   `json:"tags"`
	CreatedAt       time.Time  `json:"created_at"`
}

// chatResponse carries the assistant reply. TaskCreated is the first
// created task, kept singular for callers that predate fan-out;
// TasksCreated has the full batch.
type chatResponse struct {
	Reply        string     `json:"reply"`
	TaskCreated  *taskItem  `json:"task_created"`
	TasksCreated []taskItem `json:"tasks_created,omitempty"`
}

func toTaskItem(t model.Task) taskItem {
	tags := make([]string, 0, len(t.Tags))
	for _, tag := range t.Tags {
		tags = append(tags, tag.Name)
	}

	return taskItem{
		ID:              t.ID,
		Title:           t.Title,
		Description:     t.Description,
		AssigneeID:      t.AssigneeID,
		StatusID:        t.StatusID,
		DueDate:         t.DueDate,
		EstimatedPoints: t.EstimatedPoints,
		AwardedPoints:   t.AwardedPoints,
		Tags:            tags,
		CreatedAt:       t.CreatedAt,
	}
}

func toChatResponse(reply string, created []model.Task) chatResponse {
	resp := chatResponse{Reply: reply}
	if len(created) == 0 {
		return resp
	}

	items := make([]taskItem, 0, len(created))
	for _, t := range created {
		items = append(items, toTaskItem(t))
	}
	resp.TaskCreated = &items[0]
	resp.TasksCreated = items
	return resp
}
