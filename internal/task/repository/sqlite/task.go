package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"

	"conversational-task-management/internal/model"
	"conversational-task-management/internal/task/repository"
)

func (r *implRepository) CreateBatch(ctx context.Context, opt repository.CreateBatchOptions) ([]model.Task, error) {
	if len(opt.RecipientIDs) == 0 {
		return nil, repository.ErrNoRecipients
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "task repository: failed to begin batch tx: %v", err)
		return nil, err
	}
	defer tx.Rollback()

	tags := make([]model.Tag, 0, len(opt.Tags))
	seenTags := make(map[int64]bool, len(opt.Tags))
	for _, name := range opt.Tags {
		tag, err := getOrCreateTag(ctx, tx, name)
		if err != nil {
			r.l.Errorf(ctx, "task repository: %v", err)
			return nil, err
		}
		if seenTags[tag.ID] {
			continue
		}
		seenTags[tag.ID] = true
		tags = append(tags, tag)
	}

	now := time.Now().UTC()
	tasks := make([]model.Task, 0, len(opt.RecipientIDs))
	for _, recipientID := range opt.RecipientIDs {
		t := model.Task{
			ID:              uuid.NewString(),
			Title:           opt.Title,
			Description:     opt.Description,
			AssigneeID:      recipientID,
			StatusID:        opt.StatusID,
			DueDate:         opt.DueDate,
			EstimatedPoints: opt.EstimatedPoints,
			AwardedPoints:   0,
			Tags:            tags,
			Metadata:        opt.Metadata,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO tasks (id, title, description, assignee_id, status_id, due_date, estimated_points, awarded_points, metadata, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.Title, t.Description, t.AssigneeID, t.StatusID, t.DueDate, t.EstimatedPoints, t.AwardedPoints, t.Metadata, t.CreatedAt, t.UpdatedAt,
		)
		if err != nil {
			r.l.Errorf(ctx, "task repository: failed to insert task for %s: %v", recipientID, err)
			return nil, err
		}

		for _, tag := range tags {
			if _, err := tx.ExecContext(ctx, `INSERT INTO task_tags (task_id, tag_id) VALUES (?, ?) ON CONFLICT (task_id, tag_id) DO NOTHING`, t.ID, tag.ID); err != nil {
				r.l.Errorf(ctx, "task repository: failed to link tag %q to task %s: %v", tag.Name, t.ID, err)
				return nil, err
			}
		}

		tasks = append(tasks, t)
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "task repository: failed to commit batch: %v", err)
		return nil, err
	}
	return tasks, nil
}
