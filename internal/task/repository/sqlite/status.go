package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"conversational-task-management/internal/model"
	"conversational-task-management/internal/task/repository"
)

func (r *implRepository) GetStatusByCode(ctx context.Context, code string) (model.TaskStatus, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, code, name FROM task_status WHERE code = ?`, code)

	var st model.TaskStatus
	if err := row.Scan(&st.ID, &st.Code, &st.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.TaskStatus{}, repository.ErrStatusNotFound
		}
		r.l.Errorf(ctx, "task repository: failed to get status %q: %v", code, err)
		return model.TaskStatus{}, err
	}
	return st, nil
}

func (r *implRepository) ListStatuses(ctx context.Context) ([]model.TaskStatus, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, code, name FROM task_status ORDER BY id`)
	if err != nil {
		r.l.Errorf(ctx, "task repository: failed to list statuses: %v", err)
		return nil, err
	}
	defer rows.Close()

	var statuses []model.TaskStatus
	for rows.Next() {
		var st model.TaskStatus
		if err := rows.Scan(&st.ID, &st.Code, &st.Name); err != nil {
			return nil, err
		}
		statuses = append(statuses, st)
	}
	return statuses, rows.Err()
}

func (r *implRepository) EnsureStatus(ctx context.Context, code, name string) (model.TaskStatus, error) {
	// Insert-then-select so concurrent callers converge on the same row.
	if _, err := r.db.ExecContext(ctx, `INSERT INTO task_status (code, name) VALUES (?, ?) ON CONFLICT(code) DO NOTHING`, code, name); err != nil {
		r.l.Errorf(ctx, "task repository: failed to ensure status %q: %v", code, err)
		return model.TaskStatus{}, fmt.Errorf("ensure status %q: %w", code, err)
	}
	return r.GetStatusByCode(ctx, code)
}
