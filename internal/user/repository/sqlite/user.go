package sqlite

import (
	"context"
	"strings"

	"conversational-task-management/internal/model"
)

func (r *implRepository) GetByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, username, full_name, current_competition_id, created_at FROM users WHERE id IN (`+placeholders(len(ids))+`)`,
		toArgs(ids)...)
	if err != nil {
		r.l.Errorf(ctx, "user repository: failed to get users by IDs: %v", err)
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.FullName, &u.CurrentCompetitionID, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *implRepository) GetEnrolledCompetitions(ctx context.Context, userIDs []string) (map[string]model.Competition, error) {
	if len(userIDs) == 0 {
		return map[string]model.Competition{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, c.id, c.name, c.start_date, c.end_date
		FROM users u
		JOIN competitions c ON c.id = u.current_competition_id
		WHERE u.id IN (`+placeholders(len(userIDs))+`)`,
		toArgs(userIDs)...)
	if err != nil {
		r.l.Errorf(ctx, "user repository: failed to get enrolled competitions: %v", err)
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]model.Competition)
	for rows.Next() {
		var userID string
		var c model.Competition
		if err := rows.Scan(&userID, &c.ID, &c.Name, &c.StartDate, &c.EndDate); err != nil {
			return nil, err
		}
		result[userID] = c
	}
	return result, rows.Err()
}

func placeholders(n int) string {
	s := strings.Repeat("?,", n)
	return s[:len(s)-1]
}

func toArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
