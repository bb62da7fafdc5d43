package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"conversational-task-management/internal/model"
)

// getOrCreateTag resolves a tag name to its row, creating it on first
// use. The insert-then-select dance keeps concurrent batches from
// racing on the unique name index.
func getOrCreateTag(ctx context.Context, tx *sql.Tx, name string) (model.Tag, error) {
	if _, err := tx.ExecContext(ctx, `INSERT INTO tags (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, name); err != nil {
		return model.Tag{}, fmt.Errorf("insert tag %q: %w", name, err)
	}

	var tag model.Tag
	row := tx.QueryRowContext(ctx, `SELECT id, name FROM tags WHERE name = ?`, name)
	if err := row.Scan(&tag.ID, &tag.Name); err != nil {
		return model.Tag{}, fmt.Errorf("select tag %q: %w", name, err)
	}
	return tag, nil
}
