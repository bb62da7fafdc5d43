package sqlite

import (
	"database/sql"

	"conversational-task-management/internal/task/repository"
	pkgLog "conversational-task-management/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  pkgLog.Logger
}

// New creates a new SQLite-backed task repository.
func New(l pkgLog.Logger, db *sql.DB) repository.Repository {
	return &implRepository{
		db: db,
		l:  l,
	}
}
