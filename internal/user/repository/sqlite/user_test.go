package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"conversational-task-management/internal/db"
	"conversational-task-management/internal/user/repository"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

func setupRepo(t *testing.T) (repository.Repository, *db.DB) {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	return New(&mockLogger{}, database.SQL()), database
}

func TestGetByIDs(t *testing.T) {
	repo, database := setupRepo(t)
	ctx := context.Background()

	for _, u := range []struct{ id, username string }{
		{"u-1", "alice"},
		{"u-2", "bob"},
	} {
		if _, err := database.SQL().Exec(`INSERT INTO users (id, username) VALUES (?, ?)`, u.id, u.username); err != nil {
			t.Fatalf("insert user: %v", err)
		}
	}

	users, err := repo.GetByIDs(ctx, []string{"u-1", "u-2", "u-missing"})
	if err != nil {
		t.Fatalf("get by ids: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}

	users, err = repo.GetByIDs(ctx, nil)
	if err != nil {
		t.Fatalf("get by empty ids: %v", err)
	}
	if users != nil {
		t.Fatalf("expected nil for empty input, got %v", users)
	}
}

func TestGetEnrolledCompetitions(t *testing.T) {
	repo, database := setupRepo(t)
	ctx := context.Background()

	start := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	res, err := database.SQL().Exec(
		`INSERT INTO competitions (name, start_date, end_date) VALUES (?, ?, ?)`,
		"Q4 Sprint", start, end)
	if err != nil {
		t.Fatalf("insert competition: %v", err)
	}
	compID, _ := res.LastInsertId()

	if _, err := database.SQL().Exec(
		`INSERT INTO users (id, username, current_competition_id) VALUES (?, ?, ?)`,
		"u-enrolled", "alice", compID); err != nil {
		t.Fatalf("insert enrolled user: %v", err)
	}
	if _, err := database.SQL().Exec(
		`INSERT INTO users (id, username) VALUES (?, ?)`, "u-free", "bob"); err != nil {
		t.Fatalf("insert free user: %v", err)
	}

	comps, err := repo.GetEnrolledCompetitions(ctx, []string{"u-enrolled", "u-free"})
	if err != nil {
		t.Fatalf("get enrolled competitions: %v", err)
	}
	if len(comps) != 1 {
		t.Fatalf("expected 1 enrollment, got %d", len(comps))
	}

	comp, ok := comps["u-enrolled"]
	if !ok {
		t.Fatal("expected enrollment for u-enrolled")
	}
	if comp.Name != "Q4 Sprint" || !comp.StartDate.Equal(start) || !comp.EndDate.Equal(end) {
		t.Fatalf("unexpected competition %+v", comp)
	}

	comps, err = repo.GetEnrolledCompetitions(ctx, nil)
	if err != nil {
		t.Fatalf("get enrolled competitions empty: %v", err)
	}
	if len(comps) != 0 {
		t.Fatalf("expected empty map, got %v", comps)
	}
}
