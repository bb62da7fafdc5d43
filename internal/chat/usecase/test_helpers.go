package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"conversational-task-management/internal/model"
	taskRepository "conversational-task-management/internal/task/repository"
	"conversational-task-management/pkg/llmprovider"
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

// mockGateway plays back scripted completions in order. A non-nil error
// at position i wins over the response at position i.
type mockGateway struct {
	responses []string
	errs      []error
	calls     []*llmprovider.Request
}

func (m *mockGateway) CompleteJSON(ctx context.Context, req *llmprovider.Request) (json.RawMessage, error) {
	i := len(m.calls)
	m.calls = append(m.calls, req)

	if i < len(m.errs) && m.errs[i] != nil {
		return nil, m.errs[i]
	}
	if i < len(m.responses) {
		return json.RawMessage(m.responses[i]), nil
	}
	return nil, errors.New("mockGateway: unscripted call")
}

func (m *mockGateway) PrimaryModel() string {
	return "test-model"
}

// mockTaskRepo is an in-memory task repository.
type mockTaskRepo struct {
	statuses []model.TaskStatus
	batches  []taskRepository.CreateBatchOptions
	batchErr error
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{
		statuses: []model.TaskStatus{
			{ID: 1, Code: "todo", Name: "К выполнению"},
			{ID: 2, Code: "in_progress", Name: "В работе"},
			{ID: 3, Code: "done", Name: "Выполнено"},
		},
	}
}

func (m *mockTaskRepo) CreateBatch(ctx context.Context, opt taskRepository.CreateBatchOptions) ([]model.Task, error) {
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	m.batches = append(m.batches, opt)

	tasks := make([]model.Task, 0, len(opt.RecipientIDs))
	for i, id := range opt.RecipientIDs {
		tasks = append(tasks, model.Task{
			ID:              fmt.Sprintf("task-%d", i),
			Title:           opt.Title,
			Description:     opt.Description,
			AssigneeID:      id,
			StatusID:        opt.StatusID,
			DueDate:         opt.DueDate,
			EstimatedPoints: opt.EstimatedPoints,
			Metadata:        opt.Metadata,
		})
	}
	return tasks, nil
}

func (m *mockTaskRepo) GetStatusByCode(ctx context.Context, code string) (model.TaskStatus, error) {
	for _, st := range m.statuses {
		if st.Code == code {
			return st, nil
		}
	}
	return model.TaskStatus{}, taskRepository.ErrStatusNotFound
}

func (m *mockTaskRepo) ListStatuses(ctx context.Context) ([]model.TaskStatus, error) {
	return m.statuses, nil
}

func (m *mockTaskRepo) EnsureStatus(ctx context.Context, code, name string) (model.TaskStatus, error) {
	if st, err := m.GetStatusByCode(ctx, code); err == nil {
		return st, nil
	}
	st := model.TaskStatus{ID: int64(len(m.statuses) + 1), Code: code, Name: name}
	m.statuses = append(m.statuses, st)
	return st, nil
}

// mockUserRepo is an in-memory user repository.
type mockUserRepo struct {
	users        map[string]model.User
	competitions map[string]model.Competition
}

func newMockUserRepo(ids ...string) *mockUserRepo {
	users := make(map[string]model.User, len(ids))
	for _, id := range ids {
		users[id] = model.User{ID: id, Username: id}
	}
	return &mockUserRepo{users: users, competitions: map[string]model.Competition{}}
}

func (m *mockUserRepo) GetByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	var out []model.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepo) GetEnrolledCompetitions(ctx context.Context, userIDs []string) (map[string]model.Competition, error) {
	out := make(map[string]model.Competition)
	for _, id := range userIDs {
		if c, ok := m.competitions[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func newTestUseCase(gateway *mockGateway, taskRepo *mockTaskRepo, userRepo *mockUserRepo) *implUseCase {
	return New(&mockLogger{}, gateway, taskRepo, userRepo, nil)
}

func intPtr(v int) *int {
	return &v
}
