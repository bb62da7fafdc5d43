package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"conversational-task-management/internal/chat"
	"conversational-task-management/internal/model"
	"conversational-task-management/pkg/llmprovider"
)

const estimatePayloadOK = `{"estimated_points": 35, "explanation": "Стандартная задача", "confidence": 0.9}`

func TestHandleMessageCreatesTask(t *testing.T) {
	gateway := &mockGateway{responses: []string{createTaskPayload, estimatePayloadOK}}
	taskRepo := newMockTaskRepo()
	uc := newTestUseCase(gateway, taskRepo, newMockUserRepo("u-1"))

	out, err := uc.HandleMessage(context.Background(), model.Scope{UserID: "u-1"}, chat.HandleMessageInput{
		Message: "Создай задачу 'Купить фрукты' на 15.12.2025, статус В работе, тег срочно",
	})
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}

	if len(out.Created) != 1 {
		t.Fatalf("expected 1 created task, got %d", len(out.Created))
	}
	created := out.Created[0]
	if created.AssigneeID != "u-1" {
		t.Errorf("expected task assigned to requester, got %q", created.AssigneeID)
	}
	if created.EstimatedPoints == nil || *created.EstimatedPoints != 35 {
		t.Errorf("expected estimated points 35, got %v", created.EstimatedPoints)
	}

	if len(taskRepo.batches) != 1 {
		t.Fatalf("expected 1 batch, got %d", len(taskRepo.batches))
	}
	batch := taskRepo.batches[0]
	if batch.StatusID != 2 {
		t.Errorf("expected in_progress status id 2, got %d", batch.StatusID)
	}
	if !strings.Contains(batch.Metadata, "test-model") {
		t.Errorf("expected estimator provenance in metadata, got %q", batch.Metadata)
	}

	for _, fragment := range []string{"Задача «Купить фрукты» создана", "Срок: 15.12.2025", "Теги: срочно", "Статус: В работе"} {
		if !strings.Contains(out.Reply, fragment) {
			t.Errorf("expected reply to contain %q, got %q", fragment, out.Reply)
		}
	}

	// Two sequential gateway calls: intent parse, then estimate.
	if len(gateway.calls) != 2 {
		t.Fatalf("expected 2 gateway calls, got %d", len(gateway.calls))
	}
}

func TestHandleMessageFanOut(t *testing.T) {
	gateway := &mockGateway{responses: []string{createTaskPayload, estimatePayloadOK}}
	taskRepo := newMockTaskRepo()
	uc := newTestUseCase(gateway, taskRepo, newMockUserRepo("u-1", "u-2", "u-3"))

	out, err := uc.HandleMessage(context.Background(), model.Scope{UserID: "u-1"}, chat.HandleMessageInput{
		Message:      "Создай задачу на 15.12.2025",
		RecipientIDs: []string{"u-2", "u-3", "u-2"},
	})
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}

	if len(out.Created) != 2 {
		t.Fatalf("expected duplicate recipient collapsed to 2 tasks, got %d", len(out.Created))
	}
	if !strings.Contains(out.Reply, "для 2 пользователей") {
		t.Errorf("expected fan-out count in reply, got %q", out.Reply)
	}
}

func TestHandleMessageEmptyInput(t *testing.T) {
	uc := newTestUseCase(&mockGateway{}, newMockTaskRepo(), newMockUserRepo())

	_, err := uc.HandleMessage(context.Background(), model.Scope{UserID: "u-1"}, chat.HandleMessageInput{Message: "   "})
	if !errors.Is(err, chat.ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestHandleMessageUnsupportedStopsPipeline(t *testing.T) {
	gateway := &mockGateway{responses: []string{`{"reply": "Не могу создать такую задачу.", "commands": []}`}}
	taskRepo := newMockTaskRepo()
	uc := newTestUseCase(gateway, taskRepo, newMockUserRepo("u-1"))

	out, err := uc.HandleMessage(context.Background(), model.Scope{UserID: "u-1"}, chat.HandleMessageInput{Message: "привет"})
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if len(out.Created) != 0 {
		t.Fatal("expected no tasks")
	}
	if out.Reply != "Не могу создать такую задачу." {
		t.Errorf("unexpected reply %q", out.Reply)
	}

	// The estimator must not run once the parser bails out.
	if len(gateway.calls) != 1 {
		t.Fatalf("expected 1 gateway call, got %d", len(gateway.calls))
	}
	if len(taskRepo.batches) != 0 {
		t.Fatal("expected no batches")
	}
}

func TestHandleMessageRejectionCreatesNothing(t *testing.T) {
	// Parsed draft has no due date, so the pipeline rejects after the
	// estimate and writes nothing.
	noDatePayload := `{
		"reply": "Создаю задачу 'Купить фрукты'",
		"commands": [
			{
				"action": "create_task",
				"task_data": {
					"title": "Купить фрукты",
					"description": "Купить фрукты к празднику",
					"status_code": "todo",
					"due_date": null,
					"tags": []
				}
			}
		]
	}`
	gateway := &mockGateway{responses: []string{noDatePayload, estimatePayloadOK}}
	taskRepo := newMockTaskRepo()
	uc := newTestUseCase(gateway, taskRepo, newMockUserRepo("u-1"))

	out, err := uc.HandleMessage(context.Background(), model.Scope{UserID: "u-1"}, chat.HandleMessageInput{Message: "Создай задачу 'Купить фрукты'"})
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if len(out.Created) != 0 || len(taskRepo.batches) != 0 {
		t.Fatal("expected zero records on rejection")
	}
	if !strings.Contains(out.Reply, replyDueDateMissing) {
		t.Errorf("expected due-date rejection, got %q", out.Reply)
	}
}

func TestHandleMessageMeaninglessDraft(t *testing.T) {
	meaningless := `{"estimated_points": null, "explanation": "Задача не описывает реальное действие", "confidence": 0.2}`
	gateway := &mockGateway{responses: []string{createTaskPayload, meaningless}}
	taskRepo := newMockTaskRepo()
	uc := newTestUseCase(gateway, taskRepo, newMockUserRepo("u-1"))

	out, err := uc.HandleMessage(context.Background(), model.Scope{UserID: "u-1"}, chat.HandleMessageInput{Message: "фывап"})
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if len(out.Created) != 0 || len(taskRepo.batches) != 0 {
		t.Fatal("expected no tasks for a meaningless draft")
	}
	if !strings.Contains(out.Reply, "Задача не описывает реальное действие") {
		t.Errorf("expected the estimator explanation in reply, got %q", out.Reply)
	}
}

func TestHandleMessageEstimatorFailurePropagates(t *testing.T) {
	gateway := &mockGateway{
		responses: []string{createTaskPayload, ""},
		errs:      []error{nil, fmt.Errorf("%w: all retries spent", llmprovider.ErrRateLimitExceeded)},
	}
	uc := newTestUseCase(gateway, newMockTaskRepo(), newMockUserRepo("u-1"))

	_, err := uc.HandleMessage(context.Background(), model.Scope{UserID: "u-1"}, chat.HandleMessageInput{Message: "Создай задачу на 15.12.2025"})
	if !errors.Is(err, chat.ErrAssistantRateLimited) {
		t.Fatalf("expected ErrAssistantRateLimited, got %v", err)
	}
}

func TestHandleMessagePersistenceFailure(t *testing.T) {
	gateway := &mockGateway{responses: []string{createTaskPayload, estimatePayloadOK}}
	taskRepo := newMockTaskRepo()
	taskRepo.batchErr = errors.New("disk full")
	uc := newTestUseCase(gateway, taskRepo, newMockUserRepo("u-1"))

	_, err := uc.HandleMessage(context.Background(), model.Scope{UserID: "u-1"}, chat.HandleMessageInput{Message: "Создай задачу на 15.12.2025"})
	if !errors.Is(err, chat.ErrTaskPersistenceFailed) {
		t.Fatalf("expected ErrTaskPersistenceFailed, got %v", err)
	}
}

func TestHandleMessageStatusFallback(t *testing.T) {
	unknownStatus := strings.Replace(createTaskPayload, `"status_code": "in_progress"`, `"status_code": "archived"`, 1)
	gateway := &mockGateway{responses: []string{unknownStatus, estimatePayloadOK}}
	taskRepo := newMockTaskRepo()
	uc := newTestUseCase(gateway, taskRepo, newMockUserRepo("u-1"))

	out, err := uc.HandleMessage(context.Background(), model.Scope{UserID: "u-1"}, chat.HandleMessageInput{Message: "Создай задачу на 15.12.2025"})
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if len(taskRepo.batches) != 1 {
		t.Fatalf("expected 1 batch, got %d", len(taskRepo.batches))
	}
	// Unknown code falls back to the first existing status.
	if taskRepo.batches[0].StatusID != 1 {
		t.Errorf("expected fallback to status id 1, got %d", taskRepo.batches[0].StatusID)
	}
	if !strings.Contains(out.Reply, "Статус: К выполнению") {
		t.Errorf("expected fallback status name in reply, got %q", out.Reply)
	}
}
