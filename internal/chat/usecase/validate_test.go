package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"conversational-task-management/internal/chat"
	"conversational-task-management/internal/model"
)

func validDraft() *chat.TaskDraft {
	due := time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)
	return &chat.TaskDraft{
		Title:       "Подготовить отчет",
		Description: "Собрать данные за квартал и оформить презентацию",
		StatusCode:  "todo",
		DueDate:     &due,
		Tags:        []string{"срочно"},
	}
}

func validEstimate() chat.Estimate {
	return chat.Estimate{Points: intPtr(40), Explanation: "ok", Confidence: 0.9, ModelUsed: "test-model"}
}

func TestValidateDraftGates(t *testing.T) {
	intent := chat.ParsedIntent{Reply: "Создаю задачу 'Подготовить отчет'", Action: chat.ActionCreateTask}

	tests := []struct {
		name        string
		mutate      func(d *chat.TaskDraft)
		estimate    func() chat.Estimate
		wantInReply string
	}{
		{
			name:        "missing title",
			mutate:      func(d *chat.TaskDraft) { d.Title = "  " },
			estimate:    validEstimate,
			wantInReply: replyTitleMissing,
		},
		{
			name:        "missing due date",
			mutate:      func(d *chat.TaskDraft) { d.DueDate = nil },
			estimate:    validEstimate,
			wantInReply: replyDueDateMissing,
		},
		{
			name:        "banned fragment in title",
			mutate:      func(d *chat.TaskDraft) { d.Title = "Купить Сигареты" },
			estimate:    validEstimate,
			wantInReply: replyBannedContent,
		},
		{
			name:        "banned fragment in description",
			mutate:      func(d *chat.TaskDraft) { d.Description = "заказать cigarette онлайн" },
			estimate:    validEstimate,
			wantInReply: replyBannedContent,
		},
		{
			name:        "missing description",
			mutate:      func(d *chat.TaskDraft) { d.Description = "" },
			estimate:    validEstimate,
			wantInReply: replyDescriptionMissing,
		},
		{
			name: "description duplicates title",
			mutate: func(d *chat.TaskDraft) {
				d.Title = "Подготовить отчет"
				d.Description = "подготовить  Отчет"
			},
			estimate:    validEstimate,
			wantInReply: replyDescriptionTooThin,
		},
		{
			name:   "meaningless estimate",
			mutate: func(d *chat.TaskDraft) {},
			estimate: func() chat.Estimate {
				return chat.Estimate{Points: nil, Explanation: "Формулировка не описывает реальное действие"}
			},
			wantInReply: "Формулировка не описывает реальное действие",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&mockGateway{}, newMockTaskRepo(), newMockUserRepo("u-1"))

			draft := validDraft()
			tt.mutate(draft)

			outcome, err := uc.validateDraft(context.Background(), intent, draft, tt.estimate(), []string{"u-1"})
			if err != nil {
				t.Fatalf("validateDraft: %v", err)
			}
			if outcome.Accepted {
				t.Fatal("expected rejection")
			}
			if !strings.Contains(outcome.RejectionReply, tt.wantInReply) {
				t.Fatalf("expected reply to contain %q, got %q", tt.wantInReply, outcome.RejectionReply)
			}
			if !strings.Contains(outcome.RejectionReply, intent.Reply) {
				t.Fatalf("expected provider reply to be kept, got %q", outcome.RejectionReply)
			}
		})
	}
}

func TestValidateDraftOrderTitleBeforeDueDate(t *testing.T) {
	uc := newTestUseCase(&mockGateway{}, newMockTaskRepo(), newMockUserRepo("u-1"))

	draft := validDraft()
	draft.Title = ""
	draft.DueDate = nil

	outcome, err := uc.validateDraft(context.Background(), chat.ParsedIntent{}, draft, validEstimate(), []string{"u-1"})
	if err != nil {
		t.Fatalf("validateDraft: %v", err)
	}
	if !strings.Contains(outcome.RejectionReply, replyTitleMissing) {
		t.Fatalf("expected the title gate to fire first, got %q", outcome.RejectionReply)
	}
}

func TestValidateDraftBannedScreenBeforeDescriptionGates(t *testing.T) {
	uc := newTestUseCase(&mockGateway{}, newMockTaskRepo(), newMockUserRepo("u-1"))

	draft := validDraft()
	draft.Title = "Купить табак"
	draft.Description = ""

	outcome, err := uc.validateDraft(context.Background(), chat.ParsedIntent{}, draft, validEstimate(), []string{"u-1"})
	if err != nil {
		t.Fatalf("validateDraft: %v", err)
	}
	if !strings.Contains(outcome.RejectionReply, replyBannedContent) {
		t.Fatalf("expected the banned-content gate to fire first, got %q", outcome.RejectionReply)
	}
}

func TestValidateDraftMissingRecipients(t *testing.T) {
	uc := newTestUseCase(&mockGateway{}, newMockTaskRepo(), newMockUserRepo("u-1"))

	outcome, err := uc.validateDraft(context.Background(), chat.ParsedIntent{}, validDraft(), validEstimate(), []string{"u-1", "u-ghost", "u-ghost2"})
	if err != nil {
		t.Fatalf("validateDraft: %v", err)
	}
	if outcome.Accepted {
		t.Fatal("expected rejection")
	}
	if !strings.Contains(outcome.RejectionReply, "u-ghost, u-ghost2") {
		t.Fatalf("expected missing ids listed, got %q", outcome.RejectionReply)
	}
}

func TestValidateDraftCompetitionWindow(t *testing.T) {
	userRepo := newMockUserRepo("u-1", "u-2")
	userRepo.competitions["u-2"] = model.Competition{
		ID:        7,
		Name:      "Q4 Sprint",
		StartDate: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
	}
	uc := newTestUseCase(&mockGateway{}, newMockTaskRepo(), userRepo)

	// Due 2025-12-15 is past u-2's window, so the whole batch rejects.
	outcome, err := uc.validateDraft(context.Background(), chat.ParsedIntent{}, validDraft(), validEstimate(), []string{"u-1", "u-2"})
	if err != nil {
		t.Fatalf("validateDraft: %v", err)
	}
	if outcome.Accepted {
		t.Fatal("expected rejection")
	}
	if !strings.Contains(outcome.RejectionReply, "Q4 Sprint") {
		t.Fatalf("expected competition name in reply, got %q", outcome.RejectionReply)
	}

	// Inside the window it passes.
	draft := validDraft()
	due := time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC)
	draft.DueDate = &due

	outcome, err = uc.validateDraft(context.Background(), chat.ParsedIntent{}, draft, validEstimate(), []string{"u-1", "u-2"})
	if err != nil {
		t.Fatalf("validateDraft: %v", err)
	}
	if !outcome.Accepted {
		t.Fatalf("expected acceptance, got %q", outcome.RejectionReply)
	}
}

func TestValidateDraftWindowBoundsInclusive(t *testing.T) {
	userRepo := newMockUserRepo("u-1")
	userRepo.competitions["u-1"] = model.Competition{
		ID:        1,
		Name:      "Bounds",
		StartDate: time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC),
	}
	uc := newTestUseCase(&mockGateway{}, newMockTaskRepo(), userRepo)

	outcome, err := uc.validateDraft(context.Background(), chat.ParsedIntent{}, validDraft(), validEstimate(), []string{"u-1"})
	if err != nil {
		t.Fatalf("validateDraft: %v", err)
	}
	if !outcome.Accepted {
		t.Fatalf("expected boundary date to be accepted, got %q", outcome.RejectionReply)
	}
}

func TestValidateDraftConfiguredBannedFragment(t *testing.T) {
	// Fragments from configuration may arrive in any case; matching is
	// against a lowercased haystack.
	uc := New(&mockLogger{}, &mockGateway{}, newMockTaskRepo(), newMockUserRepo("u-1"), []string{"Казино "})

	draft := validDraft()
	draft.Title = "Сходить в КАЗИНО"

	outcome, err := uc.validateDraft(context.Background(), chat.ParsedIntent{}, draft, validEstimate(), []string{"u-1"})
	if err != nil {
		t.Fatalf("validateDraft: %v", err)
	}
	if outcome.Accepted {
		t.Fatal("expected configured fragment to reject the draft")
	}
	if !strings.Contains(outcome.RejectionReply, replyBannedContent) {
		t.Fatalf("expected banned-content reply, got %q", outcome.RejectionReply)
	}
}
