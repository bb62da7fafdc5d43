package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"conversational-task-management/internal/chat"
	"conversational-task-management/internal/model"
	taskRepository "conversational-task-management/internal/task/repository"
)

// HandleMessage runs the full pipeline for one user message.
func (uc *implUseCase) HandleMessage(ctx context.Context, sc model.Scope, input chat.HandleMessageInput) (chat.HandleMessageOutput, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return chat.HandleMessageOutput{}, chat.ErrEmptyMessage
	}

	recipients := resolveRecipients(sc, input.RecipientIDs)

	uc.l.Infof(ctx, "HandleMessage: user=%s recipients=%d message_length=%d", sc.UserID, len(recipients), len(message))

	statuses, err := uc.taskRepo.ListStatuses(ctx)
	if err != nil {
		return chat.HandleMessageOutput{}, err
	}

	intent, err := uc.parseIntent(ctx, statuses, message)
	if err != nil {
		return chat.HandleMessageOutput{}, err
	}
	if intent.Action != chat.ActionCreateTask {
		return chat.HandleMessageOutput{Reply: intent.Reply}, nil
	}

	draft := intent.Draft

	est, err := uc.estimateComplexity(ctx, draft.Title, draft.Description)
	if err != nil {
		return chat.HandleMessageOutput{}, err
	}

	outcome, err := uc.validateDraft(ctx, intent, draft, est, recipients)
	if err != nil {
		return chat.HandleMessageOutput{}, err
	}
	if !outcome.Accepted {
		uc.l.Infof(ctx, "HandleMessage: draft rejected: %s", outcome.RejectionReply)
		return chat.HandleMessageOutput{Reply: outcome.RejectionReply}, nil
	}

	draft.EstimatedPoints = est.Points
	draft.Confidence = est.Confidence

	status, err := uc.resolveStatus(ctx, draft.StatusCode)
	if err != nil {
		return chat.HandleMessageOutput{}, err
	}

	tasks, err := uc.taskRepo.CreateBatch(ctx, taskRepository.CreateBatchOptions{
		RecipientIDs:    recipients,
		Title:           draft.Title,
		Description:     draft.Description,
		StatusID:        status.ID,
		DueDate:         draft.DueDate,
		EstimatedPoints: draft.EstimatedPoints,
		Metadata:        estimateMetadata(est),
		Tags:            draft.Tags,
	})
	if err != nil {
		uc.l.Errorf(ctx, "HandleMessage: materialization failed: %v", err)
		return chat.HandleMessageOutput{}, fmt.Errorf("%w: %v", chat.ErrTaskPersistenceFailed, err)
	}

	uc.l.Infof(ctx, "HandleMessage: created %d tasks for draft %q", len(tasks), draft.Title)

	return chat.HandleMessageOutput{
		Reply:   composeCreatedReply(intent.Reply, draft, status, len(recipients)),
		Created: tasks,
	}, nil
}

// resolveRecipients defaults to the requester and strips duplicates
// while keeping the caller's order.
func resolveRecipients(sc model.Scope, ids []string) []string {
	if len(ids) == 0 {
		return []string{sc.UserID}
	}

	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	if len(out) == 0 {
		return []string{sc.UserID}
	}
	return out
}

// resolveStatus maps the parsed status code to a status row. Unknown
// codes fall back to the first existing status, then to creating the
// default one, mirroring how the task board behaves with a bare table.
func (uc *implUseCase) resolveStatus(ctx context.Context, code string) (model.TaskStatus, error) {
	if code == "" {
		code = fallbackStatusCode
	}

	if st, ok := uc.statusCache.Get(code); ok {
		return st, nil
	}

	st, err := uc.taskRepo.GetStatusByCode(ctx, code)
	if err == nil {
		uc.statusCache.Add(code, st)
		return st, nil
	}
	if !errors.Is(err, taskRepository.ErrStatusNotFound) {
		return model.TaskStatus{}, err
	}

	statuses, err := uc.taskRepo.ListStatuses(ctx)
	if err != nil {
		return model.TaskStatus{}, err
	}
	if len(statuses) > 0 {
		return statuses[0], nil
	}

	return uc.taskRepo.EnsureStatus(ctx, fallbackStatusCode, fallbackStatusName)
}

// estimateMetadata serializes the estimator verdict for the audit trail.
func estimateMetadata(est chat.Estimate) string {
	payload := map[string]any{
		"estimated_points": est.Points,
		"explanation":      est.Explanation,
		"model_used":       est.ModelUsed,
		"confidence":       est.Confidence,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	return string(raw)
}

// composeCreatedReply builds the confirmation text: the provider's own
// reply followed by the created task summary.
func composeCreatedReply(providerReply string, draft *chat.TaskDraft, status model.TaskStatus, recipients int) string {
	var b strings.Builder

	if reply := strings.TrimSpace(providerReply); reply != "" {
		b.WriteString(reply)
		b.WriteString(" ")
	}

	fmt.Fprintf(&b, "Задача «%s» создана", draft.Title)
	if recipients > 1 {
		fmt.Fprintf(&b, " для %d пользователей", recipients)
	}
	b.WriteString(".")

	if draft.DueDate != nil {
		fmt.Fprintf(&b, " Срок: %s.", draft.DueDate.Format("02.01.2006"))
	}
	if len(draft.Tags) > 0 {
		fmt.Fprintf(&b, " Теги: %s.", strings.Join(draft.Tags, ", "))
	}
	fmt.Fprintf(&b, " Статус: %s.", status.Name)

	return b.String()
}
