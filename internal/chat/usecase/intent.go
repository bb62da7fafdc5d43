package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"conversational-task-management/internal/chat"
	"conversational-task-management/internal/model"
	"conversational-task-management/pkg/llmprovider"
)

// Provider payload shapes for the intent call.
type intentPayload struct {
	Reply    string          `json:"reply"`
	Commands []intentCommand `json:"commands"`
}

type intentCommand struct {
	Action   string         `json:"action"`
	TaskData intentTaskData `json:"task_data"`
}

type intentTaskData struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	StatusCode  string   `json:"status_code"`
	DueDate     *string  `json:"due_date"`
	Tags        []string `json:"tags"`
}

// parseIntent asks the provider to turn the user message into a task
// creation command and normalizes the answer. Only the first command is
// honored; anything but create_task ends the pipeline as unsupported.
func (uc *implUseCase) parseIntent(ctx context.Context, statuses []model.TaskStatus, message string) (chat.ParsedIntent, error) {
	raw, err := uc.gateway.CompleteJSON(ctx, &llmprovider.Request{
		Messages: []llmprovider.Message{
			{Role: "system", Content: uc.buildIntentPrompt(statuses)},
			{Role: "user", Content: message},
		},
		Temperature: intentTemperature,
		MaxTokens:   intentMaxTokens,
	})
	if err != nil {
		return chat.ParsedIntent{}, mapGatewayErr(err)
	}

	var payload intentPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		uc.l.Warnf(ctx, "parseIntent: payload does not match expected shape: %v", err)
		return chat.ParsedIntent{}, mapGatewayErr(fmt.Errorf("%w: %v", llmprovider.ErrMalformedResponse, err))
	}

	reply := payload.Reply
	if reply == "" {
		reply = replyProcessingFallback
	}

	if len(payload.Commands) == 0 {
		return chat.ParsedIntent{Reply: reply, Action: chat.ActionUnsupported}, nil
	}

	cmd := payload.Commands[0]
	if cmd.Action != string(chat.ActionCreateTask) {
		return chat.ParsedIntent{Reply: replyUnsupportedAction, Action: chat.ActionUnsupported}, nil
	}

	draft := &chat.TaskDraft{
		Title:       strings.TrimSpace(cmd.TaskData.Title),
		Description: strings.TrimSpace(cmd.TaskData.Description),
		StatusCode:  strings.TrimSpace(cmd.TaskData.StatusCode),
		Tags:        normalizeTags(cmd.TaskData.Tags),
		DueDate:     uc.parseDueDate(cmd.TaskData.DueDate, time.Now()),
	}

	return chat.ParsedIntent{Reply: reply, Action: chat.ActionCreateTask, Draft: draft}, nil
}

func (uc *implUseCase) buildIntentPrompt(statuses []model.TaskStatus) string {
	codes := make([]string, 0, len(statuses))
	lines := make([]string, 0, len(statuses))
	for _, st := range statuses {
		codes = append(codes, st.Code)
		lines = append(lines, fmt.Sprintf("%s (%s)", st.Code, st.Name))
	}

	return fmt.Sprintf(intentSystemPrompt,
		strings.Join(lines, ", "),
		strings.Join(urgencyTags, ", "),
		strings.Join(codes, ", "),
	)
}

// parseDueDate accepts the prompt's contract format with a date-only
// fallback. Relative phrases the provider echoes verbatim are resolved
// against now; anything else is treated as no date, never guessed.
func (uc *implUseCase) parseDueDate(raw *string, now time.Time) *time.Time {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" || s == "null" {
		return nil
	}

	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}

	if t, err := uc.dates.Parse(s, now); err == nil {
		return &t
	}
	return nil
}

// normalizeTags lowercases, trims and deduplicates while keeping the
// provider's order. Case-variant duplicates collapse to one tag.
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// mapGatewayErr folds provider taxonomy into the chat domain errors the
// delivery layer translates to HTTP codes.
func mapGatewayErr(err error) error {
	switch {
	case errors.Is(err, llmprovider.ErrRateLimitExceeded):
		return fmt.Errorf("%w: %v", chat.ErrAssistantRateLimited, err)
	default:
		return fmt.Errorf("%w: %v", chat.ErrAssistantUnavailable, err)
	}
}
