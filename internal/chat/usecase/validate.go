package usecase

import (
	"context"
	"fmt"
	"strings"

	"conversational-task-management/internal/chat"
	"conversational-task-management/internal/model"
)

// validateDraft runs the ordered gate sequence against a candidate
// draft. The first failing gate wins; later gates assume earlier ones
// already hold. Rejections are normal outcomes, not errors; an error
// here means a collaborator lookup failed.
func (uc *implUseCase) validateDraft(ctx context.Context, intent chat.ParsedIntent, draft *chat.TaskDraft, est chat.Estimate, recipientIDs []string) (chat.ValidationOutcome, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return reject(intent, replyTitleMissing), nil
	}

	if draft.DueDate == nil {
		return reject(intent, replyDueDateMissing), nil
	}

	if fragment := uc.findBannedFragment(draft.Title, draft.Description); fragment != "" {
		uc.l.Infof(ctx, "validateDraft: banned fragment %q in draft %q", fragment, draft.Title)
		return reject(intent, replyBannedContent), nil
	}

	if strings.TrimSpace(draft.Description) == "" {
		return reject(intent, replyDescriptionMissing), nil
	}

	if isThinDescription(draft.Title, draft.Description) {
		return reject(intent, replyDescriptionTooThin), nil
	}

	if est.Points == nil {
		explanation := strings.TrimSpace(est.Explanation)
		if explanation == "" {
			explanation = replyProcessingFallback
		}
		return reject(intent, explanation), nil
	}

	users, err := uc.userRepo.GetByIDs(ctx, recipientIDs)
	if err != nil {
		return chat.ValidationOutcome{}, err
	}
	if missing := missingIDs(recipientIDs, users); len(missing) > 0 {
		return reject(intent, fmt.Sprintf(replyRecipientsNotFound, strings.Join(missing, ", "))), nil
	}

	competitions, err := uc.userRepo.GetEnrolledCompetitions(ctx, recipientIDs)
	if err != nil {
		return chat.ValidationOutcome{}, err
	}
	for _, id := range recipientIDs {
		comp, enrolled := competitions[id]
		if !enrolled {
			continue
		}
		due := *draft.DueDate
		if due.Before(comp.StartDate) || due.After(comp.EndDate) {
			return reject(intent, fmt.Sprintf(replyCompetitionWindow,
				comp.Name,
				comp.StartDate.Format("02.01.2006"),
				comp.EndDate.Format("02.01.2006"),
			)), nil
		}
	}

	return chat.ValidationOutcome{Accepted: true}, nil
}

// reject composes the outcome from the provider's own reply plus the
// specific human-actionable explanation.
func reject(intent chat.ParsedIntent, explanation string) chat.ValidationOutcome {
	reply := strings.TrimSpace(intent.Reply)
	if reply == "" {
		reply = explanation
	} else {
		reply = reply + " " + explanation
	}
	return chat.ValidationOutcome{Accepted: false, RejectionReply: reply}
}

func (uc *implUseCase) findBannedFragment(title, description string) string {
	haystack := normalizeText(title) + " " + normalizeText(description)
	for _, fragment := range uc.banned {
		if strings.Contains(haystack, fragment) {
			return fragment
		}
	}
	return ""
}

// isThinDescription flags a description that is character-identical to
// the title after normalization and at most 3 words long.
func isThinDescription(title, description string) bool {
	normTitle := normalizeText(title)
	normDesc := normalizeText(description)
	return normDesc == normTitle && len(strings.Fields(normDesc)) <= 3
}

// normalizeText lowercases and collapses whitespace runs to single spaces.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func missingIDs(requested []string, found []model.User) []string {
	exists := make(map[string]bool, len(found))
	for _, u := range found {
		exists[u.ID] = true
	}

	var missing []string
	for _, id := range requested {
		if !exists[id] {
			missing = append(missing, id)
		}
	}
	return missing
}
