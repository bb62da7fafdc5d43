package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"conversational-task-management/internal/chat"
	"conversational-task-management/pkg/llmprovider"
)

type estimatePayload struct {
	EstimatedPoints *float64 `json:"estimated_points"`
	Explanation     string   `json:"explanation"`
	Confidence      float64  `json:"confidence"`
}

// estimateComplexity scores a draft on the 1-100 rubric. Null points
// mean the provider judged the task meaningless; that verdict is kept,
// not replaced by a local guess. Gateway failures propagate untouched.
func (uc *implUseCase) estimateComplexity(ctx context.Context, title, description string) (chat.Estimate, error) {
	raw, err := uc.gateway.CompleteJSON(ctx, &llmprovider.Request{
		Messages: []llmprovider.Message{
			{Role: "system", Content: estimateSystemPrompt},
			{Role: "user", Content: fmt.Sprintf("Название: %s\nОписание: %s", title, description)},
		},
		Temperature: estimateTemperature,
		MaxTokens:   estimateMaxTokens,
	})
	if err != nil {
		return chat.Estimate{}, mapGatewayErr(err)
	}

	var payload estimatePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		uc.l.Warnf(ctx, "estimateComplexity: payload does not match expected shape: %v", err)
		return chat.Estimate{}, mapGatewayErr(fmt.Errorf("%w: %v", llmprovider.ErrMalformedResponse, err))
	}

	est := chat.Estimate{
		Explanation: payload.Explanation,
		Confidence:  clampFloat(payload.Confidence, 0, 1),
		ModelUsed:   uc.gateway.PrimaryModel(),
	}

	if payload.EstimatedPoints != nil {
		points := clampInt(int(*payload.EstimatedPoints), 1, 100)
		est.Points = &points
	}

	return est, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
