package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"conversational-task-management/internal/chat"
	"conversational-task-management/pkg/llmprovider"
)

func TestEstimateComplexity(t *testing.T) {
	tests := []struct {
		name       string
		response   string
		wantPoints *int
	}{
		{
			name:       "normal score",
			response:   `{"estimated_points": 35, "explanation": "Средняя задача.", "confidence": 0.8}`,
			wantPoints: intPtr(35),
		},
		{
			name:       "score clamped high",
			response:   `{"estimated_points": 250, "explanation": "ok", "confidence": 0.9}`,
			wantPoints: intPtr(100),
		},
		{
			name:       "score clamped low",
			response:   `{"estimated_points": 0, "explanation": "ok", "confidence": 0.9}`,
			wantPoints: intPtr(1),
		},
		{
			name:       "meaningless keeps null",
			response:   `{"estimated_points": null, "explanation": "Задача не имеет смысла.", "confidence": 0.9}`,
			wantPoints: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := &mockGateway{responses: []string{tt.response}}
			uc := newTestUseCase(gateway, newMockTaskRepo(), newMockUserRepo())

			est, err := uc.estimateComplexity(context.Background(), "Купить фрукты", "К празднику")
			if err != nil {
				t.Fatalf("estimateComplexity: %v", err)
			}

			switch {
			case tt.wantPoints == nil && est.Points != nil:
				t.Errorf("expected nil points, got %d", *est.Points)
			case tt.wantPoints != nil && (est.Points == nil || *est.Points != *tt.wantPoints):
				t.Errorf("expected %d points, got %v", *tt.wantPoints, est.Points)
			}
			if est.ModelUsed != "test-model" {
				t.Errorf("expected gateway primary model recorded, got %q", est.ModelUsed)
			}
		})
	}
}

func TestEstimateComplexityRequestShape(t *testing.T) {
	gateway := &mockGateway{responses: []string{`{"estimated_points": 10, "explanation": "ok", "confidence": 1}`}}
	uc := newTestUseCase(gateway, newMockTaskRepo(), newMockUserRepo())

	if _, err := uc.estimateComplexity(context.Background(), "Название", "Описание"); err != nil {
		t.Fatalf("estimateComplexity: %v", err)
	}

	if len(gateway.calls) != 1 {
		t.Fatalf("expected 1 gateway call, got %d", len(gateway.calls))
	}
	req := gateway.calls[0]
	if req.Temperature != estimateTemperature {
		t.Errorf("expected temperature %v, got %v", estimateTemperature, req.Temperature)
	}
	if req.MaxTokens != estimateMaxTokens {
		t.Errorf("expected max tokens %d, got %d", estimateMaxTokens, req.MaxTokens)
	}
	user := req.Messages[len(req.Messages)-1].Content
	if !strings.Contains(user, "Название:") || !strings.Contains(user, "Описание:") {
		t.Errorf("unexpected user prompt %q", user)
	}
}

func TestEstimateComplexityConfidenceClamped(t *testing.T) {
	gateway := &mockGateway{responses: []string{`{"estimated_points": 10, "explanation": "ok", "confidence": 7.5}`}}
	uc := newTestUseCase(gateway, newMockTaskRepo(), newMockUserRepo())

	est, err := uc.estimateComplexity(context.Background(), "a", "b")
	if err != nil {
		t.Fatalf("estimateComplexity: %v", err)
	}
	if est.Confidence != 1 {
		t.Errorf("expected confidence clamped to 1, got %v", est.Confidence)
	}
}

func TestEstimateComplexityMalformedPayload(t *testing.T) {
	gateway := &mockGateway{responses: []string{`"just a string"`}}
	uc := newTestUseCase(gateway, newMockTaskRepo(), newMockUserRepo())

	_, err := uc.estimateComplexity(context.Background(), "a", "b")
	if !errors.Is(err, chat.ErrAssistantUnavailable) {
		t.Fatalf("expected assistant-unavailable, got %v", err)
	}
	if !errors.Is(err, chat.ErrAssistantUnavailable) || errors.Is(err, chat.ErrAssistantRateLimited) {
		t.Fatal("malformed payload must not look rate limited")
	}
}

func TestEstimateComplexityGatewayError(t *testing.T) {
	gatewayErr := errors.Join(llmprovider.ErrRateLimitExceeded, errors.New("groq 429"))
	gateway := &mockGateway{errs: []error{gatewayErr}}
	uc := newTestUseCase(gateway, newMockTaskRepo(), newMockUserRepo())

	_, err := uc.estimateComplexity(context.Background(), "a", "b")
	if !errors.Is(err, chat.ErrAssistantRateLimited) {
		t.Fatalf("expected rate-limited, got %v", err)
	}
}
