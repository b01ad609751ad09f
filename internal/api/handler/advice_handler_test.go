package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blaisecz/sleep-records/internal/domain"
	"github.com/blaisecz/sleep-records/internal/langfuse"
	"github.com/blaisecz/sleep-records/pkg/logger"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

var sampleAdvice = &domain.SleepAdvice{
	Advice:          "평균 7.5시간의 수면을 취하고 계시네요.",
	SleepQuality:    domain.QualityGood,
	Recommendations: []string{"규칙적인 수면 시간 유지하기"},
	Insights:        []string{"총 3일간의 수면 데이터가 수집되었습니다"},
}

func newAdviceRouter(advisor *MockAdvisorService, lf *mockLangfuseClient) http.Handler {
	h := NewAdviceHandler(advisor, lf, logger.Nop())
	r := chi.NewRouter()
	r.Get("/ai/ai-advice", h.Get)
	r.Post("/ai/ai-advice/feedback", h.Feedback)
	return r
}

func TestAdviceHandler_Get(t *testing.T) {
	router := newAdviceRouter(&MockAdvisorService{advice: sampleAdvice}, &mockLangfuseClient{})

	w, env := do(t, router, http.MethodGet, "/ai/ai-advice", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !env.Success || env.Message != "AI 수면 분석이 완료되었습니다" {
		t.Errorf("unexpected envelope %+v", env)
	}

	var data AdviceResponse
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if data.SleepQuality != domain.QualityGood || data.Advice != sampleAdvice.Advice {
		t.Errorf("unexpected advice %+v", data)
	}
	if data.TraceID != "" {
		t.Errorf("expected no trace ID without a span, got %s", data.TraceID)
	}
}

func TestAdviceHandler_GetIncludesTraceID(t *testing.T) {
	router := newAdviceRouter(&MockAdvisorService{advice: sampleAdvice}, &mockLangfuseClient{enabled: true})

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	req := httptest.NewRequest(http.MethodGet, "/ai/ai-advice", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var env struct {
		Data AdviceResponse `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if env.Data.TraceID != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("expected trace ID from span context, got %q", env.Data.TraceID)
	}
}

func TestAdviceHandler_GetFailure(t *testing.T) {
	router := newAdviceRouter(&MockAdvisorService{err: errors.New("db down")}, &mockLangfuseClient{})

	w, env := do(t, router, http.MethodGet, "/ai/ai-advice", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if env.Error != "AI 조언 생성 중 오류가 발생했습니다" {
		t.Errorf("unexpected error %q", env.Error)
	}
}

func TestAdviceHandler_Feedback(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantStatusCode int
		wantScores     int
	}{
		{"valid rating", `{"traceId": "abc", "score": 4, "comment": "좋아요"}`, http.StatusNoContent, 1},
		{"missing trace", `{"score": 4}`, http.StatusBadRequest, 0},
		{"blank trace", `{"traceId": "  ", "score": 4}`, http.StatusBadRequest, 0},
		{"score too low", `{"traceId": "abc", "score": 0}`, http.StatusBadRequest, 0},
		{"score too high", `{"traceId": "abc", "score": 6}`, http.StatusBadRequest, 0},
		{"invalid JSON", `{`, http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lf := &mockLangfuseClient{enabled: true}
			router := newAdviceRouter(&MockAdvisorService{advice: sampleAdvice}, lf)

			req := httptest.NewRequest(http.MethodPost, "/ai/ai-advice/feedback", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatusCode, w.Code, w.Body.String())
			}
			if len(lf.scores) != tt.wantScores {
				t.Fatalf("expected %d scores, got %d", tt.wantScores, len(lf.scores))
			}
			if tt.wantScores == 1 {
				score := lf.scores[0]
				if score.TraceID != "abc" || score.Value != 4 || score.Name != langfuse.FeedbackScoreName {
					t.Errorf("unexpected score %+v", score)
				}
			}
		})
	}
}

func TestAdviceHandler_FeedbackIgnoresLangfuseErrors(t *testing.T) {
	lf := &mockLangfuseClient{enabled: true, err: errors.New("ingestion down")}
	router := newAdviceRouter(&MockAdvisorService{}, lf)

	req := httptest.NewRequest(http.MethodPost, "/ai/ai-advice/feedback", strings.NewReader(`{"traceId": "abc", "score": 5}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body HealthStatus
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if body.Status != "ok" || body.Timestamp.IsZero() {
		t.Errorf("unexpected body %+v", body)
	}
}
