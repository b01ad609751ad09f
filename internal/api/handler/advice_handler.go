package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/blaisecz/sleep-records/internal/domain"
	"github.com/blaisecz/sleep-records/internal/langfuse"
	"github.com/blaisecz/sleep-records/internal/service"
	"github.com/blaisecz/sleep-records/pkg/logger"
	"github.com/blaisecz/sleep-records/pkg/response"
	"go.opentelemetry.io/otel/trace"
)

const (
	msgAdviceReady  = "AI 수면 분석이 완료되었습니다"
	msgAdviceFailed = "AI 조언 생성 중 오류가 발생했습니다"
)

// AdviceHandler serves the sleep advisor and collects feedback on its answers.
type AdviceHandler struct {
	advisor  service.AdvisorService
	langfuse langfuse.Client
	log      *logger.Logger
}

func NewAdviceHandler(advisor service.AdvisorService, langfuseClient langfuse.Client, log *logger.Logger) *AdviceHandler {
	return &AdviceHandler{
		advisor:  advisor,
		langfuse: langfuseClient,
		log:      log.Component("advice-handler"),
	}
}

// AdviceResponse is the advisor output plus the trace ID used for feedback.
// @Description Sleep advice; traceId is present when tracing is enabled.
type AdviceResponse struct {
	domain.SleepAdvice
	TraceID string `json:"traceId,omitempty" example:"4bf92f3577b34da6a3ce929d0e0e4736"`
}

// Get handles GET /api/ai/ai-advice
// @Summary Get AI sleep advice
// @Description Analyze every stored record. Falls back to locally computed advice when the model is unavailable.
// @Tags ai
// @Produce json
// @Success 200 {object} response.Success{data=AdviceResponse} "Advice"
// @Failure 500 {object} response.Failure "Server error"
// @Router /ai/ai-advice [get]
func (h *AdviceHandler) Get(w http.ResponseWriter, r *http.Request) {
	advice, err := h.advisor.Advise(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Advice generation failed")
		response.InternalError(msgAdviceFailed).Write(w)
		return
	}

	result := AdviceResponse{SleepAdvice: *advice}
	if sc := trace.SpanFromContext(r.Context()).SpanContext(); sc.IsValid() {
		result.TraceID = sc.TraceID().String()
	}
	response.OK(w, result, msgAdviceReady)
}

// FeedbackRequest rates a previous advice response.
// @Description User rating for an advice response.
type FeedbackRequest struct {
	// Trace ID from the advice response
	TraceID string `json:"traceId" example:"4bf92f3577b34da6a3ce929d0e0e4736"`
	// Rating from 1 to 5
	Score int `json:"score" example:"4" minimum:"1" maximum:"5"`
	// Optional comment
	Comment string `json:"comment,omitempty" example:"도움이 되었어요"`
}

// Feedback handles POST /api/ai/ai-advice/feedback
// @Summary Rate AI sleep advice
// @Description Forward a 1-5 rating to Langfuse. Accepted even when Langfuse is disabled.
// @Tags ai
// @Accept json
// @Produce json
// @Param body body FeedbackRequest true "Feedback"
// @Success 204 "Feedback accepted"
// @Failure 400 {object} response.Failure "Invalid request"
// @Router /ai/ai-advice/feedback [post]
func (h *AdviceHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(msgInvalidBody).Write(w)
		return
	}

	req.TraceID = strings.TrimSpace(req.TraceID)
	if req.TraceID == "" {
		response.BadRequest("traceId는 필수 항목입니다.").Write(w)
		return
	}
	if req.Score < 1 || req.Score > 5 {
		response.BadRequest("평점은 1에서 5 사이의 값이어야 합니다.").Write(w)
		return
	}

	if err := h.langfuse.CreateScore(r.Context(), langfuse.ScoreInput{
		TraceID: req.TraceID,
		Name:    langfuse.FeedbackScoreName,
		Value:   float64(req.Score),
		Comment: req.Comment,
	}); err != nil {
		h.log.Warn().Err(err).Str("trace_id", req.TraceID).Msg("Failed to forward advice feedback")
	}

	w.WriteHeader(http.StatusNoContent)
}
