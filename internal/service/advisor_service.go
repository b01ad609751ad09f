package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/blaisecz/sleep-records/internal/cache"
	"github.com/blaisecz/sleep-records/internal/domain"
	"github.com/blaisecz/sleep-records/internal/langfuse"
	"github.com/blaisecz/sleep-records/internal/llm"
	"github.com/blaisecz/sleep-records/internal/metrics"
	"github.com/blaisecz/sleep-records/internal/repository"
	"github.com/blaisecz/sleep-records/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// AdviceTraceName is the Langfuse trace name for advice generations.
const AdviceTraceName = "sleep-advice"

// AdvisorService produces sleep advice from the full record history.
type AdvisorService interface {
	// Advise never fails because of the language model; a locally computed
	// answer is returned instead. Only store errors are returned.
	Advise(ctx context.Context) (*domain.SleepAdvice, error)
}

// AdvisorDeps groups the collaborators of the advisor. Cache, Langfuse and
// Logger are optional.
type AdvisorDeps struct {
	Repo         repository.SleepRecordRepository
	LLM          llm.AdviceLLM
	Cache        cache.AdviceCache
	Langfuse     langfuse.Client
	Logger       *logger.Logger
	SystemPrompt string
	Model        string
}

type advisorService struct {
	repo         repository.SleepRecordRepository
	llm          llm.AdviceLLM
	cache        cache.AdviceCache
	langfuse     langfuse.Client
	log          *logger.Logger
	systemPrompt string
	model        string
}

func NewAdvisorService(deps AdvisorDeps) AdvisorService {
	s := &advisorService{
		repo:         deps.Repo,
		llm:          deps.LLM,
		cache:        deps.Cache,
		langfuse:     deps.Langfuse,
		log:          deps.Logger,
		systemPrompt: deps.SystemPrompt,
		model:        deps.Model,
	}
	if s.llm == nil {
		s.llm = (*llm.OpenAIClient)(nil)
	}
	if s.cache == nil {
		s.cache = cache.NewNoopAdviceCache()
	}
	if s.langfuse == nil {
		s.langfuse = langfuse.NewClient(langfuse.Config{}, nil)
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	s.log = s.log.Component("advisor")
	if s.systemPrompt == "" {
		s.systemPrompt = DefaultAdviceSystemPrompt
	}
	return s
}

func (s *advisorService) Advise(ctx context.Context) (*domain.SleepAdvice, error) {
	ctx, span := otel.Tracer("sleep-records-api/advisor").Start(ctx, "AdvisorService.Advise")
	defer span.End()

	// The generation must be read before the records so that a mutation
	// landing during the model call keeps this advice out of the cache.
	generation, genErr := s.cache.Generation(ctx)
	if genErr != nil {
		s.log.Warn().Err(genErr).Msg("Advice cache generation read failed")
	}

	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sleep records: %w", err)
	}
	span.SetAttributes(attribute.Int("records.count", len(records)))

	if len(records) == 0 {
		return s.served(span, EmptyAdvice(), metrics.AdviceSourceEmpty), nil
	}

	cached, err := s.cache.Get(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("Advice cache read failed")
	}
	if cached != nil {
		return s.served(span, cached, metrics.AdviceSourceCache), nil
	}

	summary, recent := summarizeRecords(records)
	if summaryJSON, err := json.Marshal(summary); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.input", string(summaryJSON)))
	}

	start := time.Now()
	reply, err := s.llm.GenerateAdvice(ctx, s.systemPrompt, buildAdvicePrompt(summary, recent))
	metrics.ObserveLLMRequest(time.Since(start))

	var advice *domain.SleepAdvice
	source := metrics.AdviceSourceLLM
	if err != nil {
		s.log.Warn().Err(err).Int("records", summary.TotalRecords).Msg("Advice generation failed, using local fallback")
		advice = FallbackAdvice(summary)
		source = metrics.AdviceSourceFallback
	} else {
		advice = ParseAdviceReply(reply)
		if genErr == nil {
			stored, err := s.cache.Set(ctx, generation, advice)
			if err != nil {
				s.log.Warn().Err(err).Msg("Advice cache write failed")
			} else if !stored {
				s.log.Debug().Int64("generation", generation).Msg("Records changed during generation, advice not cached")
			}
		}
	}

	s.trace(ctx, span, summary, advice, source)
	return s.served(span, advice, source), nil
}

func (s *advisorService) served(span trace.Span, advice *domain.SleepAdvice, source string) *domain.SleepAdvice {
	metrics.RecordAdviceServed(source)
	span.SetAttributes(
		attribute.String("advice.source", source),
		attribute.String("advice.quality", string(advice.SleepQuality)),
	)
	if adviceJSON, err := json.Marshal(advice); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.output", string(adviceJSON)))
	}
	return advice
}

// trace records the generation in Langfuse under the request's OTEL trace ID so
// that later feedback can reference it.
func (s *advisorService) trace(ctx context.Context, span trace.Span, summary domain.AdviceContext, advice *domain.SleepAdvice, source string) {
	if !s.langfuse.IsEnabled() {
		return
	}

	var traceID string
	if sc := span.SpanContext(); sc.IsValid() {
		traceID = sc.TraceID().String()
	}

	if _, err := s.langfuse.CreateTrace(ctx, langfuse.TraceInput{
		ID:     traceID,
		Name:   AdviceTraceName,
		Input:  summary,
		Output: advice,
		Tags:   []string{source},
		Metadata: map[string]any{
			"model": s.model,
		},
	}); err != nil {
		s.log.Warn().Err(err).Msg("Failed to record advice trace")
	}
}
