package service

import (
	"context"
	"fmt"
	"time"

	"github.com/blaisecz/sleep-records/internal/cache"
	"github.com/blaisecz/sleep-records/internal/domain"
	"github.com/blaisecz/sleep-records/internal/metrics"
	"github.com/blaisecz/sleep-records/internal/repository"
	"github.com/blaisecz/sleep-records/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

type SleepRecordService interface {
	List(ctx context.Context) ([]domain.SleepRecord, error)
	Get(ctx context.Context, id uint) (*domain.SleepRecord, error)
	Create(ctx context.Context, req *domain.CreateSleepRecordRequest) (*domain.SleepRecord, error)
	Update(ctx context.Context, id uint, req *domain.UpdateSleepRecordRequest) (*domain.SleepRecord, error)
	// Delete reports whether a record was removed. A missing id is not an error.
	Delete(ctx context.Context, id uint) (bool, error)
	Statistics(ctx context.Context) (*domain.SleepStatistics, error)
}

type sleepRecordService struct {
	repo   repository.SleepRecordRepository
	advice cache.AdviceCache
	log    *logger.Logger
	now    func() time.Time
}

func NewSleepRecordService(repo repository.SleepRecordRepository, advice cache.AdviceCache, log *logger.Logger) SleepRecordService {
	if advice == nil {
		advice = cache.NewNoopAdviceCache()
	}
	return &sleepRecordService{
		repo:   repo,
		advice: advice,
		log:    log.Component("sleep-records"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *sleepRecordService) List(ctx context.Context) ([]domain.SleepRecord, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sleep records: %w", err)
	}
	if records == nil {
		records = []domain.SleepRecord{}
	}
	return records, nil
}

func (s *sleepRecordService) Get(ctx context.Context, id uint) (*domain.SleepRecord, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *sleepRecordService) Create(ctx context.Context, req *domain.CreateSleepRecordRequest) (*domain.SleepRecord, error) {
	if req.Hours == nil {
		return nil, fmt.Errorf("%w: hours is required", domain.ErrInvalidInput)
	}
	if err := checkDate(req.Date); err != nil {
		return nil, err
	}
	if err := checkHours(*req.Hours); err != nil {
		return nil, err
	}

	now := s.now()
	record := &domain.SleepRecord{
		Date:      req.Date,
		Hours:     *req.Hours,
		Note:      req.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create sleep record: %w", err)
	}

	s.afterMutation(ctx, "create")
	return record, nil
}

// Update merges the provided fields over the stored record and refreshes UpdatedAt.
func (s *sleepRecordService) Update(ctx context.Context, id uint, req *domain.UpdateSleepRecordRequest) (*domain.SleepRecord, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		if err := checkDate(*req.Date); err != nil {
			return nil, err
		}
		record.Date = *req.Date
	}
	if req.Hours != nil {
		if err := checkHours(*req.Hours); err != nil {
			return nil, err
		}
		record.Hours = *req.Hours
	}
	if req.Note != nil {
		record.Note = req.Note
	}
	record.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, "update")
	return record, nil
}

func (s *sleepRecordService) Delete(ctx context.Context, id uint) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete sleep record %d: %w", id, err)
	}
	if deleted {
		s.afterMutation(ctx, "delete")
	}
	return deleted, nil
}

func (s *sleepRecordService) Statistics(ctx context.Context) (*domain.SleepStatistics, error) {
	ctx, span := otel.Tracer("sleep-records-api/statistics").Start(ctx, "SleepRecordService.Statistics")
	defer span.End()

	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sleep records: %w", err)
	}
	span.SetAttributes(attribute.Int("records.count", len(records)))

	return ComputeStatistics(records), nil
}

// afterMutation drops cached advice. A cache failure is logged, not returned:
// the mutation itself has already been persisted.
func (s *sleepRecordService) afterMutation(ctx context.Context, operation string) {
	metrics.RecordMutation(operation)
	if err := s.advice.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Str("operation", operation).Msg("Failed to invalidate cached advice")
	}
}

func checkDate(date string) error {
	if !domain.DatePattern.MatchString(date) {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	return nil
}

func checkHours(hours float64) error {
	if hours < domain.MinHours || hours > domain.MaxHours {
		return fmt.Errorf("%w: hours must be between 0 and 24", domain.ErrInvalidInput)
	}
	return nil
}
