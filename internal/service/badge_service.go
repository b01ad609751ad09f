package service

import (
	"context"
	"fmt"
	"time"

	"github.com/blaisecz/sleep-records/internal/badge"
	"github.com/blaisecz/sleep-records/internal/domain"
	"github.com/blaisecz/sleep-records/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// BadgeService evaluates achievement badges over the stored records.
type BadgeService interface {
	Summary(ctx context.Context) (*domain.BadgeSummary, error)
}

type badgeService struct {
	repo      repository.SleepRecordRepository
	evaluator *badge.Evaluator
	now       func() time.Time
}

// NewBadgeService creates a BadgeService. A nil evaluator uses the built-in catalogue.
func NewBadgeService(repo repository.SleepRecordRepository, evaluator *badge.Evaluator) BadgeService {
	if evaluator == nil {
		evaluator = badge.NewEvaluator(badge.DefaultCatalogue())
	}
	return &badgeService{
		repo:      repo,
		evaluator: evaluator,
		now:       time.Now,
	}
}

func (s *badgeService) Summary(ctx context.Context) (*domain.BadgeSummary, error) {
	ctx, span := otel.Tracer("sleep-records-api/badges").Start(ctx, "BadgeService.Summary")
	defer span.End()

	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sleep records: %w", err)
	}

	streak := badge.Streak(records)
	average := badge.AverageHours(records)
	statuses := s.evaluator.Evaluate(badge.Input{
		Records:      records,
		Streak:       streak,
		AverageHours: average,
		Today:        s.now(),
	})
	earned, inProgress, locked := badge.Partition(statuses)

	span.SetAttributes(
		attribute.Int("records.count", len(records)),
		attribute.Int("badges.earned", len(earned)),
		attribute.Int("streak.current", streak),
	)

	return &domain.BadgeSummary{
		CurrentStreak: streak,
		AverageHours:  average,
		Badges:        statuses,
		Earned:        earned,
		InProgress:    inProgress,
		Locked:        locked,
	}, nil
}
