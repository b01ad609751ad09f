package handler

import (
	"context"

	"github.com/blaisecz/sleep-records/internal/domain"
	"github.com/blaisecz/sleep-records/internal/langfuse"
)

// MockSleepRecordService is a mock implementation of SleepRecordService.
type MockSleepRecordService struct {
	listFunc   func(ctx context.Context) ([]domain.SleepRecord, error)
	getFunc    func(ctx context.Context, id uint) (*domain.SleepRecord, error)
	createFunc func(ctx context.Context, req *domain.CreateSleepRecordRequest) (*domain.SleepRecord, error)
	updateFunc func(ctx context.Context, id uint, req *domain.UpdateSleepRecordRequest) (*domain.SleepRecord, error)
	deleteFunc func(ctx context.Context, id uint) (bool, error)
	statsFunc  func(ctx context.Context) (*domain.SleepStatistics, error)
}

func (m *MockSleepRecordService) List(ctx context.Context) ([]domain.SleepRecord, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []domain.SleepRecord{}, nil
}

func (m *MockSleepRecordService) Get(ctx context.Context, id uint) (*domain.SleepRecord, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return &domain.SleepRecord{ID: id, Date: "2024-01-15", Hours: 7}, nil
}

func (m *MockSleepRecordService) Create(ctx context.Context, req *domain.CreateSleepRecordRequest) (*domain.SleepRecord, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &domain.SleepRecord{ID: 1, Date: req.Date, Hours: *req.Hours, Note: req.Note}, nil
}

func (m *MockSleepRecordService) Update(ctx context.Context, id uint, req *domain.UpdateSleepRecordRequest) (*domain.SleepRecord, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, req)
	}
	return &domain.SleepRecord{ID: id, Date: "2024-01-15", Hours: 7}, nil
}

func (m *MockSleepRecordService) Delete(ctx context.Context, id uint) (bool, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return true, nil
}

func (m *MockSleepRecordService) Statistics(ctx context.Context) (*domain.SleepStatistics, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx)
	}
	return &domain.SleepStatistics{WeeklyAverages: map[string]float64{}, WeeklyTrends: []domain.WeeklyTrend{}}, nil
}

// MockBadgeService returns a fixed summary.
type MockBadgeService struct {
	summary *domain.BadgeSummary
	err     error
}

func (m *MockBadgeService) Summary(ctx context.Context) (*domain.BadgeSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.summary != nil {
		return m.summary, nil
	}
	return &domain.BadgeSummary{}, nil
}

// MockAdvisorService returns fixed advice.
type MockAdvisorService struct {
	advice *domain.SleepAdvice
	err    error
}

func (m *MockAdvisorService) Advise(ctx context.Context) (*domain.SleepAdvice, error) {
	return m.advice, m.err
}

// mockLangfuseClient records scores.
type mockLangfuseClient struct {
	enabled bool
	scores  []langfuse.ScoreInput
	err     error
}

func (m *mockLangfuseClient) IsEnabled() bool {
	return m.enabled
}

func (m *mockLangfuseClient) CreateTrace(ctx context.Context, in langfuse.TraceInput) (string, error) {
	return "", nil
}

func (m *mockLangfuseClient) CreateScore(ctx context.Context, in langfuse.ScoreInput) error {
	m.scores = append(m.scores, in)
	return m.err
}

func (m *mockLangfuseClient) Flush(ctx context.Context) error {
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
