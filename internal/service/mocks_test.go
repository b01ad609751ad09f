package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/blaisecz/sleep-records/internal/domain"
	"github.com/blaisecz/sleep-records/internal/langfuse"
)

// MockSleepRecordRepository is an in-memory SleepRecordRepository.
type MockSleepRecordRepository struct {
	mu      sync.Mutex
	records map[uint]*domain.SleepRecord
	nextID  uint
	err     error
	// deleteResult overrides the outcome of Delete when set.
	deleteResult *bool
}

func NewMockSleepRecordRepository(seed ...domain.SleepRecord) *MockSleepRecordRepository {
	m := &MockSleepRecordRepository{records: make(map[uint]*domain.SleepRecord)}
	for i := range seed {
		r := seed[i]
		m.nextID++
		if r.ID == 0 {
			r.ID = m.nextID
		} else if r.ID > m.nextID {
			m.nextID = r.ID
		}
		m.records[r.ID] = &r
	}
	return m
}

func (m *MockSleepRecordRepository) Create(ctx context.Context, record *domain.SleepRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.nextID++
	record.ID = m.nextID
	stored := *record
	m.records[record.ID] = &stored
	return nil
}

func (m *MockSleepRecordRepository) GetByID(ctx context.Context, id uint) (*domain.SleepRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (m *MockSleepRecordRepository) List(ctx context.Context) ([]domain.SleepRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	result := make([]domain.SleepRecord, 0, len(m.records))
	for _, r := range m.records {
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date > result[j].Date
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (m *MockSleepRecordRepository) Update(ctx context.Context, record *domain.SleepRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.records[record.ID]; !ok {
		return domain.ErrNotFound
	}
	stored := *record
	m.records[record.ID] = &stored
	return nil
}

func (m *MockSleepRecordRepository) Delete(ctx context.Context, id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if m.deleteResult != nil {
		return *m.deleteResult, nil
	}
	_, ok := m.records[id]
	delete(m.records, id)
	return ok, nil
}

func (m *MockSleepRecordRepository) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.records)), nil
}

// MockAdviceLLM returns a canned reply and counts calls.
type MockAdviceLLM struct {
	Reply      string
	Err        error
	Calls      int
	LastSystem string
	LastPrompt string
}

func (m *MockAdviceLLM) GenerateAdvice(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.Calls++
	m.LastSystem = systemPrompt
	m.LastPrompt = userPrompt
	return m.Reply, m.Err
}

// MockAdviceCache is an in-memory AdviceCache with a generation counter.
type MockAdviceCache struct {
	Stored      *domain.SleepAdvice
	Gen         int64
	GetErr      error
	GenErr      error
	Sets        int
	Invalidates int
	InvalidErr  error
}

func (m *MockAdviceCache) Get(ctx context.Context) (*domain.SleepAdvice, error) {
	return m.Stored, m.GetErr
}

func (m *MockAdviceCache) Generation(ctx context.Context) (int64, error) {
	return m.Gen, m.GenErr
}

func (m *MockAdviceCache) Set(ctx context.Context, generation int64, advice *domain.SleepAdvice) (bool, error) {
	if generation != m.Gen {
		return false, nil
	}
	m.Sets++
	m.Stored = advice
	return true, nil
}

func (m *MockAdviceCache) Invalidate(ctx context.Context) error {
	m.Invalidates++
	m.Gen++
	m.Stored = nil
	return m.InvalidErr
}

func record(date string, hours float64, note ...string) domain.SleepRecord {
	r := domain.SleepRecord{Date: date, Hours: hours}
	if len(note) > 0 {
		n := note[0]
		r.Note = &n
	}
	return r
}

func ptr[T any](v T) *T {
	return &v
}

var fixedNow = time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)

// MockLangfuseClient records traces instead of sending them.
type MockLangfuseClient struct {
	Enabled bool
	Traces  []langfuse.TraceInput
}

func (m *MockLangfuseClient) IsEnabled() bool { return m.Enabled }

func (m *MockLangfuseClient) CreateTrace(ctx context.Context, in langfuse.TraceInput) (string, error) {
	m.Traces = append(m.Traces, in)
	return in.ID, nil
}

func (m *MockLangfuseClient) CreateScore(ctx context.Context, in langfuse.ScoreInput) error {
	return nil
}

func (m *MockLangfuseClient) Flush(ctx context.Context) error { return nil }
