// Package seed fills an empty store with a month of sample records.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/blaisecz/sleep-records/internal/domain"
	"github.com/blaisecz/sleep-records/internal/repository"
	"github.com/blaisecz/sleep-records/pkg/logger"
)

// Days is the number of nights seeded, ending yesterday.
const Days = 30

var notes = []string{"좋음", "보통", "나쁨"}

// Run inserts Days sample records when the store is empty. It returns the
// number of records created; a non-empty store is left untouched.
func Run(ctx context.Context, repo repository.SleepRecordRepository, rng *rand.Rand, now time.Time, log *logger.Logger) (int, error) {
	count, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count sleep records: %w", err)
	}
	if count > 0 {
		log.Info().Int64("existing", count).Msg("Sleep records present, skipping seed")
		return 0, nil
	}

	created := 0
	for _, record := range Records(rng, now) {
		if err := repo.Create(ctx, &record); err != nil {
			return created, fmt.Errorf("create seed record %s: %w", record.Date, err)
		}
		created++
	}

	log.Info().Int("created", created).Msg("Seed completed")
	return created, nil
}

// Records generates the sample nights without persisting them. Hours lie in
// [4.0, 9.0] in 0.5 steps.
func Records(rng *rand.Rand, now time.Time) []domain.SleepRecord {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	records := make([]domain.SleepRecord, 0, Days)
	for i := Days; i >= 1; i-- {
		note := notes[rng.Intn(len(notes))]
		records = append(records, domain.SleepRecord{
			Date:      today.AddDate(0, 0, -i).Format(domain.DateLayout),
			Hours:     4 + float64(rng.Intn(11))*0.5,
			Note:      &note,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return records
}
