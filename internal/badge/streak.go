package badge

import (
	"math"
	"sort"
	"time"

	"github.com/blaisecz/sleep-records/internal/domain"
)

// Streak returns the number of consecutive calendar days with at least one
// record, counting back from the most recent recorded date. Several records on
// the same date count once; unparsable dates are ignored.
func Streak(records []domain.SleepRecord) int {
	days := make(map[time.Time]struct{}, len(records))
	for _, r := range records {
		d, err := time.Parse(domain.DateLayout, r.Date)
		if err != nil {
			continue
		}
		days[d] = struct{}{}
	}
	if len(days) == 0 {
		return 0
	}

	sorted := make([]time.Time, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].After(sorted[j]) })

	streak := 1
	for i := 1; i < len(sorted); i++ {
		if !sorted[i].Equal(sorted[i-1].AddDate(0, 0, -1)) {
			break
		}
		streak++
	}
	return streak
}

// AverageHours returns the unrounded mean of all record hours (0 when empty).
func AverageHours(records []domain.SleepRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range records {
		sum += r.Hours
	}
	return sum / float64(len(records))
}

// populationStdDev returns the population standard deviation of record hours.
func populationStdDev(records []domain.SleepRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	avg := AverageHours(records)
	sumSquares := 0.0
	for _, r := range records {
		diff := r.Hours - avg
		sumSquares += diff * diff
	}
	return math.Sqrt(sumSquares / float64(len(records)))
}
