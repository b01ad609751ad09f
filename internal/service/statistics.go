package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/blaisecz/sleep-records/internal/domain"
)

// TrendChunkSize is the number of records averaged into one weekly trend entry.
const TrendChunkSize = 7

// ComputeStatistics aggregates the full record history. Records may be in any order.
func ComputeStatistics(records []domain.SleepRecord) *domain.SleepStatistics {
	if len(records) == 0 {
		return &domain.SleepStatistics{
			OverallAverage: 0,
			WeeklyAverages: map[string]float64{},
			WeeklyTrends:   []domain.WeeklyTrend{},
		}
	}

	return &domain.SleepStatistics{
		OverallAverage: round1(meanHours(records)),
		WeeklyAverages: weekdayAverages(records),
		WeeklyTrends:   weeklyTrends(records),
	}
}

// weekdayAverages groups records by the weekday of their date. All seven
// labels are present; days without records map to 0.
func weekdayAverages(records []domain.SleepRecord) map[string]float64 {
	var sums [7]float64
	var counts [7]int
	for i := range records {
		day, ok := records[i].Weekday()
		if !ok {
			continue
		}
		sums[day] += records[i].Hours
		counts[day]++
	}

	averages := make(map[string]float64, 7)
	for day, label := range domain.WeekdayLabels {
		if counts[day] == 0 {
			averages[label] = 0
			continue
		}
		averages[label] = round1(sums[day] / float64(counts[day]))
	}
	return averages
}

// weeklyTrends sorts records by date ascending and averages consecutive
// chunks of TrendChunkSize records. The last chunk may be shorter.
func weeklyTrends(records []domain.SleepRecord) []domain.WeeklyTrend {
	sorted := sortedByDateAsc(records)

	trends := make([]domain.WeeklyTrend, 0, (len(sorted)+TrendChunkSize-1)/TrendChunkSize)
	for start := 0; start < len(sorted); start += TrendChunkSize {
		end := min(start+TrendChunkSize, len(sorted))
		trends = append(trends, domain.WeeklyTrend{
			Week:    fmt.Sprintf("Week %d", len(trends)+1),
			Average: round1(meanHours(sorted[start:end])),
		})
	}
	return trends
}

// sortedByDateAsc returns a copy of records ordered by date, then id.
func sortedByDateAsc(records []domain.SleepRecord) []domain.SleepRecord {
	sorted := make([]domain.SleepRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

func meanHours(records []domain.SleepRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range records {
		sum += r.Hours
	}
	return sum / float64(len(records))
}

// round1 rounds half away from zero to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
