package domain

import "time"

// WeekdayLabels holds the display label of each weekday, indexed by time.Weekday (Sunday first).
var WeekdayLabels = [7]string{"일", "월", "화", "수", "목", "금", "토"}

// WeekdayLabel returns the display label for a weekday.
func WeekdayLabel(d time.Weekday) string {
	return WeekdayLabels[d]
}

// SleepStatistics is derived from the full record history and never persisted.
// @Description Aggregate sleep statistics.
type SleepStatistics struct {
	// Mean hours across all records, rounded to 1 decimal
	OverallAverage float64 `json:"overallAverage" example:"7.7"`
	// Mean hours per weekday label over the whole history (0 for days without records)
	WeeklyAverages map[string]float64 `json:"weeklyAverages"`
	// Consecutive 7-record chunks, oldest first
	WeeklyTrends []WeeklyTrend `json:"weeklyTrends"`
}

// WeeklyTrend is the rounded mean of one chunk of up to 7 records.
type WeeklyTrend struct {
	Week    string  `json:"week" example:"Week 1"`
	Average float64 `json:"average" example:"7.9"`
}
