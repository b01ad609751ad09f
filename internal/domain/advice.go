package domain

// SleepQuality is the advisor's overall rating.
type SleepQuality string

const (
	QualityExcellent SleepQuality = "excellent"
	QualityGood      SleepQuality = "good"
	QualityFair      SleepQuality = "fair"
	QualityPoor      SleepQuality = "poor"
)

// ParseSleepQuality returns the quality for a label, or false if it is not one of the four values.
func ParseSleepQuality(s string) (SleepQuality, bool) {
	switch q := SleepQuality(s); q {
	case QualityExcellent, QualityGood, QualityFair, QualityPoor:
		return q, true
	}
	return "", false
}

// SleepAdvice is the advisor output.
// @Description AI generated (or locally computed) sleep advice.
type SleepAdvice struct {
	Advice          string       `json:"advice" example:"평균 7.5시간의 수면을 취하고 계시네요."`
	SleepQuality    SleepQuality `json:"sleepQuality" example:"good" enums:"excellent,good,fair,poor"`
	Recommendations []string     `json:"recommendations"`
	Insights        []string     `json:"insights"`
}

// AdviceContext holds the aggregates embedded in the advisor prompt.
type AdviceContext struct {
	TotalRecords   int                `json:"totalRecords"`
	AverageHours   float64            `json:"averageHours"`
	RecentAverage  float64            `json:"recentAverage"`
	WeekdayAverage map[string]float64 `json:"weekdayAverage"`
	RecentNotes    []string           `json:"recentNotes"`
}
