package badge

import (
	"time"

	"github.com/blaisecz/sleep-records/internal/domain"
)

// Input is everything a badge rule may look at.
type Input struct {
	Records      []domain.SleepRecord
	Streak       int
	AverageHours float64
	// Today is used as the earned date of every badge except first-record.
	Today time.Time
}

// rule reports whether a badge is earned and its progress metric. The
// progress value is only surfaced for badges that declare maxProgress.
type rule func(in Input) (earned bool, progress int)

// Early-bird and night-owl have no wake or bed time data to work with, so they
// use a fixed fraction of the record count as a stand-in.
const (
	earlyBirdShare = 0.3
	nightOwlShare  = 0.4

	idealMinHours          = 7.0
	idealMaxHours          = 9.0
	consistencyMinRecords  = 7
	consistencyMaxStdHours = 1.0
)

var rules = map[string]rule{
	FirstRecord: func(in Input) (bool, int) {
		return len(in.Records) >= 1, min(len(in.Records), 1)
	},
	WeekWarrior: streakRule(7),
	MonthMaster: streakRule(30),
	HundredDays: streakRule(100),
	EarlyBird:   proxyRule(earlyBirdShare, 5),
	NightOwl:    proxyRule(nightOwlShare, 10),
	SleepMaster: func(in Input) (bool, int) {
		return in.AverageHours >= idealMinHours && in.AverageHours <= idealMaxHours, 0
	},
	ConsistencyKing: func(in Input) (bool, int) {
		if len(in.Records) < consistencyMinRecords {
			return false, 0
		}
		return populationStdDev(in.Records) <= consistencyMaxStdHours, 0
	},
	PerfectWeek: func(in Input) (bool, int) {
		return len(in.Records) >= 7 && in.Streak >= 7 && in.AverageHours >= idealMinHours, 0
	},
}

func streakRule(target int) rule {
	return func(in Input) (bool, int) {
		return in.Streak >= target, min(in.Streak, target)
	}
}

func proxyRule(share float64, target int) rule {
	return func(in Input) (bool, int) {
		proxy := int(float64(len(in.Records)) * share)
		return proxy >= target, min(proxy, target)
	}
}

// Evaluator applies the unlock rules to a badge catalogue.
type Evaluator struct {
	catalogue []domain.Badge
}

// NewEvaluator creates an Evaluator over the given catalogue.
func NewEvaluator(catalogue []domain.Badge) *Evaluator {
	return &Evaluator{catalogue: catalogue}
}

// Catalogue returns the static badge definitions.
func (e *Evaluator) Catalogue() []domain.Badge {
	return e.catalogue
}

// Evaluate returns the status of every badge, in catalogue order.
func (e *Evaluator) Evaluate(in Input) []domain.BadgeStatus {
	today := in.Today.Format(domain.DateLayout)

	statuses := make([]domain.BadgeStatus, 0, len(e.catalogue))
	for _, def := range e.catalogue {
		status := domain.BadgeStatus{Badge: def}

		evaluate, ok := rules[def.ID]
		if !ok {
			statuses = append(statuses, status)
			continue
		}

		earned, progress := evaluate(in)
		status.Earned = earned
		if def.MaxProgress != nil {
			p := progress
			status.Progress = &p
		}
		if earned {
			date := today
			if def.ID == FirstRecord {
				date = oldestDate(in.Records)
			}
			status.EarnedDate = &date
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// Partition splits evaluated badges into earned, in-progress (not earned but
// tracking progress) and locked (not earned, no progress metric).
func Partition(statuses []domain.BadgeStatus) (earned, inProgress, locked []domain.BadgeStatus) {
	earned = []domain.BadgeStatus{}
	inProgress = []domain.BadgeStatus{}
	locked = []domain.BadgeStatus{}

	for _, s := range statuses {
		switch {
		case s.Earned:
			earned = append(earned, s)
		case s.InProgress():
			inProgress = append(inProgress, s)
		default:
			locked = append(locked, s)
		}
	}
	return earned, inProgress, locked
}

// oldestDate returns the earliest YYYY-MM-DD date among the records.
// Dates in that layout compare correctly as strings.
func oldestDate(records []domain.SleepRecord) string {
	oldest := ""
	for _, r := range records {
		if oldest == "" || r.Date < oldest {
			oldest = r.Date
		}
	}
	return oldest
}
