// Package badge evaluates gamified sleep achievements from the record history.
//
// Badge definitions are static and loaded from an embedded YAML catalogue.
// Evaluation is a pure function of the records, the current streak and the
// average hours slept; nothing here is persisted.
package badge

import (
	_ "embed"
	"fmt"

	"github.com/blaisecz/sleep-records/internal/domain"
	"gopkg.in/yaml.v3"
)

// Badge identities.
const (
	FirstRecord     = "first-record"
	EarlyBird       = "early-bird"
	WeekWarrior     = "week-warrior"
	SleepMaster     = "sleep-master"
	NightOwl        = "night-owl"
	MonthMaster     = "month-master"
	ConsistencyKing = "consistency-king"
	HundredDays     = "hundred-days"
	PerfectWeek     = "perfect-week"
)

//go:embed catalogue.yaml
var catalogueYAML []byte

// ParseCatalogue decodes a YAML badge catalogue and checks that every badge
// has a known identity and rarity.
func ParseCatalogue(data []byte) ([]domain.Badge, error) {
	var badges []domain.Badge
	if err := yaml.Unmarshal(data, &badges); err != nil {
		return nil, fmt.Errorf("parse badge catalogue: %w", err)
	}

	seen := make(map[string]bool, len(badges))
	for _, b := range badges {
		if _, ok := rules[b.ID]; !ok {
			return nil, fmt.Errorf("badge %q has no unlock rule", b.ID)
		}
		if seen[b.ID] {
			return nil, fmt.Errorf("duplicate badge %q", b.ID)
		}
		seen[b.ID] = true

		switch b.Rarity {
		case domain.RarityCommon, domain.RarityRare, domain.RarityEpic, domain.RarityLegendary:
		default:
			return nil, fmt.Errorf("badge %q has unknown rarity %q", b.ID, b.Rarity)
		}
	}
	return badges, nil
}

// DefaultCatalogue returns the embedded badge catalogue.
func DefaultCatalogue() []domain.Badge {
	badges, err := ParseCatalogue(catalogueYAML)
	if err != nil {
		panic(err)
	}
	return badges
}
