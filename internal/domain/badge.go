package domain

// BadgeRarity is a cosmetic tier; it does not affect unlock rules.
type BadgeRarity string

const (
	RarityCommon    BadgeRarity = "common"
	RarityRare      BadgeRarity = "rare"
	RarityEpic      BadgeRarity = "epic"
	RarityLegendary BadgeRarity = "legendary"
)

// Badge is a static achievement definition.
// @Description Static badge definition.
type Badge struct {
	ID          string      `json:"id" yaml:"id" example:"first-record"`
	Name        string      `json:"name" yaml:"name" example:"수면 기록의 시작"`
	Icon        string      `json:"icon" yaml:"icon" example:"🌱"`
	Description string      `json:"description" yaml:"description"`
	Condition   string      `json:"condition" yaml:"condition"`
	Rarity      BadgeRarity `json:"rarity" yaml:"rarity" example:"common"`
	MaxProgress *int        `json:"maxProgress,omitempty" yaml:"maxProgress,omitempty" example:"1"`
}

// BadgeStatus is a badge definition combined with its evaluated state.
// @Description Badge with earned state and progress.
type BadgeStatus struct {
	Badge
	Earned     bool    `json:"earned" example:"true"`
	EarnedDate *string `json:"earnedDate,omitempty" example:"2024-01-15"`
	Progress   *int    `json:"progress,omitempty" example:"1"`
}

// InProgress reports whether the badge is not earned but tracks progress.
func (s BadgeStatus) InProgress() bool {
	return !s.Earned && s.Progress != nil
}

// BadgeSummary is the response body of the badge endpoint.
// @Description Evaluated badges partitioned for display.
type BadgeSummary struct {
	CurrentStreak int           `json:"currentStreak" example:"5"`
	AverageHours  float64       `json:"averageHours" example:"7.6"`
	Badges        []BadgeStatus `json:"badges"`
	Earned        []BadgeStatus `json:"earned"`
	InProgress    []BadgeStatus `json:"inProgress"`
	Locked        []BadgeStatus `json:"locked"`
}
