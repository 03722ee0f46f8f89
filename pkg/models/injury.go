package models

// InjuryStatus is the provider-reported availability designation
type InjuryStatus string

const (
	InjuryOut          InjuryStatus = "out"
	InjuryDoubtful     InjuryStatus = "doubtful"
	InjuryQuestionable InjuryStatus = "questionable"
	InjuryProbable     InjuryStatus = "probable"
	InjuryDayToDay     InjuryStatus = "day-to-day"
)

// PlayerImpact quantifies how much a player's absence matters
type PlayerImpact struct {
	// Season per-game averages, keyed by metric ("points", "rebounds", ...)
	SeasonAverages map[string]float64 `json:"season_averages,omitempty"`
	UsageRate      float64            `json:"usage_rate,omitempty"`
	ImpactScore    float64            `json:"impact_score"` // 5-100
}

// GameImpact estimates the line movement attributable to the injury
type GameImpact struct {
	Opponent    string  `json:"opponent,omitempty"`
	SpreadDelta float64 `json:"spread_delta"`
	TotalDelta  float64 `json:"total_delta"`
}

// InjuryTrend is one player's injury report after merging and scoring
type InjuryTrend struct {
	Trend

	PlayerID     string       `json:"player_id,omitempty"`
	PlayerName   string       `json:"player_name"`
	TeamAbbr     string       `json:"team_abbr"`
	Position     string       `json:"position,omitempty"`
	InjuryStatus InjuryStatus `json:"injury_status"`
	Details      string       `json:"details,omitempty"`
	Source       string       `json:"source"` // which feed won the merge

	Impact     PlayerImpact `json:"impact"`
	GameImpact *GameImpact  `json:"game_impact,omitempty"`
}
