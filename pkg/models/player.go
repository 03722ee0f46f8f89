package models

// StreakType classifies a player's recent form relative to their baseline
type StreakType string

const (
	StreakHot     StreakType = "hot"
	StreakCold    StreakType = "cold"
	StreakOutlier StreakType = "outlier"
)

// StatSnapshot compares one metric's current form against its baselines
type StatSnapshot struct {
	Metric        string  `json:"metric"` // "points", "passing_yards", ...
	Current       float64 `json:"current"`
	SeasonAvg     float64 `json:"season_avg"`
	Last5Avg      float64 `json:"last5_avg"`
	PercentChange float64 `json:"percent_change"`
}

// PropFactors exposes the inputs behind a prop suggestion so the UI can
// show why a line was suggested
type PropFactors struct {
	SeasonAvg    float64 `json:"season_avg"`
	RecentAvg    float64 `json:"recent_avg"`
	OpponentAvg  float64 `json:"opponent_avg"`
	RestDays     int     `json:"rest_days"`
	HomeAwayDiff float64 `json:"home_away_diff"`
}

// PropSide is the recommended side of a suggested prop line
type PropSide string

const (
	PropOver  PropSide = "over"
	PropUnder PropSide = "under"
)

// CalculatedProp is a suggested prop line derived from a stat snapshot
type CalculatedProp struct {
	Metric         string      `json:"metric"`
	SuggestedLine  float64     `json:"suggested_line"`
	Recommendation PropSide    `json:"recommendation"`
	Confidence     float64     `json:"confidence"` // 0-100
	Factors        PropFactors `json:"factors"`
}

// PlayerTrend is a hot/cold streak record for one player
type PlayerTrend struct {
	Trend

	PlayerID     string           `json:"player_id"`
	PlayerName   string           `json:"player_name"`
	TeamAbbr     string           `json:"team_abbr"`
	Position     string           `json:"position,omitempty"`
	Streak       StreakType       `json:"streak"`
	StreakLength int              `json:"streak_length"`
	Stats        []StatSnapshot   `json:"stats"`
	Props        []CalculatedProp `json:"props,omitempty"`
}

// SecondaryKey sorts player trends by their strongest prop confidence
func (p *PlayerTrend) SecondaryKey() float64 {
	best := 0.0
	for _, prop := range p.Props {
		if prop.Confidence > best {
			best = prop.Confidence
		}
	}
	return best
}
