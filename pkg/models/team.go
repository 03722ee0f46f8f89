package models

// TeamStreakType is the direction of a team's current run
type TeamStreakType string

const (
	TeamStreakWin  TeamStreakType = "win"
	TeamStreakLoss TeamStreakType = "loss"
)

// SplitRecord is a win-loss split for one context (home, away, last 10)
type SplitRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// TeamTrend summarizes a team's form
type TeamTrend struct {
	Trend

	TeamID       string         `json:"team_id,omitempty"`
	TeamName     string         `json:"team_name"`
	TeamAbbr     string         `json:"team_abbr"`
	StreakType   TeamStreakType `json:"streak_type"`
	StreakLength int            `json:"streak_length"`
	Record       TeamRecord     `json:"record"`
	ATSRecord    SplitRecord    `json:"ats_record"` // against the spread
	HomeRecord   SplitRecord    `json:"home_record"`
	AwayRecord   SplitRecord    `json:"away_record"`
	Last10       SplitRecord    `json:"last_10"`
}
