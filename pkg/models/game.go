package models

import "time"

// GameStatus represents the current state of a game
type GameStatus string

const (
	StatusUpcoming  GameStatus = "upcoming"
	StatusLive      GameStatus = "live"
	StatusFinal     GameStatus = "final"
	StatusPostponed GameStatus = "postponed"
)

// TeamRecord is a win-loss record parsed from the scoreboard
type TeamRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// WinPct returns the record's win percentage, .500 for an empty record
func (r TeamRecord) WinPct() float64 {
	games := r.Wins + r.Losses
	if games == 0 {
		return 0.5
	}
	return float64(r.Wins) / float64(games)
}

// Game is the universal per-sport game model produced from the scoreboard
type Game struct {
	GameID       string     `json:"game_id"`
	SportKey     string     `json:"sport_key"`
	Status       GameStatus `json:"status"`
	HomeTeam     string     `json:"home_team"`
	HomeTeamAbbr string     `json:"home_team_abbr"`
	HomeTeamID   string     `json:"home_team_id,omitempty"`
	AwayTeam     string     `json:"away_team"`
	AwayTeamAbbr string     `json:"away_team_abbr"`
	AwayTeamID   string     `json:"away_team_id,omitempty"`
	HomeScore    int        `json:"home_score"`
	AwayScore    int        `json:"away_score"`
	HomeRecord   TeamRecord `json:"home_record"`
	AwayRecord   TeamRecord `json:"away_record"`

	// Venue splits from the scoreboard's typed record list, zero when
	// the feed carries only the overall record
	HomeVenueSplit SplitRecord `json:"home_venue_split"`
	AwayVenueSplit SplitRecord `json:"away_venue_split"`

	CommenceTime time.Time `json:"commence_time"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Odds snapshot from the scoreboard, nil when the book
	// has not posted a line yet
	Odds *OddsSnapshot `json:"odds,omitempty"`
}

// OddsSnapshot is the current line the scoreboard carries for a game
type OddsSnapshot struct {
	Details       string  `json:"details,omitempty"` // "LAL -4.5"
	Spread        float64 `json:"spread"`            // home-relative
	OverUnder     float64 `json:"over_under"`
	HomeMoneyline int     `json:"home_moneyline"`
	AwayMoneyline int     `json:"away_moneyline"`
}
