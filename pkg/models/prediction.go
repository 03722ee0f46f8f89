package models

import "time"

// PredictionEntry is one source's view of a game's outcome
type PredictionEntry struct {
	Source        string  `json:"source"`        // "elo", "market"
	HomeWinProb   float64 `json:"home_win_prob"` // 0-100
	AwayWinProb   float64 `json:"away_win_prob"` // 0-100
	Confidence    float64 `json:"confidence"`    // 0-100
	HomeScoreProj float64 `json:"home_score_proj,omitempty"`
	AwayScoreProj float64 `json:"away_score_proj,omitempty"`
	Reasoning     string  `json:"reasoning,omitempty"`
}

// FavoredSide identifies which team the consensus favors
type FavoredSide string

const (
	FavoredHome FavoredSide = "home"
	FavoredAway FavoredSide = "away"
)

// Consensus folds all prediction entries into one blended call
type Consensus struct {
	FavoredTeam FavoredSide `json:"favored_team"`
	WinProb     float64     `json:"win_prob"`   // 0-100, for the favored side
	Confidence  float64     `json:"confidence"` // 0-100
}

// GamePrediction is the full prediction set for one game
type GamePrediction struct {
	GameID       string            `json:"game_id"`
	SportKey     string            `json:"sport_key"`
	HomeTeamAbbr string            `json:"home_team_abbr"`
	AwayTeamAbbr string            `json:"away_team_abbr"`
	Predictions  []PredictionEntry `json:"predictions"`
	Consensus    Consensus         `json:"consensus"`
	CurrentOdds  *OddsSnapshot     `json:"current_odds,omitempty"`
	GeneratedAt  time.Time         `json:"generated_at"`
}
