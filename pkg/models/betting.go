package models

// SharpSide indicates which side of a line the sharp money is on
type SharpSide string

const (
	SharpHome SharpSide = "home"
	SharpAway SharpSide = "away"
	SharpNone SharpSide = ""
)

// BettingTrend captures line state and movement signals for one game.
// Derived fresh each cycle; there is no historical line store, so the
// movement deltas are recomputed rather than diffed against persistence.
type BettingTrend struct {
	Trend

	GameID        string  `json:"game_id"`
	HomeTeamAbbr  string  `json:"home_team_abbr"`
	AwayTeamAbbr  string  `json:"away_team_abbr"`
	CurrentSpread float64 `json:"current_spread"`
	CurrentTotal  float64 `json:"current_total"`
	SpreadMove    float64 `json:"spread_move"`
	TotalMove     float64 `json:"total_move"`
	HomeMoneyline int     `json:"home_moneyline"`
	AwayMoneyline int     `json:"away_moneyline"`

	ReverseLineMovement bool      `json:"reverse_line_movement"`
	SteamMove           bool      `json:"steam_move"`
	SharpAction         SharpSide `json:"sharp_action"`
}
