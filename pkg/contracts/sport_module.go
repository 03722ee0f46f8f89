package contracts

import "time"

// SportModule is the pluggable interface for adding new sports.
type SportModule interface {
	// Identification
	GetSportKey() string      // "basketball_nba", "american_football_nfl"
	GetDisplayName() string   // "NBA", "NFL"
	GetESPNSportPath() string // "basketball/nba", "football/nfl"

	// Configuration
	GetPollingConfig() PollingConfig
	IsEnabled() bool

	// Statistics metadata used by scoring and prop suggestion
	PropMetrics() []string // metrics worth suggesting props for

	// FallbackRoster supplies the built-in players used when real
	// upstream data is insufficient and synthetic records are needed
	FallbackRoster() []FallbackPlayer

	// Team normalization (scoreboard names vary by endpoint)
	NormalizeTeamName(providerName string) string
	GetTeamAbbreviation(fullName string) string
}

// FallbackPlayer is one built-in roster entry used for synthesis
type FallbackPlayer struct {
	PlayerID string
	Name     string
	TeamAbbr string
	Position string
}

// PollingConfig defines sport-specific polling behavior
type PollingConfig struct {
	LiveInterval     time.Duration // live games
	UpcomingInterval time.Duration // pre-game
	FinalInterval    time.Duration // completed games
	PreGameRampup    time.Duration // start fast polling this close to tip
	Enabled          bool          // feature flag per sport
}
