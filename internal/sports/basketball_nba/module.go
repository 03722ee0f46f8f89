package basketball_nba

import (
	"time"

	"github.com/XavierBriggs/vantage/pkg/contracts"
)

// NBAModule implements SportModule for NBA basketball
type NBAModule struct {
	enabled bool
}

// New creates a new NBA sport module
func New() *NBAModule {
	return &NBAModule{enabled: true}
}

func (m *NBAModule) GetSportKey() string {
	return "basketball_nba"
}

func (m *NBAModule) GetDisplayName() string {
	return "NBA"
}

func (m *NBAModule) GetESPNSportPath() string {
	return "basketball/nba"
}

func (m *NBAModule) GetPollingConfig() contracts.PollingConfig {
	return contracts.PollingConfig{
		LiveInterval:     30 * time.Second,
		UpcomingInterval: 5 * time.Minute,
		FinalInterval:    30 * time.Minute,
		PreGameRampup:    30 * time.Minute,
		Enabled:          m.enabled,
	}
}

func (m *NBAModule) IsEnabled() bool {
	return m.enabled
}

func (m *NBAModule) PropMetrics() []string {
	return []string{"points", "rebounds", "assists"}
}

// FallbackRoster is the built-in player set used when real upstream data
// is insufficient and synthetic records must be generated
func (m *NBAModule) FallbackRoster() []contracts.FallbackPlayer {
	return []contracts.FallbackPlayer{
		{PlayerID: "nba-2544", Name: "LeBron James", TeamAbbr: "LAL", Position: "SF"},
		{PlayerID: "nba-201939", Name: "Stephen Curry", TeamAbbr: "GSW", Position: "PG"},
		{PlayerID: "nba-203507", Name: "Giannis Antetokounmpo", TeamAbbr: "MIL", Position: "PF"},
		{PlayerID: "nba-1628369", Name: "Jayson Tatum", TeamAbbr: "BOS", Position: "SF"},
		{PlayerID: "nba-203999", Name: "Nikola Jokic", TeamAbbr: "DEN", Position: "C"},
		{PlayerID: "nba-1629029", Name: "Luka Doncic", TeamAbbr: "DAL", Position: "PG"},
		{PlayerID: "nba-1628983", Name: "Shai Gilgeous-Alexander", TeamAbbr: "OKC", Position: "SG"},
		{PlayerID: "nba-203954", Name: "Joel Embiid", TeamAbbr: "PHI", Position: "C"},
	}
}

func (m *NBAModule) NormalizeTeamName(providerName string) string {
	return GetTeamName(GetTeamAbbreviation(providerName))
}

func (m *NBAModule) GetTeamAbbreviation(fullName string) string {
	return GetTeamAbbreviation(fullName)
}
