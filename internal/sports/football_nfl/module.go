package football_nfl

import (
	"time"

	"github.com/XavierBriggs/vantage/pkg/contracts"
)

// NFLModule implements SportModule for NFL football
type NFLModule struct {
	enabled bool
}

// New creates a new NFL sport module
func New() *NFLModule {
	return &NFLModule{enabled: true}
}

func (m *NFLModule) GetSportKey() string {
	return "american_football_nfl"
}

func (m *NFLModule) GetDisplayName() string {
	return "NFL"
}

func (m *NFLModule) GetESPNSportPath() string {
	return "football/nfl"
}

// NFL games move slower than basketball; scores change less often and
// the weekly schedule leaves long gaps, so every interval is wider
func (m *NFLModule) GetPollingConfig() contracts.PollingConfig {
	return contracts.PollingConfig{
		LiveInterval:     60 * time.Second,
		UpcomingInterval: 10 * time.Minute,
		FinalInterval:    1 * time.Hour,
		PreGameRampup:    1 * time.Hour,
		Enabled:          m.enabled,
	}
}

func (m *NFLModule) IsEnabled() bool {
	return m.enabled
}

func (m *NFLModule) PropMetrics() []string {
	return []string{"passingYards", "rushingYards", "receivingYards"}
}

func (m *NFLModule) FallbackRoster() []contracts.FallbackPlayer {
	return []contracts.FallbackPlayer{
		{PlayerID: "nfl-3139477", Name: "Patrick Mahomes", TeamAbbr: "KC", Position: "QB"},
		{PlayerID: "nfl-3918298", Name: "Josh Allen", TeamAbbr: "BUF", Position: "QB"},
		{PlayerID: "nfl-4241389", Name: "CeeDee Lamb", TeamAbbr: "DAL", Position: "WR"},
		{PlayerID: "nfl-4362628", Name: "Justin Jefferson", TeamAbbr: "MIN", Position: "WR"},
		{PlayerID: "nfl-4429795", Name: "Jahmyr Gibbs", TeamAbbr: "DET", Position: "RB"},
		{PlayerID: "nfl-4430807", Name: "Bijan Robinson", TeamAbbr: "ATL", Position: "RB"},
		{PlayerID: "nfl-4361370", Name: "Ja'Marr Chase", TeamAbbr: "CIN", Position: "WR"},
		{PlayerID: "nfl-3929630", Name: "Saquon Barkley", TeamAbbr: "PHI", Position: "RB"},
	}
}

func (m *NFLModule) NormalizeTeamName(providerName string) string {
	return GetTeamName(GetTeamAbbreviation(providerName))
}

func (m *NFLModule) GetTeamAbbreviation(fullName string) string {
	return GetTeamAbbreviation(fullName)
}
