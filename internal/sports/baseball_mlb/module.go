package baseball_mlb

import (
	"time"

	"github.com/XavierBriggs/vantage/pkg/contracts"
)

// MLBModule implements SportModule for MLB baseball
type MLBModule struct {
	enabled bool
}

// New creates a new MLB sport module
func New() *MLBModule {
	return &MLBModule{enabled: true}
}

func (m *MLBModule) GetSportKey() string {
	return "baseball_mlb"
}

func (m *MLBModule) GetDisplayName() string {
	return "MLB"
}

func (m *MLBModule) GetESPNSportPath() string {
	return "baseball/mlb"
}

func (m *MLBModule) GetPollingConfig() contracts.PollingConfig {
	return contracts.PollingConfig{
		LiveInterval:     45 * time.Second,
		UpcomingInterval: 10 * time.Minute,
		FinalInterval:    1 * time.Hour,
		PreGameRampup:    30 * time.Minute,
		Enabled:          m.enabled,
	}
}

func (m *MLBModule) IsEnabled() bool {
	return m.enabled
}

func (m *MLBModule) PropMetrics() []string {
	return []string{"hits", "homeRuns", "RBIs"}
}

func (m *MLBModule) FallbackRoster() []contracts.FallbackPlayer {
	return []contracts.FallbackPlayer{
		{PlayerID: "mlb-33192", Name: "Shohei Ohtani", TeamAbbr: "LAD", Position: "DH"},
		{PlayerID: "mlb-33859", Name: "Aaron Judge", TeamAbbr: "NYY", Position: "RF"},
		{PlayerID: "mlb-36185", Name: "Juan Soto", TeamAbbr: "NYM", Position: "RF"},
		{PlayerID: "mlb-40719", Name: "Bobby Witt Jr.", TeamAbbr: "KC", Position: "SS"},
		{PlayerID: "mlb-39832", Name: "Ronald Acuna Jr.", TeamAbbr: "ATL", Position: "RF"},
		{PlayerID: "mlb-41169", Name: "Gunnar Henderson", TeamAbbr: "BAL", Position: "SS"},
		{PlayerID: "mlb-32081", Name: "Mookie Betts", TeamAbbr: "LAD", Position: "SS"},
		{PlayerID: "mlb-42404", Name: "Paul Skenes", TeamAbbr: "PIT", Position: "SP"},
	}
}

func (m *MLBModule) NormalizeTeamName(providerName string) string {
	return GetTeamName(GetTeamAbbreviation(providerName))
}

func (m *MLBModule) GetTeamAbbreviation(fullName string) string {
	return GetTeamAbbreviation(fullName)
}
