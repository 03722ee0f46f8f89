package hockey_nhl

import (
	"time"

	"github.com/XavierBriggs/vantage/pkg/contracts"
)

// NHLModule implements SportModule for NHL hockey
type NHLModule struct {
	enabled bool
}

// New creates a new NHL sport module
func New() *NHLModule {
	return &NHLModule{enabled: true}
}

func (m *NHLModule) GetSportKey() string {
	return "ice_hockey_nhl"
}

func (m *NHLModule) GetDisplayName() string {
	return "NHL"
}

func (m *NHLModule) GetESPNSportPath() string {
	return "hockey/nhl"
}

func (m *NHLModule) GetPollingConfig() contracts.PollingConfig {
	return contracts.PollingConfig{
		LiveInterval:     30 * time.Second,
		UpcomingInterval: 5 * time.Minute,
		FinalInterval:    30 * time.Minute,
		PreGameRampup:    30 * time.Minute,
		Enabled:          m.enabled,
	}
}

func (m *NHLModule) IsEnabled() bool {
	return m.enabled
}

func (m *NHLModule) PropMetrics() []string {
	return []string{"goals", "assists", "shotsTotal"}
}

func (m *NHLModule) FallbackRoster() []contracts.FallbackPlayer {
	return []contracts.FallbackPlayer{
		{PlayerID: "nhl-3899937", Name: "Connor McDavid", TeamAbbr: "EDM", Position: "C"},
		{PlayerID: "nhl-4233563", Name: "Nathan MacKinnon", TeamAbbr: "COL", Position: "C"},
		{PlayerID: "nhl-3041969", Name: "Auston Matthews", TeamAbbr: "TOR", Position: "C"},
		{PlayerID: "nhl-3024816", Name: "David Pastrnak", TeamAbbr: "BOS", Position: "RW"},
		{PlayerID: "nhl-4352768", Name: "Cale Makar", TeamAbbr: "COL", Position: "D"},
		{PlayerID: "nhl-4565257", Name: "Connor Bedard", TeamAbbr: "CHI", Position: "C"},
		{PlayerID: "nhl-3042014", Name: "Nikita Kucherov", TeamAbbr: "TB", Position: "RW"},
		{PlayerID: "nhl-2976847", Name: "Igor Shesterkin", TeamAbbr: "NYR", Position: "G"},
	}
}

func (m *NHLModule) NormalizeTeamName(providerName string) string {
	return GetTeamName(GetTeamAbbreviation(providerName))
}

func (m *NHLModule) GetTeamAbbreviation(fullName string) string {
	return GetTeamAbbreviation(fullName)
}
