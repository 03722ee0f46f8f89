package synthetic_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/XavierBriggs/vantage/internal/synthetic"
	"github.com/XavierBriggs/vantage/pkg/contracts"
)

// stubModule is a minimal sport module with a fixed roster
type stubModule struct{}

func (stubModule) GetSportKey() string      { return "basketball_nba" }
func (stubModule) GetDisplayName() string   { return "NBA" }
func (stubModule) GetESPNSportPath() string { return "basketball/nba" }
func (stubModule) IsEnabled() bool          { return true }
func (stubModule) GetPollingConfig() contracts.PollingConfig {
	return contracts.PollingConfig{Enabled: true}
}
func (stubModule) PropMetrics() []string { return []string{"points", "rebounds", "assists"} }
func (stubModule) FallbackRoster() []contracts.FallbackPlayer {
	return []contracts.FallbackPlayer{
		{PlayerID: "1", Name: "Alpha Guard", TeamAbbr: "AAA", Position: "PG"},
		{PlayerID: "2", Name: "Beta Wing", TeamAbbr: "BBB", Position: "SF"},
		{PlayerID: "3", Name: "Gamma Big", TeamAbbr: "CCC", Position: "C"},
		{PlayerID: "4", Name: "Delta Guard", TeamAbbr: "DDD", Position: "SG"},
	}
}
func (stubModule) NormalizeTeamName(name string) string   { return name }
func (stubModule) GetTeamAbbreviation(name string) string { return name }

func TestInjuryTrendsDeterministic(t *testing.T) {
	at := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

	first := synthetic.InjuryTrends(stubModule{}, 4, at)
	second := synthetic.InjuryTrends(stubModule{}, 4, at)

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if !bytes.Equal(a, b) {
		t.Error("same inputs produced different synthetic injuries")
	}
}

func TestPlayerTrendsDeterministic(t *testing.T) {
	at := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

	a, _ := json.Marshal(synthetic.PlayerTrends(stubModule{}, 3, at))
	b, _ := json.Marshal(synthetic.PlayerTrends(stubModule{}, 3, at))

	if !bytes.Equal(a, b) {
		t.Error("same inputs produced different synthetic player trends")
	}
}

func TestInjuryTrendsBounds(t *testing.T) {
	trends := synthetic.InjuryTrends(stubModule{}, 4, time.Now())

	if len(trends) != 4 {
		t.Fatalf("generated %d trends, want 4", len(trends))
	}

	for _, trend := range trends {
		if trend.Impact.ImpactScore < 5 || trend.Impact.ImpactScore > 100 {
			t.Errorf("%s impact %f out of [5,100]", trend.PlayerName, trend.Impact.ImpactScore)
		}
		if trend.Severity == "" {
			t.Errorf("%s has no severity", trend.PlayerName)
		}
		if trend.Source != "synthetic" {
			t.Errorf("%s source = %q, want synthetic", trend.PlayerName, trend.Source)
		}
	}
}

func TestCountCappedByRoster(t *testing.T) {
	trends := synthetic.InjuryTrends(stubModule{}, 50, time.Now())
	if len(trends) != 4 {
		t.Errorf("generated %d trends from a 4-player roster, want 4", len(trends))
	}
}

func TestPlayerTrendsPropBounds(t *testing.T) {
	trends := synthetic.PlayerTrends(stubModule{}, 4, time.Now())

	for _, trend := range trends {
		if len(trend.Props) == 0 {
			t.Errorf("%s has no prop suggestions", trend.PlayerName)
		}
		for _, prop := range trend.Props {
			if prop.Confidence < 0 || prop.Confidence > 100 {
				t.Errorf("%s %s prop confidence %f out of [0,100]",
					trend.PlayerName, prop.Metric, prop.Confidence)
			}
			if prop.SuggestedLine <= 0 {
				t.Errorf("%s %s suggested line %f, want > 0",
					trend.PlayerName, prop.Metric, prop.SuggestedLine)
			}
		}
		if trend.StreakLength < 3 || trend.StreakLength > 9 {
			t.Errorf("%s streak length %d out of [3,9]", trend.PlayerName, trend.StreakLength)
		}
	}
}
