package client_test

import (
	"encoding/json"
	"testing"

	"github.com/XavierBriggs/vantage/internal/client"
	"github.com/XavierBriggs/vantage/pkg/models"
)

func TestMatchesFilter(t *testing.T) {
	nba := models.RefreshUpdate{Resource: "trends", SportKey: "basketball_nba"}
	nfl := models.RefreshUpdate{Resource: "trends", SportKey: "american_football_nfl"}

	tests := []struct {
		name   string
		filter models.SubscriptionFilter
		update models.RefreshUpdate
		want   bool
	}{
		{"no filter accepts everything", models.SubscriptionFilter{}, nba, true},
		{"matching sport passes", models.SubscriptionFilter{Sports: []string{"basketball_nba"}}, nba, true},
		{"other sport filtered out", models.SubscriptionFilter{Sports: []string{"basketball_nba"}}, nfl, false},
		{"multi-sport filter", models.SubscriptionFilter{Sports: []string{"baseball_mlb", "american_football_nfl"}}, nfl, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := client.New("c1", nil, nil)
			c.SetFilter(tt.filter)
			if got := c.MatchesFilter(tt.update); got != tt.want {
				t.Errorf("MatchesFilter(%s) = %t, want %t", tt.update.SportKey, got, tt.want)
			}
		})
	}
}

func TestSubscriptionFilterIgnoresUnknownKeys(t *testing.T) {
	// Older clients send extra keys alongside sports; they must not
	// break parsing and only the sport filter applies.
	raw := []byte(`{"sports":["basketball_nba"],"categories":["injury"]}`)

	var filter models.SubscriptionFilter
	if err := json.Unmarshal(raw, &filter); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(filter.Sports) != 1 || filter.Sports[0] != "basketball_nba" {
		t.Fatalf("Sports = %v, want [basketball_nba]", filter.Sports)
	}

	c := client.New("c1", nil, nil)
	c.SetFilter(filter)
	if !c.MatchesFilter(models.RefreshUpdate{Resource: "trends", SportKey: "basketball_nba"}) {
		t.Error("filtered out the subscribed sport")
	}
}
