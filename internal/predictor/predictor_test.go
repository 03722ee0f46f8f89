package predictor_test

import (
	"testing"

	"github.com/XavierBriggs/vantage/internal/predictor"
	"github.com/XavierBriggs/vantage/pkg/models"
)

func game() *models.Game {
	return &models.Game{
		GameID:       "401705001",
		SportKey:     "basketball_nba",
		HomeTeamAbbr: "BOS",
		AwayTeamAbbr: "WAS",
		HomeRecord:   models.TeamRecord{Wins: 10, Losses: 2},
		AwayRecord:   models.TeamRecord{Wins: 4, Losses: 8},
	}
}

func TestStrongHomeRecordFavorsHome(t *testing.T) {
	p := predictor.New()

	pred := p.PredictGame(game(), 0)

	if len(pred.Predictions) != 1 {
		t.Fatalf("got %d prediction sources without odds, want 1", len(pred.Predictions))
	}

	elo := pred.Predictions[0]
	if elo.Source != "elo" {
		t.Errorf("source = %q, want elo", elo.Source)
	}
	if elo.HomeWinProb <= 50 {
		t.Errorf("home win prob = %f for 10-2 home vs 4-8 away, want > 50", elo.HomeWinProb)
	}
	if pred.Consensus.FavoredTeam != models.FavoredHome {
		t.Errorf("consensus favors %s, want home", pred.Consensus.FavoredTeam)
	}
	if pred.Consensus.WinProb <= 50 || pred.Consensus.WinProb > 100 {
		t.Errorf("consensus win prob = %f, want in (50,100]", pred.Consensus.WinProb)
	}
}

func TestMarketSourceJoinsWhenOddsPresent(t *testing.T) {
	g := game()
	g.Odds = &models.OddsSnapshot{
		HomeMoneyline: -320,
		AwayMoneyline: +260,
	}

	pred := predictor.New().PredictGame(g, 0)

	if len(pred.Predictions) != 2 {
		t.Fatalf("got %d prediction sources with odds, want 2", len(pred.Predictions))
	}

	market := pred.Predictions[1]
	if market.Source != "market" {
		t.Fatalf("second source = %q, want market", market.Source)
	}
	if market.HomeWinProb <= 50 {
		t.Errorf("market home prob = %f for -320 favorite, want > 50", market.HomeWinProb)
	}

	// Both sides of each source sum to 100 after de-vigging
	if sum := market.HomeWinProb + market.AwayWinProb; sum < 99.8 || sum > 100.2 {
		t.Errorf("market probs sum to %f, want 100", sum)
	}
}

func TestConsensusIsUnweightedMean(t *testing.T) {
	g := game()
	g.Odds = &models.OddsSnapshot{HomeMoneyline: -200, AwayMoneyline: 170}

	pred := predictor.New().PredictGame(g, 0)

	var homeSum float64
	for _, e := range pred.Predictions {
		homeSum += e.HomeWinProb
	}
	mean := homeSum / float64(len(pred.Predictions))

	got := pred.Consensus.WinProb
	if pred.Consensus.FavoredTeam == models.FavoredAway {
		got = 100 - got
	}

	if diff := got - mean; diff > 0.11 || diff < -0.11 {
		t.Errorf("consensus home prob %f differs from mean %f", got, mean)
	}
}

func TestEvenMatchupStaysNearCoinFlip(t *testing.T) {
	g := &models.Game{
		GameID:       "401705002",
		SportKey:     "basketball_nba",
		HomeTeamAbbr: "NYK",
		AwayTeamAbbr: "PHI",
		HomeRecord:   models.TeamRecord{Wins: 6, Losses: 6},
		AwayRecord:   models.TeamRecord{Wins: 6, Losses: 6},
	}

	pred := predictor.New().PredictGame(g, 0)

	// Equal records leave only home court; home should edge ahead but
	// stay well under a blowout call
	elo := pred.Predictions[0]
	if elo.HomeWinProb <= 50 || elo.HomeWinProb > 65 {
		t.Errorf("even matchup home prob = %f, want slight home edge", elo.HomeWinProb)
	}
}

func TestPredictionCachedWithinFreshnessWindow(t *testing.T) {
	p := predictor.New()

	first := p.PredictGame(game(), 0)
	second := p.PredictGame(game(), 0)

	if !first.GeneratedAt.Equal(second.GeneratedAt) {
		t.Error("second call recomputed inside the freshness window")
	}
}

func TestConfidenceBounds(t *testing.T) {
	records := []models.TeamRecord{
		{Wins: 12, Losses: 0}, {Wins: 0, Losses: 12}, {Wins: 6, Losses: 6}, {},
	}

	p := predictor.New()
	id := 0
	for _, home := range records {
		for _, away := range records {
			for injuries := 0; injuries <= 4; injuries += 2 {
				id++
				g := &models.Game{
					GameID:     string(rune('a' + id)),
					SportKey:   "basketball_nba",
					HomeRecord: home,
					AwayRecord: away,
				}
				pred := p.PredictGame(g, injuries)
				if pred.Consensus.Confidence < 0 || pred.Consensus.Confidence > 100 {
					t.Fatalf("confidence %f out of [0,100]", pred.Consensus.Confidence)
				}
				if pred.Consensus.WinProb < 50 || pred.Consensus.WinProb > 100 {
					t.Fatalf("favored win prob %f out of [50,100]", pred.Consensus.WinProb)
				}
			}
		}
	}
}
