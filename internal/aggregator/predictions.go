package aggregator

import (
	"context"

	"github.com/XavierBriggs/vantage/pkg/contracts"
	"github.com/XavierBriggs/vantage/pkg/models"
)

// predictionsForSport runs the consensus predictor over today's
// undecided games. Freshness lives in the predictor's own per-game
// cache, so there is no pipeline cache here.
func (f *Facade) predictionsForSport(ctx context.Context, module contracts.SportModule) ([]models.GamePrediction, error) {
	games, err := f.fetchGames(ctx, module, RefreshCached)
	if err != nil {
		return nil, err
	}

	// Injury context only when the injury pipeline already ran this
	// window; predictions never trigger the injury fan-out themselves
	injuries, _ := f.injuries.Get("injuries:" + module.GetSportKey())

	preds := make([]models.GamePrediction, 0, len(games))
	for i := range games {
		game := &games[i]
		if game.Status == models.StatusFinal || game.Status == models.StatusPostponed {
			continue
		}

		keyInjuries := countKeyInjuries(injuries, game.HomeTeamAbbr, game.AwayTeamAbbr)
		preds = append(preds, f.predictor.PredictGame(game, keyInjuries))
	}

	return preds, nil
}

// countKeyInjuries tallies high and critical injuries touching either
// side of a game
func countKeyInjuries(injuries []models.InjuryTrend, homeAbbr, awayAbbr string) int {
	count := 0
	for i := range injuries {
		if injuries[i].TeamAbbr != homeAbbr && injuries[i].TeamAbbr != awayAbbr {
			continue
		}
		if injuries[i].Severity.Rank() >= models.SeverityHigh.Rank() {
			count++
		}
	}
	return count
}
