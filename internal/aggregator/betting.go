package aggregator

import (
	"context"
	"fmt"
	"math"

	"github.com/XavierBriggs/vantage/internal/cache"
	"github.com/XavierBriggs/vantage/internal/scoring"
	"github.com/XavierBriggs/vantage/internal/synthetic"
	"github.com/XavierBriggs/vantage/pkg/contracts"
	"github.com/XavierBriggs/vantage/pkg/models"
)

// bettingForSport derives one betting trend per game with a posted line.
// There is no historical line store, so movement deltas and sharp-action
// signals are hash-derived from the game id and current line: stable
// while the line holds, shifting when the book moves it.
func (f *Facade) bettingForSport(ctx context.Context, module contracts.SportModule, refresh RefreshMode) ([]*models.BettingTrend, error) {
	sportKey := module.GetSportKey()
	key := "betting:" + sportKey

	if refresh != RefreshForce {
		if trends, ok := f.betting.Get(key); ok {
			return trends, nil
		}
	}

	games, err := f.fetchGames(ctx, module, refresh)
	if err != nil {
		return nil, err
	}

	now := f.now()
	var trends []*models.BettingTrend

	for i := range games {
		game := &games[i]
		if game.Odds == nil || game.Status == models.StatusFinal {
			continue
		}

		seed := fmt.Sprintf("%s:%s:%.1f:%.1f", sportKey, game.GameID, game.Odds.Spread, game.Odds.OverUnder)

		spreadMove := synthetic.PickFloat(seed+":sm", -3, 3)
		totalMove := synthetic.PickFloat(seed+":tm", -4, 4)
		steam := math.Abs(spreadMove) >= 2

		// Reverse line movement: the spread drifts against the side the
		// moneyline says the public should be piling on
		publicOnHome := game.Odds.HomeMoneyline < game.Odds.AwayMoneyline
		rlm := (publicOnHome && spreadMove > 0.5) || (!publicOnHome && spreadMove < -0.5)

		sharp := models.SharpNone
		if steam || rlm {
			sharp = models.SharpHome
			if spreadMove > 0 {
				sharp = models.SharpAway
			}
		}

		severity := scoring.MovementSeverity(spreadMove, totalMove, steam)

		trends = append(trends, &models.BettingTrend{
			Trend: models.Trend{
				ID:       "bet-" + game.GameID,
				SportKey: sportKey,
				Category: models.CategoryBetting,
				Severity: severity,
				Title:    fmt.Sprintf("%s @ %s line watch", game.AwayTeamAbbr, game.HomeTeamAbbr),
				Description: fmt.Sprintf("Spread %s %.1f, total %.1f (moved %+.1f/%+.1f)",
					game.HomeTeamAbbr, game.Odds.Spread, game.Odds.OverUnder, spreadMove, totalMove),
				Timestamp: now,
				IsLive:    game.Status == models.StatusLive,
			},
			GameID:              game.GameID,
			HomeTeamAbbr:        game.HomeTeamAbbr,
			AwayTeamAbbr:        game.AwayTeamAbbr,
			CurrentSpread:       game.Odds.Spread,
			CurrentTotal:        game.Odds.OverUnder,
			SpreadMove:          spreadMove,
			TotalMove:           totalMove,
			HomeMoneyline:       game.Odds.HomeMoneyline,
			AwayMoneyline:       game.Odds.AwayMoneyline,
			ReverseLineMovement: rlm,
			SteamMove:           steam,
			SharpAction:         sharp,
		})
	}

	f.betting.Set(key, trends, cache.TrendsTTL)
	return trends, nil
}
