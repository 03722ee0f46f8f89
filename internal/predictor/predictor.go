// Package predictor folds independent win-probability estimates into a
// single consensus per game. The internal source is an Elo-style rating
// derived from win-loss records; when the scoreboard carries a moneyline
// a market-implied source joins it. Sources are averaged unweighted.
package predictor

import (
	"fmt"
	"math"
	"time"

	"github.com/XavierBriggs/vantage/internal/cache"
	"github.com/XavierBriggs/vantage/internal/scoring"
	"github.com/XavierBriggs/vantage/pkg/models"
)

const (
	// Elo-style rating parameters
	baseRating    = 1500.0
	ratingSpread  = 400.0 // rating points per unit of win-pct deviation from .500
	homeBonus     = 65.0
	logisticScale = 400.0

	// A computed prediction is reused for this window before recomputation
	freshness = 5 * time.Minute
)

// Predictor computes game predictions, caching per game+sport
type Predictor struct {
	cache *cache.TTL[models.GamePrediction]
	now   func() time.Time
}

// New creates a predictor with its own prediction cache
func New() *Predictor {
	return &Predictor{
		cache: cache.NewTTL[models.GamePrediction](),
		now:   time.Now,
	}
}

// PredictGame returns the prediction set for a game, serving a cached
// copy when one is still fresh. keyInjuries is the count of high-impact
// injuries known for either side, which erodes confidence.
func (p *Predictor) PredictGame(game *models.Game, keyInjuries int) models.GamePrediction {
	key := fmt.Sprintf("%s:%s", game.SportKey, game.GameID)

	if cached, ok := p.cache.Get(key); ok {
		return cached
	}

	pred := p.compute(game, keyInjuries)
	p.cache.Set(key, pred, freshness)
	return pred
}

func (p *Predictor) compute(game *models.Game, keyInjuries int) models.GamePrediction {
	entries := []models.PredictionEntry{p.eloPrediction(game, keyInjuries)}

	if market, ok := marketPrediction(game, keyInjuries); ok {
		entries = append(entries, market)
	}

	pred := models.GamePrediction{
		GameID:       game.GameID,
		SportKey:     game.SportKey,
		HomeTeamAbbr: game.HomeTeamAbbr,
		AwayTeamAbbr: game.AwayTeamAbbr,
		Predictions:  entries,
		Consensus:    consensusOf(entries),
		CurrentOdds:  game.Odds,
		GeneratedAt:  p.now(),
	}

	return pred
}

// eloPrediction converts win-loss records to ratings and a logistic
// win probability, with a fixed home-court bonus
func (p *Predictor) eloPrediction(game *models.Game, keyInjuries int) models.PredictionEntry {
	homeRating := baseRating + (game.HomeRecord.WinPct()-0.5)*ratingSpread + homeBonus
	awayRating := baseRating + (game.AwayRecord.WinPct()-0.5)*ratingSpread

	homeProb := 100 / (1 + math.Pow(10, (awayRating-homeRating)/logisticScale))

	favored := homeProb
	if favored < 50 {
		favored = 100 - favored
	}

	return models.PredictionEntry{
		Source:      "elo",
		HomeWinProb: round1(homeProb),
		AwayWinProb: round1(100 - homeProb),
		Confidence:  scoring.PredictionConfidence(favored, game.HomeRecord, game.AwayRecord, keyInjuries),
		Reasoning: fmt.Sprintf("%s %d-%d vs %s %d-%d, home court included",
			game.HomeTeamAbbr, game.HomeRecord.Wins, game.HomeRecord.Losses,
			game.AwayTeamAbbr, game.AwayRecord.Wins, game.AwayRecord.Losses),
	}
}

// marketPrediction derives a second source from the posted moneylines
func marketPrediction(game *models.Game, keyInjuries int) (models.PredictionEntry, bool) {
	if game.Odds == nil || game.Odds.HomeMoneyline == 0 || game.Odds.AwayMoneyline == 0 {
		return models.PredictionEntry{}, false
	}

	homeImplied := impliedProb(game.Odds.HomeMoneyline)
	awayImplied := impliedProb(game.Odds.AwayMoneyline)

	// Remove the vig so the two sides sum to 100
	overround := homeImplied + awayImplied
	if overround <= 0 {
		return models.PredictionEntry{}, false
	}
	homeProb := homeImplied / overround * 100

	favored := homeProb
	if favored < 50 {
		favored = 100 - favored
	}

	return models.PredictionEntry{
		Source:      "market",
		HomeWinProb: round1(homeProb),
		AwayWinProb: round1(100 - homeProb),
		Confidence:  scoring.PredictionConfidence(favored, game.HomeRecord, game.AwayRecord, keyInjuries),
		Reasoning:   fmt.Sprintf("implied by moneyline %+d/%+d", game.Odds.HomeMoneyline, game.Odds.AwayMoneyline),
	}, true
}

// impliedProb converts an American moneyline to its implied probability
func impliedProb(moneyline int) float64 {
	if moneyline < 0 {
		m := float64(-moneyline)
		return m / (m + 100)
	}
	return 100 / (float64(moneyline) + 100)
}

// consensusOf averages all entries unweighted; a single source passes
// through unchanged
func consensusOf(entries []models.PredictionEntry) models.Consensus {
	var homeSum, confSum float64
	for _, e := range entries {
		homeSum += e.HomeWinProb
		confSum += e.Confidence
	}

	n := float64(len(entries))
	homeProb := homeSum / n

	consensus := models.Consensus{
		FavoredTeam: models.FavoredHome,
		WinProb:     round1(homeProb),
		Confidence:  round1(confSum / n),
	}
	if homeProb < 50 {
		consensus.FavoredTeam = models.FavoredAway
		consensus.WinProb = round1(100 - homeProb)
	}

	return consensus
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
