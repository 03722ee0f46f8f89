package scoring

import (
	"math"

	"github.com/XavierBriggs/vantage/pkg/models"
)

// Confidence bounds
const (
	ConfidenceMin = 0.0
	ConfidenceMax = 100.0
)

// PredictionConfidence scores how much to trust a win-probability call.
// It grows with the deviation from a 50/50 split and with the record
// differential between the teams, and shrinks when key injuries cloud
// the picture. winProb is the favored side's probability in [0,100].
func PredictionConfidence(winProb float64, home, away models.TeamRecord, keyInjuries int) float64 {
	deviation := math.Abs(winProb - 50)

	recordDiff := math.Abs(home.WinPct() - away.WinPct())

	confidence := 40 +
		deviation*0.9 +
		recordDiff*40 -
		float64(keyInjuries)*5

	return ClampConfidence(confidence)
}

// PropConfidence scores a suggested prop line from its factor bag.
// Larger recent-vs-season divergence means a stronger read; missing
// opponent data and short rest lower it.
func PropConfidence(f models.PropFactors) float64 {
	if f.SeasonAvg == 0 {
		return ConfidenceMin
	}

	divergence := math.Abs(f.RecentAvg-f.SeasonAvg) / f.SeasonAvg * 100

	confidence := 45 + divergence*0.8

	if f.OpponentAvg > 0 {
		confidence += 5
	}
	if f.RestDays >= 2 {
		confidence += 5
	} else if f.RestDays == 0 {
		confidence -= 5
	}
	confidence += math.Abs(f.HomeAwayDiff) * 0.5

	return ClampConfidence(confidence)
}

// ClampConfidence bounds a confidence value to [0,100]
func ClampConfidence(c float64) float64 {
	if c < ConfidenceMin {
		return ConfidenceMin
	}
	if c > ConfidenceMax {
		return ConfidenceMax
	}
	return c
}
