// Package synthetic generates placeholder analytics records when real
// upstream data is insufficient. Generation is fully deterministic:
// every derived value comes from an FNV-1a hash of a stable identity,
// never from a random source, so the degraded mode is reproducible and
// the UI stays stable while offline or rate-limited.
package synthetic

import (
	"fmt"
	"hash/fnv"
	"math"
	"time"

	"github.com/XavierBriggs/vantage/internal/scoring"
	"github.com/XavierBriggs/vantage/pkg/contracts"
	"github.com/XavierBriggs/vantage/pkg/models"
)

// MinRealRecords is the threshold below which the pipelines top up
// with synthetic records
const MinRealRecords = 3

// hash64 is the single source of pseudo-randomness here
func hash64(seed string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(seed))
	return h.Sum64()
}

// Pick returns a deterministic int in [min, max] derived from seed
func Pick(seed string, min, max int) int {
	if max <= min {
		return min
	}
	return min + int(hash64(seed)%uint64(max-min+1))
}

// PickFloat returns a deterministic float in [min, max) with 0.1 steps
func PickFloat(seed string, min, max float64) float64 {
	steps := uint64((max - min) * 10)
	if steps == 0 {
		return min
	}
	return min + float64(hash64(seed)%steps)/10
}

var injuryStatuses = []models.InjuryStatus{
	models.InjuryOut,
	models.InjuryDoubtful,
	models.InjuryQuestionable,
	models.InjuryProbable,
	models.InjuryDayToDay,
}

var injuryKinds = []string{"Ankle", "Knee", "Hamstring", "Back", "Shoulder", "Illness"}

// InjuryTrends generates count synthetic injury records from the sport's
// built-in roster. generatedAt stamps the records and is part of the
// deterministic input, so repeated calls with the same arguments are
// byte-identical.
func InjuryTrends(module contracts.SportModule, count int, generatedAt time.Time) []models.InjuryTrend {
	roster := module.FallbackRoster()
	sportKey := module.GetSportKey()

	if count > len(roster) {
		count = len(roster)
	}

	out := make([]models.InjuryTrend, 0, count)
	for i := 0; i < count; i++ {
		p := roster[i]
		seed := sportKey + ":" + p.PlayerID

		status := injuryStatuses[Pick(seed+":status", 0, len(injuryStatuses)-1)]
		kind := injuryKinds[Pick(seed+":kind", 0, len(injuryKinds)-1)]
		impact := float64(Pick(seed+":impact", 20, 95))
		severity := scoring.InjurySeverity(status, impact)

		opponent := roster[Pick(seed+":opp", 0, len(roster)-1)].TeamAbbr

		trend := models.InjuryTrend{
			Trend: models.Trend{
				ID:          "syn-inj-" + p.PlayerID,
				SportKey:    sportKey,
				Category:    models.CategoryInjury,
				Severity:    severity,
				Title:       fmt.Sprintf("%s (%s) - %s", p.Name, p.TeamAbbr, status),
				Description: fmt.Sprintf("%s is %s with a %s injury", p.Name, status, kind),
				Timestamp:   generatedAt,
			},
			PlayerID:     p.PlayerID,
			PlayerName:   p.Name,
			TeamAbbr:     p.TeamAbbr,
			Position:     p.Position,
			InjuryStatus: status,
			Details:      kind,
			Source:       "synthetic",
			Impact: models.PlayerImpact{
				UsageRate:   PickFloat(seed+":usage", 12, 34),
				ImpactScore: impact,
			},
		}

		if status == models.InjuryOut || status == models.InjuryDoubtful {
			trend.GameImpact = &models.GameImpact{
				Opponent:    opponent,
				SpreadDelta: PickFloat(seed+":spread", 0.5, 4.5),
				TotalDelta:  -PickFloat(seed+":total", 1, 6),
			}
		}

		out = append(out, trend)
	}

	return out
}

// PlayerTrends generates count synthetic streak records from the sport's
// built-in roster, with stat snapshots and prop suggestions derived from
// the same hash identities.
func PlayerTrends(module contracts.SportModule, count int, generatedAt time.Time) []models.PlayerTrend {
	roster := module.FallbackRoster()
	sportKey := module.GetSportKey()
	metrics := module.PropMetrics()

	if count > len(roster) {
		count = len(roster)
	}

	out := make([]models.PlayerTrend, 0, count)
	for i := 0; i < count; i++ {
		p := roster[i]
		seed := sportKey + ":" + p.PlayerID

		streak := models.StreakHot
		if hash64(seed+":dir")%2 == 1 {
			streak = models.StreakCold
		}
		streakLen := Pick(seed+":len", 3, 9)

		var stats []models.StatSnapshot
		var props []models.CalculatedProp
		worst := 0.0

		for _, metric := range metrics {
			mseed := seed + ":" + metric
			season := PickFloat(mseed+":season", 8, 30)

			// Hot players run above their baseline, cold below
			swing := PickFloat(mseed+":swing", 0.15, 0.45)
			recent := season * (1 + swing)
			if streak == models.StreakCold {
				recent = season * (1 - swing)
			}

			pct := (recent - season) / season * 100
			if math.Abs(pct) > math.Abs(worst) {
				worst = pct
			}

			stats = append(stats, models.StatSnapshot{
				Metric:        metric,
				Current:       round1(recent),
				SeasonAvg:     round1(season),
				Last5Avg:      round1(recent),
				PercentChange: round1(pct),
			})

			factors := models.PropFactors{
				SeasonAvg:    round1(season),
				RecentAvg:    round1(recent),
				OpponentAvg:  round1(PickFloat(mseed+":opp", 8, 30)),
				RestDays:     Pick(mseed+":rest", 0, 3),
				HomeAwayDiff: round1(PickFloat(mseed+":ha", -4, 4)),
			}

			side := models.PropOver
			if recent < season {
				side = models.PropUnder
			}

			props = append(props, models.CalculatedProp{
				Metric:         metric,
				SuggestedLine:  roundHalf((season + recent) / 2),
				Recommendation: side,
				Confidence:     scoring.PropConfidence(factors),
				Factors:        factors,
			})
		}

		direction := "hot"
		if streak == models.StreakCold {
			direction = "cold"
		}

		out = append(out, models.PlayerTrend{
			Trend: models.Trend{
				ID:          "syn-player-" + p.PlayerID,
				SportKey:    sportKey,
				Category:    models.CategoryPlayer,
				Severity:    scoring.StreakSeverity(worst),
				Title:       fmt.Sprintf("%s is %s", p.Name, direction),
				Description: fmt.Sprintf("%s has run %s for %d straight games", p.Name, direction, streakLen),
				Timestamp:   generatedAt,
			},
			PlayerID:     p.PlayerID,
			PlayerName:   p.Name,
			TeamAbbr:     p.TeamAbbr,
			Position:     p.Position,
			Streak:       streak,
			StreakLength: streakLen,
			Stats:        stats,
			Props:        props,
		})
	}

	return out
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

// roundHalf rounds to the nearest 0.5, the way books post lines
func roundHalf(f float64) float64 {
	return math.Round(f*2) / 2
}
