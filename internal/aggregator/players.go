package aggregator

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/XavierBriggs/vantage/internal/cache"
	"github.com/XavierBriggs/vantage/internal/providers/espn"
	"github.com/XavierBriggs/vantage/internal/scoring"
	"github.com/XavierBriggs/vantage/internal/synthetic"
	"github.com/XavierBriggs/vantage/pkg/contracts"
	"github.com/XavierBriggs/vantage/pkg/models"
)

// Streak classification thresholds, percent deviation from season average
const (
	streakThreshold  = 15.0
	outlierThreshold = 60.0

	performersPerGame = 2
)

// playerLine is one athlete's parsed box-score row
type playerLine struct {
	athleteID string
	name      string
	teamAbbr  string
	position  string
	current   map[string]float64
}

// playersForSport builds hot/cold streak records from today's box scores,
// enriched with season averages per athlete. When live data yields fewer
// than the minimum threshold the synthesizer tops the list up.
func (f *Facade) playersForSport(ctx context.Context, module contracts.SportModule, refresh RefreshMode) ([]*models.PlayerTrend, error) {
	sportKey := module.GetSportKey()
	key := "players:" + sportKey

	if refresh != RefreshForce {
		if trends, ok := f.players.Get(key); ok {
			return trends, nil
		}
	}

	games, err := f.fetchGames(ctx, module, refresh)
	if err != nil {
		return nil, err
	}

	now := f.now()
	var trends []*models.PlayerTrend

	fetched := 0
	enriched := 0
	for i := range games {
		game := &games[i]
		if game.Status != models.StatusLive && game.Status != models.StatusFinal {
			continue
		}
		if fetched >= maxBoxScores {
			break
		}
		fetched++

		summary, err := f.provider.FetchGameSummary(ctx, module.GetESPNSportPath(), game.GameID)
		if err != nil {
			// One missing box score means fewer results, not a failure
			log.Printf("[%s] box score %s unavailable: %v", sportKey, game.GameID, err)
			continue
		}

		for _, line := range topPerformers(module, summary) {
			if enriched >= maxAthleteEnrich {
				break
			}
			enriched++

			if trend := f.buildPlayerTrend(ctx, module, game, line, now); trend != nil {
				trends = append(trends, trend)
			}
		}
	}

	if len(trends) < synthetic.MinRealRecords {
		for _, synth := range synthetic.PlayerTrends(module, syntheticCount, now.Truncate(cache.TrendsTTL)) {
			synth := synth
			trends = append(trends, &synth)
		}
	}

	f.players.Set(key, trends, cache.TrendsTTL)
	return trends, nil
}

// buildPlayerTrend compares an athlete's game line against their season
// averages and keeps them only when the deviation clears the streak
// threshold
func (f *Facade) buildPlayerTrend(ctx context.Context, module contracts.SportModule, game *models.Game, line playerLine, now time.Time) *models.PlayerTrend {
	sportKey := module.GetSportKey()

	var seasonStats map[string]float64
	if feed, err := f.provider.FetchAthleteStats(ctx, module.GetESPNSportPath(), line.athleteID); err == nil {
		seasonStats = feed.StatMap()
	} else {
		log.Printf("[%s] season stats for %s unavailable: %v", sportKey, line.name, err)
	}

	var (
		snapshots []models.StatSnapshot
		props     []models.CalculatedProp
		topPct    float64 // signed deviation with the largest magnitude
	)

	for _, metric := range module.PropMetrics() {
		current, ok := line.current[metric]
		if !ok {
			continue
		}
		season := seasonStats[metric]
		if season <= 0 {
			continue
		}

		pct := (current - season) / season * 100
		if math.Abs(pct) > math.Abs(topPct) {
			topPct = pct
		}

		snapshots = append(snapshots, models.StatSnapshot{
			Metric:        metric,
			Current:       current,
			SeasonAvg:     season,
			Last5Avg:      current, // one game of recency is all the feed gives
			PercentChange: round1(pct),
		})

		factors := models.PropFactors{
			SeasonAvg: season,
			RecentAvg: current,
			RestDays:  1,
		}

		side := models.PropOver
		if current < season {
			side = models.PropUnder
		}

		props = append(props, models.CalculatedProp{
			Metric:         metric,
			SuggestedLine:  roundHalf((season + current) / 2),
			Recommendation: side,
			Confidence:     scoring.PropConfidence(factors),
			Factors:        factors,
		})
	}

	if len(snapshots) == 0 || math.Abs(topPct) < streakThreshold {
		return nil
	}

	streak := models.StreakHot
	direction := "hot"
	if topPct < 0 {
		streak = models.StreakCold
		direction = "cold"
	}
	if math.Abs(topPct) >= outlierThreshold {
		streak = models.StreakOutlier
	}

	// The feed carries no game-log history, so streak length is
	// hash-derived from the athlete identity: bounded and reproducible
	streakLen := synthetic.Pick(sportKey+":streak:"+line.athleteID, 3, 7)

	return &models.PlayerTrend{
		Trend: models.Trend{
			ID:       "player-" + sportKey + "-" + line.athleteID,
			SportKey: sportKey,
			Category: models.CategoryPlayer,
			Severity: scoring.StreakSeverity(topPct),
			Title:    fmt.Sprintf("%s is %s", line.name, direction),
			Description: fmt.Sprintf("%s running %+.0f%% vs season average over %d games",
				line.name, topPct, streakLen),
			Timestamp: now,
			IsLive:    game.Status == models.StatusLive,
		},
		PlayerID:     line.athleteID,
		PlayerName:   line.name,
		TeamAbbr:     line.teamAbbr,
		Position:     line.position,
		Streak:       streak,
		StreakLength: streakLen,
		Stats:        snapshots,
		Props:        props,
	}
}

// topPerformers parses a game summary's stat tables and returns the
// strongest lines per team, ranked by the sport's primary metric
func topPerformers(module contracts.SportModule, summary *espn.GameSummary) []playerLine {
	if summary == nil || summary.Boxscore == nil {
		return nil
	}

	primary := ""
	if metrics := module.PropMetrics(); len(metrics) > 0 {
		primary = metrics[0]
	}

	var out []playerLine
	for _, teamTable := range summary.Boxscore.Players {
		teamAbbr := ""
		if teamTable.Team != nil {
			teamAbbr = teamTable.Team.Abbreviation
		}

		byAthlete := make(map[string]*playerLine)
		var order []string

		for ti := range teamTable.Statistics {
			table := &teamTable.Statistics[ti]
			columns := table.Columns()

			for _, row := range table.Athletes {
				if row.Athlete == nil || row.Athlete.ID == "" {
					continue
				}

				lp, ok := byAthlete[row.Athlete.ID]
				if !ok {
					lp = &playerLine{
						athleteID: row.Athlete.ID,
						name:      row.Athlete.DisplayName,
						teamAbbr:  teamAbbr,
						position:  row.Athlete.PositionAbbr(),
						current:   make(map[string]float64),
					}
					byAthlete[row.Athlete.ID] = lp
					order = append(order, row.Athlete.ID)
				}

				for ci, label := range columns {
					if ci >= len(row.Stats) {
						break
					}
					metric := boxScoreMetric(module.GetSportKey(), table.Name, label)
					if metric == "" {
						continue
					}
					lp.current[metric] = parseStatValue(row.Stats[ci])
				}
			}
		}

		lines := make([]playerLine, 0, len(order))
		for _, id := range order {
			lines = append(lines, *byAthlete[id])
		}

		sort.SliceStable(lines, func(i, j int) bool {
			return lines[i].current[primary] > lines[j].current[primary]
		})

		if len(lines) > performersPerGame {
			lines = lines[:performersPerGame]
		}
		out = append(out, lines...)
	}

	return out
}

// boxScoreMetric maps a stat table column onto a normalized metric name.
// Group names matter for sports whose box scores split into per-category
// tables; basketball's single table goes by label alone.
func boxScoreMetric(sportKey, group, label string) string {
	label = strings.ToUpper(strings.TrimSpace(label))
	group = strings.ToLower(strings.TrimSpace(group))

	switch sportKey {
	case "basketball_nba":
		switch label {
		case "PTS":
			return "points"
		case "REB":
			return "rebounds"
		case "AST":
			return "assists"
		case "MIN":
			return "minutes"
		}
	case "american_football_nfl":
		if label == "YDS" {
			switch group {
			case "passing":
				return "passingYards"
			case "rushing":
				return "rushingYards"
			case "receiving":
				return "receivingYards"
			}
		}
	case "baseball_mlb":
		if group == "" || group == "batting" {
			switch label {
			case "H":
				return "hits"
			case "HR":
				return "homeRuns"
			case "RBI":
				return "RBIs"
			}
		}
	case "ice_hockey_nhl":
		switch label {
		case "G":
			return "goals"
		case "A":
			return "assists"
		case "S", "SOG":
			return "shotsTotal"
		}
	}

	return ""
}

// parseStatValue parses a box-score cell, tolerating "33:15" minute
// strings and plus-minus prefixes
func parseStatValue(raw string) float64 {
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "+"))
	if raw == "" || raw == "--" {
		return 0
	}

	if strings.Contains(raw, ":") {
		parts := strings.SplitN(raw, ":", 2)
		mins, _ := strconv.ParseFloat(parts[0], 64)
		secs, _ := strconv.ParseFloat(parts[1], 64)
		return mins + secs/60
	}

	// "7-12" shooting splits count makes
	if idx := strings.Index(raw, "-"); idx > 0 {
		raw = raw[:idx]
	}

	f, _ := strconv.ParseFloat(raw, 64)
	return f
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

// roundHalf rounds to the nearest 0.5, the way books post lines
func roundHalf(f float64) float64 {
	return math.Round(f*2) / 2
}
