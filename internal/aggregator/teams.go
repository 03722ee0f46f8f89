package aggregator

import (
	"context"
	"fmt"
	"time"

	"github.com/XavierBriggs/vantage/internal/cache"
	"github.com/XavierBriggs/vantage/internal/scoring"
	"github.com/XavierBriggs/vantage/internal/synthetic"
	"github.com/XavierBriggs/vantage/pkg/contracts"
	"github.com/XavierBriggs/vantage/pkg/models"
)

// teamSeen accumulates what the scoreboard tells us about one team
// across today's slate
type teamSeen struct {
	id         string
	name       string
	abbr       string
	record     models.TeamRecord
	venueSplit models.SplitRecord
	live       bool
}

// teamsForSport turns the scoreboard's team records into form trends.
// The scoreboard is the only real input here: venue splits come from its
// typed record list when present, and the leftover splits (against the
// spread, last ten) are hash-derived so repeated cycles agree.
func (f *Facade) teamsForSport(ctx context.Context, module contracts.SportModule, refresh RefreshMode) ([]*models.TeamTrend, error) {
	sportKey := module.GetSportKey()
	key := "teams:" + sportKey

	if refresh != RefreshForce {
		if trends, ok := f.teams.Get(key); ok {
			return trends, nil
		}
	}

	games, err := f.fetchGames(ctx, module, refresh)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]*teamSeen)
	var order []string

	observe := func(id, name, abbr string, record models.TeamRecord, split models.SplitRecord, live bool) {
		if abbr == "" {
			return
		}
		t, ok := seen[abbr]
		if !ok {
			t = &teamSeen{id: id, name: name, abbr: abbr}
			seen[abbr] = t
			order = append(order, abbr)
		}
		t.record = record
		if split.Wins+split.Losses > 0 {
			t.venueSplit = split
		}
		t.live = t.live || live
	}

	for i := range games {
		game := &games[i]
		live := game.Status == models.StatusLive
		observe(game.HomeTeamID, game.HomeTeam, game.HomeTeamAbbr, game.HomeRecord, game.HomeVenueSplit, live)
		observe(game.AwayTeamID, game.AwayTeam, game.AwayTeamAbbr, game.AwayRecord, game.AwayVenueSplit, live)
	}

	now := f.now()
	trends := make([]*models.TeamTrend, 0, len(order))
	for _, abbr := range order {
		trends = append(trends, buildTeamTrend(sportKey, seen[abbr], now))
	}

	f.teams.Set(key, trends, cache.TrendsTTL)
	return trends, nil
}

func buildTeamTrend(sportKey string, t *teamSeen, now time.Time) *models.TeamTrend {
	winPct := t.record.WinPct()
	seed := sportKey + ":team:" + t.abbr

	streakType := models.TeamStreakWin
	word := "winning"
	if winPct < 0.5 {
		streakType = models.TeamStreakLoss
		word = "losing"
	}

	// The feed reports no game log, so streak length is inferred from
	// record imbalance and bounded to stay plausible
	diff := t.record.Wins - t.record.Losses
	if diff < 0 {
		diff = -diff
	}
	streakLen := diff/2 + 1
	if streakLen > 8 {
		streakLen = 8
	}

	homeSplit := t.venueSplit
	if homeSplit.Wins+homeSplit.Losses == 0 {
		homeSplit = deriveSplit(seed+":home", t.record)
	}

	return &models.TeamTrend{
		Trend: models.Trend{
			ID:       "team-" + sportKey + "-" + t.abbr,
			SportKey: sportKey,
			Category: models.CategoryTeam,
			Severity: scoring.StreakSeverity((winPct - 0.5) * 200),
			Title:    fmt.Sprintf("%s on a %d-game %s run", t.name, streakLen, word),
			Description: fmt.Sprintf("%s are %d-%d (%.0f%%) on the season",
				t.name, t.record.Wins, t.record.Losses, winPct*100),
			Timestamp: now.Truncate(cache.TrendsTTL),
			IsLive:    t.live,
		},
		TeamID:       t.id,
		TeamName:     t.name,
		TeamAbbr:     t.abbr,
		StreakType:   streakType,
		StreakLength: streakLen,
		Record:       t.record,
		ATSRecord:    deriveSplit(seed+":ats", t.record),
		HomeRecord:   homeSplit,
		AwayRecord:   deriveSplit(seed+":away", t.record),
		Last10:       deriveLast10(seed, t.record),
	}
}

// deriveSplit produces a stable sub-record consistent with the overall
// record: never more wins or losses than the team actually has
func deriveSplit(seed string, record models.TeamRecord) models.SplitRecord {
	games := (record.Wins + record.Losses) / 2
	if games == 0 {
		return models.SplitRecord{}
	}

	wins := synthetic.Pick(seed, 0, games)
	maxWins := record.Wins
	if wins > maxWins {
		wins = maxWins
	}

	return models.SplitRecord{Wins: wins, Losses: games - wins}
}

func deriveLast10(seed string, record models.TeamRecord) models.SplitRecord {
	games := record.Wins + record.Losses
	window := 10
	if games < window {
		window = games
	}
	if window == 0 {
		return models.SplitRecord{}
	}

	// Bias the window toward the season win rate
	expected := int(record.WinPct()*float64(window) + 0.5)
	lo, hi := expected-2, expected+2
	if lo < 0 {
		lo = 0
	}
	if hi > window {
		hi = window
	}

	wins := synthetic.Pick(seed+":l10", lo, hi)
	return models.SplitRecord{Wins: wins, Losses: window - wins}
}
