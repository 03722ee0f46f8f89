package aggregator

import (
	"strconv"
	"strings"
	"time"

	"github.com/XavierBriggs/vantage/internal/providers/espn"
	"github.com/XavierBriggs/vantage/pkg/contracts"
	"github.com/XavierBriggs/vantage/pkg/models"
)

// parseGame maps one scoreboard event onto the universal game model.
// Returns nil when the event is too malformed to use; a malformed event
// is treated as absent, never as a pipeline failure.
func parseGame(module contracts.SportModule, ev *espn.Event, now time.Time) *models.Game {
	comp := ev.FirstCompetition()
	if ev.ID == "" || comp == nil {
		return nil
	}

	home := comp.CompetitorBySide("home")
	away := comp.CompetitorBySide("away")
	if home == nil || away == nil || home.Team == nil || away.Team == nil {
		return nil
	}

	game := &models.Game{
		GameID:       ev.ID,
		SportKey:     module.GetSportKey(),
		Status:       parseStatus(ev.Status),
		HomeTeam:     module.NormalizeTeamName(home.Team.DisplayName),
		HomeTeamAbbr: home.Team.Abbreviation,
		HomeTeamID:   home.Team.ID,
		AwayTeam:     module.NormalizeTeamName(away.Team.DisplayName),
		AwayTeamAbbr: away.Team.Abbreviation,
		AwayTeamID:   away.Team.ID,
		HomeScore:    parseScore(home.Score),
		AwayScore:    parseScore(away.Score),
		HomeRecord:   parseRecord(home.TotalRecord()),
		AwayRecord:   parseRecord(away.TotalRecord()),
		CommenceTime: parseCommenceTime(ev.Date, now),
		UpdatedAt:    now,

		HomeVenueSplit: parseSplit(home, "home"),
		AwayVenueSplit: parseSplit(away, "road"),
	}

	if odds := comp.FirstOdds(); odds != nil {
		game.Odds = parseOdds(odds)
	}

	return game
}

// parseStatus converts the provider status block to our GameStatus
func parseStatus(status *espn.EventStatus) models.GameStatus {
	if status == nil || status.Type == nil {
		return models.StatusUpcoming
	}

	if status.Type.Completed {
		return models.StatusFinal
	}

	switch status.Type.State {
	case "in":
		return models.StatusLive
	case "post":
		return models.StatusFinal
	case "pre":
		return models.StatusUpcoming
	default:
		return models.StatusUpcoming
	}
}

// parseRecord parses a "10-2" summary into a win-loss record
func parseRecord(summary string) models.TeamRecord {
	parts := strings.SplitN(summary, "-", 2)
	if len(parts) != 2 {
		return models.TeamRecord{}
	}

	wins, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	losses, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return models.TeamRecord{}
	}

	return models.TeamRecord{Wins: wins, Losses: losses}
}

// parseSplit finds a typed record ("home", "road") on a competitor
func parseSplit(c *espn.Competitor, recordType string) models.SplitRecord {
	for _, r := range c.Records {
		if r.Type == recordType || r.Name == recordType {
			rec := parseRecord(r.Summary)
			return models.SplitRecord{Wins: rec.Wins, Losses: rec.Losses}
		}
	}
	return models.SplitRecord{}
}

func parseScore(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// parseCommenceTime parses the provider date, falling back to now so a
// missing date never breaks liveness handling downstream
func parseCommenceTime(dateStr string, now time.Time) time.Time {
	if dateStr == "" {
		return now
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z"} {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t
		}
	}

	return now
}

func parseOdds(odds *espn.EventOdds) *models.OddsSnapshot {
	snap := &models.OddsSnapshot{
		Details:   odds.Details,
		Spread:    odds.Spread,
		OverUnder: odds.OverUnder,
	}
	if odds.HomeTeamOdds != nil {
		snap.HomeMoneyline = odds.HomeTeamOdds.MoneyLine
	}
	if odds.AwayTeamOdds != nil {
		snap.AwayMoneyline = odds.AwayTeamOdds.MoneyLine
	}
	return snap
}
