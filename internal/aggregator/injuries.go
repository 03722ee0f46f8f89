package aggregator

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/XavierBriggs/vantage/internal/cache"
	"github.com/XavierBriggs/vantage/internal/merger"
	"github.com/XavierBriggs/vantage/internal/providers/espn"
	"github.com/XavierBriggs/vantage/internal/scoring"
	"github.com/XavierBriggs/vantage/internal/synthetic"
	"github.com/XavierBriggs/vantage/pkg/contracts"
	"github.com/XavierBriggs/vantage/pkg/models"
)

// Feeds in descending trust order; the name is carried onto the record
// so the UI can say where a report came from
const (
	sourceTeamReport  = "team-report"
	sourceGameSummary = "game-summary"
	sourceRoster      = "roster"
)

// maxSummaryInjuries bounds the per-game summary fetches the injury
// pipeline adds on top of the box-score fetches
const maxSummaryInjuries = 2

// injuryCandidate is one feed's raw sighting of an injured player
type injuryCandidate struct {
	playerID   string
	playerName string
	teamAbbr   string
	position   string
	status     models.InjuryStatus
	details    string
	source     string
}

// injuriesForSport merges injury reports from three provider feeds,
// deduplicated in trust order, then scores each surviving record.
func (f *Facade) injuriesForSport(ctx context.Context, module contracts.SportModule, refresh RefreshMode) ([]models.InjuryTrend, error) {
	sportKey := module.GetSportKey()
	key := "injuries:" + sportKey

	if refresh != RefreshForce {
		if trends, ok := f.injuries.Get(key); ok {
			return trends, nil
		}
	}

	games, err := f.fetchGames(ctx, module, refresh)
	if err != nil {
		return nil, err
	}

	teams := injuryTeams(games)

	merged := merger.Merge(
		func(c injuryCandidate) []string {
			return merger.IdentityKeys(c.playerID, c.playerName, c.teamAbbr)
		},
		merger.Source[injuryCandidate]{Name: sourceTeamReport, Records: f.teamReportInjuries(ctx, module, teams)},
		merger.Source[injuryCandidate]{Name: sourceGameSummary, Records: f.summaryInjuries(ctx, module, games)},
		merger.Source[injuryCandidate]{Name: sourceRoster, Records: f.rosterInjuries(ctx, module, teams)},
	)

	now := f.now()
	trends := make([]models.InjuryTrend, 0, len(merged))
	for i, c := range merged {
		// Only the highest-trust handful is worth a per-athlete call
		enrich := i < maxAthleteEnrich
		trends = append(trends, f.buildInjuryTrend(ctx, module, games, c, enrich, now))
	}

	if len(trends) < synthetic.MinRealRecords {
		trends = append(trends, synthetic.InjuryTrends(module, syntheticCount, now.Truncate(cache.InjuriesTTL))...)
	}

	f.injuries.Set(key, trends, cache.InjuriesTTL)
	return trends, nil
}

// injuryTeam pairs a team id with its abbreviation for the per-team feeds
type injuryTeam struct {
	id   string
	abbr string
}

func injuryTeams(games []models.Game) []injuryTeam {
	seen := make(map[string]struct{})
	var teams []injuryTeam

	add := func(id, abbr string) {
		if id == "" || len(teams) >= maxInjuryTeams {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		teams = append(teams, injuryTeam{id: id, abbr: abbr})
	}

	for i := range games {
		add(games[i].HomeTeamID, games[i].HomeTeamAbbr)
		add(games[i].AwayTeamID, games[i].AwayTeamAbbr)
	}

	return teams
}

// teamReportInjuries queries the dedicated per-team injury feed, the most
// trusted source. Feed failures cost coverage, not the pipeline.
func (f *Facade) teamReportInjuries(ctx context.Context, module contracts.SportModule, teams []injuryTeam) []injuryCandidate {
	var out []injuryCandidate
	for _, team := range teams {
		feed, err := f.provider.FetchTeamInjuries(ctx, module.GetESPNSportPath(), team.id)
		if err != nil {
			log.Printf("[%s] injury report for %s unavailable: %v", module.GetSportKey(), team.abbr, err)
			continue
		}
		for i := range feed.Injuries {
			if c, ok := candidateFromEntry(&feed.Injuries[i], team.abbr, sourceTeamReport); ok {
				out = append(out, c)
			}
		}
	}
	return out
}

// summaryInjuries pulls the injury block from live game summaries
func (f *Facade) summaryInjuries(ctx context.Context, module contracts.SportModule, games []models.Game) []injuryCandidate {
	var out []injuryCandidate
	fetched := 0
	for i := range games {
		if games[i].Status != models.StatusLive {
			continue
		}
		if fetched >= maxSummaryInjuries {
			break
		}
		fetched++

		summary, err := f.provider.FetchGameSummary(ctx, module.GetESPNSportPath(), games[i].GameID)
		if err != nil {
			log.Printf("[%s] summary %s unavailable: %v", module.GetSportKey(), games[i].GameID, err)
			continue
		}

		for ti := range summary.Injuries {
			ref := &summary.Injuries[ti]
			abbr := ""
			if ref.Team != nil {
				abbr = ref.Team.Abbreviation
			}
			for ii := range ref.Injuries {
				if c, ok := candidateFromEntry(&ref.Injuries[ii], abbr, sourceGameSummary); ok {
					out = append(out, c)
				}
			}
		}
	}
	return out
}

// rosterInjuries scans team rosters for athletes carrying injury entries,
// the broadest and least trusted feed
func (f *Facade) rosterInjuries(ctx context.Context, module contracts.SportModule, teams []injuryTeam) []injuryCandidate {
	var out []injuryCandidate
	for _, team := range teams {
		feed, err := f.provider.FetchTeamRoster(ctx, module.GetESPNSportPath(), team.id)
		if err != nil {
			log.Printf("[%s] roster for %s unavailable: %v", module.GetSportKey(), team.abbr, err)
			continue
		}

		for _, group := range feed.Athletes {
			for i := range group.Items {
				entry := &group.Items[i]
				if len(entry.Injuries) == 0 {
					continue
				}

				inj := entry.Injuries[0]
				position := ""
				if entry.Position != nil {
					position = entry.Position.Abbreviation
				}

				details := ""
				if inj.Details != nil {
					details = inj.Details.Type
				}

				out = append(out, injuryCandidate{
					playerID:   entry.ID,
					playerName: entry.DisplayName,
					teamAbbr:   team.abbr,
					position:   position,
					status:     scoring.NormalizeInjuryStatus(inj.Status),
					details:    details,
					source:     sourceRoster,
				})
			}
		}
	}
	return out
}

func candidateFromEntry(entry *espn.InjuryEntry, teamAbbr, source string) (injuryCandidate, bool) {
	if entry.Athlete == nil {
		return injuryCandidate{}, false
	}

	details := ""
	if entry.Details != nil {
		details = entry.Details.Type
	}

	return injuryCandidate{
		playerID:   entry.Athlete.ID,
		playerName: entry.Athlete.DisplayName,
		teamAbbr:   teamAbbr,
		position:   entry.Athlete.PositionAbbr(),
		status:     scoring.NormalizeInjuryStatus(entry.Status),
		details:    details,
		source:     source,
	}, true
}

// buildInjuryTrend scores a merged candidate. Enriched records get season
// averages behind their impact score; the rest fall back to position
// defaults.
func (f *Facade) buildInjuryTrend(ctx context.Context, module contracts.SportModule, games []models.Game, c injuryCandidate, enrich bool, now time.Time) models.InjuryTrend {
	sportKey := module.GetSportKey()

	var seasonStats map[string]float64
	if enrich && c.playerID != "" {
		if feed, err := f.provider.FetchAthleteStats(ctx, module.GetESPNSportPath(), c.playerID); err == nil {
			seasonStats = feed.StatMap()
		} else {
			log.Printf("[%s] season stats for %s unavailable: %v", sportKey, c.playerName, err)
		}
	}

	impact := scoring.ImpactScore(sportKey, c.position, seasonStats)
	severity := scoring.InjurySeverity(c.status, impact)

	trend := models.InjuryTrend{
		Trend: models.Trend{
			ID:          "inj-" + sportKey + "-" + injuryID(c),
			SportKey:    sportKey,
			Category:    models.CategoryInjury,
			Severity:    severity,
			Title:       fmt.Sprintf("%s (%s) - %s", c.playerName, c.teamAbbr, c.status),
			Description: injuryDescription(c),
			Timestamp:   now,
		},
		PlayerID:     c.playerID,
		PlayerName:   c.playerName,
		TeamAbbr:     c.teamAbbr,
		Position:     c.position,
		InjuryStatus: c.status,
		Details:      c.details,
		Source:       c.source,
		Impact: models.PlayerImpact{
			SeasonAverages: seasonStats,
			ImpactScore:    impact,
		},
	}

	// Absences move lines; lesser designations do not
	if c.status == models.InjuryOut || c.status == models.InjuryDoubtful {
		trend.GameImpact = &models.GameImpact{
			Opponent:    opponentOf(games, c.teamAbbr),
			SpreadDelta: roundHalf(impact / 25),
			TotalDelta:  -roundHalf(impact / 20),
		}
	}

	return trend
}

func injuryID(c injuryCandidate) string {
	if c.playerID != "" {
		return c.playerID
	}
	return merger.IdentityKey("", c.playerName, c.teamAbbr)
}

func injuryDescription(c injuryCandidate) string {
	if c.details != "" {
		return fmt.Sprintf("%s is %s with a %s injury", c.playerName, c.status, c.details)
	}
	return fmt.Sprintf("%s is listed as %s", c.playerName, c.status)
}

// opponentOf finds the team's opponent in today's slate, "" when the
// team has no game
func opponentOf(games []models.Game, teamAbbr string) string {
	for i := range games {
		if games[i].HomeTeamAbbr == teamAbbr {
			return games[i].AwayTeamAbbr
		}
		if games[i].AwayTeamAbbr == teamAbbr {
			return games[i].HomeTeamAbbr
		}
	}
	return ""
}
