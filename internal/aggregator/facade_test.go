package aggregator_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/XavierBriggs/vantage/internal/aggregator"
	"github.com/XavierBriggs/vantage/internal/providers/espn"
	"github.com/XavierBriggs/vantage/internal/registry"
	"github.com/XavierBriggs/vantage/pkg/contracts"
	"github.com/XavierBriggs/vantage/pkg/models"
)

type stubModule struct {
	key  string
	path string
}

func (m *stubModule) GetSportKey() string      { return m.key }
func (m *stubModule) GetDisplayName() string   { return "Stub" }
func (m *stubModule) GetESPNSportPath() string { return m.path }
func (m *stubModule) IsEnabled() bool          { return true }

func (m *stubModule) GetPollingConfig() contracts.PollingConfig {
	return contracts.PollingConfig{
		LiveInterval:     30 * time.Second,
		UpcomingInterval: 5 * time.Minute,
		FinalInterval:    time.Hour,
		PreGameRampup:    30 * time.Minute,
		Enabled:          true,
	}
}

func (m *stubModule) PropMetrics() []string {
	return []string{"points", "rebounds", "assists"}
}

func (m *stubModule) FallbackRoster() []contracts.FallbackPlayer {
	return []contracts.FallbackPlayer{
		{PlayerID: "fb1", Name: "First Fallback", TeamAbbr: "LAL", Position: "PG"},
		{PlayerID: "fb2", Name: "Second Fallback", TeamAbbr: "BOS", Position: "C"},
		{PlayerID: "fb3", Name: "Third Fallback", TeamAbbr: "GSW", Position: "SF"},
	}
}

func (m *stubModule) NormalizeTeamName(name string) string   { return name }
func (m *stubModule) GetTeamAbbreviation(name string) string { return name }

const scoreboardJSON = `{
  "events": [
    {
      "id": "401", "date": "2026-01-15T03:00Z", "name": "BOS @ LAL",
      "status": {"type": {"state": "pre", "completed": false}},
      "competitions": [{
        "competitors": [
          {
            "id": "1", "homeAway": "home", "score": "0",
            "team": {"id": "13", "displayName": "Los Angeles Lakers", "abbreviation": "LAL"},
            "records": [
              {"name": "overall", "type": "total", "summary": "30-10"},
              {"name": "Home", "type": "home", "summary": "18-4"}
            ]
          },
          {
            "id": "2", "homeAway": "away", "score": "0",
            "team": {"id": "9", "displayName": "Boston Celtics", "abbreviation": "BOS"},
            "records": [
              {"name": "overall", "type": "total", "summary": "28-12"},
              {"name": "Road", "type": "road", "summary": "12-8"}
            ]
          }
        ],
        "odds": [{
          "details": "LAL -4.5", "overUnder": 224.5, "spread": -4.5,
          "homeTeamOdds": {"moneyLine": -180, "favorite": true},
          "awayTeamOdds": {"moneyLine": 155}
        }]
      }]
    },
    {
      "id": "402", "date": "2026-01-15T01:00Z", "name": "PHX @ GSW",
      "status": {"type": {"state": "in", "completed": false}},
      "competitions": [{
        "competitors": [
          {
            "id": "3", "homeAway": "home", "score": "58",
            "team": {"id": "14", "displayName": "Golden State Warriors", "abbreviation": "GSW"},
            "records": [{"name": "overall", "type": "total", "summary": "22-18"}]
          },
          {
            "id": "4", "homeAway": "away", "score": "61",
            "team": {"id": "21", "displayName": "Phoenix Suns", "abbreviation": "PHX"},
            "records": [{"name": "overall", "type": "total", "summary": "19-21"}]
          }
        ],
        "odds": [{
          "details": "GSW -2.5", "overUnder": 231.0, "spread": -2.5,
          "homeTeamOdds": {"moneyLine": -135},
          "awayTeamOdds": {"moneyLine": 115}
        }]
      }]
    }
  ]
}`

const summaryJSON = `{
  "boxscore": {
    "players": [{
      "team": {"id": "13", "abbreviation": "LAL"},
      "statistics": [{
        "names": ["MIN", "PTS", "REB", "AST"],
        "athletes": [
          {
            "athlete": {"id": "a1", "displayName": "Alton Breaker", "position": {"abbreviation": "PG"}},
            "stats": ["36:30", "40", "6", "9"]
          },
          {
            "athlete": {"id": "a2", "displayName": "Calm Average", "position": {"abbreviation": "C"}},
            "stats": ["20:00", "10", "8", "1"]
          }
        ]
      }]
    }]
  },
  "injuries": [{
    "team": {"id": "13", "abbreviation": "LAL"},
    "injuries": [{
      "status": "Questionable",
      "athlete": {"id": "a2", "displayName": "Calm Average", "position": {"abbreviation": "C"}},
      "details": {"type": "Knee"}
    }]
  }]
}`

const teamInjuriesJSON = `{
  "injuries": [{
    "status": "Out",
    "athlete": {"id": "a3", "displayName": "Star Center", "position": {"abbreviation": "C"}},
    "details": {"type": "Ankle", "detail": "Left ankle sprain"}
  }]
}`

const rosterJSON = `{
  "athletes": [{
    "position": "centers",
    "items": [
      {
        "id": "a3", "displayName": "Star Center", "position": {"abbreviation": "C"},
        "injuries": [{"status": "Day-To-Day"}]
      },
      {
        "id": "a4", "displayName": "Bench Wing", "position": {"abbreviation": "SG"},
        "injuries": [{"status": "Questionable", "details": {"type": "Back"}}]
      }
    ]
  }]
}`

const newsJSON = `{
  "articles": [
    {
      "dataSourceIdentifier": "n1", "headline": "Deadline trade chatter",
      "description": "Front offices are circling.",
      "published": "2026-01-15T10:00:00Z",
      "links": {"web": {"href": "https://example.com/n1"}}
    },
    {
      "dataSourceIdentifier": "n2", "headline": "Star Center out tonight",
      "published": "2026-01-15T12:00:00Z"
    }
  ]
}`

func athleteStatsJSON(id string) (string, bool) {
	switch id {
	case "a1":
		return `{"categories":[{"name":"offense","stats":[
			{"name":"minutes","value":34},{"name":"points","value":25},
			{"name":"rebounds","value":5},{"name":"assists","value":8}]}]}`, true
	case "a2":
		return `{"categories":[{"name":"offense","stats":[
			{"name":"minutes","value":20},{"name":"points","value":10},
			{"name":"rebounds","value":8},{"name":"assists","value":1}]}]}`, true
	case "a3":
		return `{"categories":[{"name":"offense","stats":[
			{"name":"minutes","value":36},{"name":"points","value":28},
			{"name":"rebounds","value":8},{"name":"assists","value":7},
			{"name":"usageRate","value":30}]}]}`, true
	default:
		return "", false
	}
}

// newTestServer serves a fixed slate for the basketball/nba path: one
// upcoming game, one live game, injuries from all three feeds, league
// news and per-athlete season stats
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/basketball/nba/scoreboard", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(scoreboardJSON))
	})
	mux.HandleFunc("/basketball/nba/summary", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(summaryJSON))
	})
	mux.HandleFunc("/basketball/nba/news", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(newsJSON))
	})
	mux.HandleFunc("/basketball/nba/teams/", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/basketball/nba/teams/13/injuries":
			w.Write([]byte(teamInjuriesJSON))
		case strings.HasSuffix(r.URL.Path, "/injuries"):
			w.Write([]byte(`{"injuries":[]}`))
		case r.URL.Path == "/basketball/nba/teams/13/roster":
			w.Write([]byte(rosterJSON))
		default:
			w.Write([]byte(`{"athletes":[]}`))
		}
	})
	mux.HandleFunc("/basketball/nba/athletes/", func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		body, ok := athleteStatsJSON(parts[len(parts)-2])
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(body))
	})

	return httptest.NewServer(mux)
}

func newTestFacade(t *testing.T, baseURL string) *aggregator.Facade {
	t.Helper()

	reg := registry.NewEmpty()
	reg.Register(&stubModule{key: "basketball_nba", path: "basketball/nba"})

	return aggregator.New(reg, espn.NewWithBaseURL(baseURL), nil)
}

func TestFetchTrendsCombinesCategories(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	f := newTestFacade(t, srv.URL)
	result, err := f.FetchTrends(context.Background(), "basketball_nba", "", aggregator.RefreshCached)
	if err != nil {
		t.Fatalf("FetchTrends: %v", err)
	}

	if result.Meta.Partial {
		t.Fatal("all feeds healthy, result marked partial")
	}
	if result.Meta.Error != "" {
		t.Fatalf("unexpected meta error: %s", result.Meta.Error)
	}

	counts := result.CountByCategory()
	// Two games carry lines, the slate features four teams, and the
	// three injury feeds merge down to three distinct players. Only
	// one real player streak survives the threshold, so the list is
	// topped up from the fallback roster.
	want := map[models.Category]int{
		models.CategoryBetting: 2,
		models.CategoryTeam:    4,
		models.CategoryInjury:  3,
		models.CategoryPlayer:  4,
	}
	for cat, n := range want {
		if counts[cat] != n {
			t.Errorf("category %s: got %d records, want %d", cat, counts[cat], n)
		}
	}
}

func TestFetchTrendsSortedBySeverity(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	f := newTestFacade(t, srv.URL)
	result, err := f.FetchTrends(context.Background(), "basketball_nba", "", aggregator.RefreshCached)
	if err != nil {
		t.Fatalf("FetchTrends: %v", err)
	}
	if len(result.Items) == 0 {
		t.Fatal("no items")
	}

	for i := 1; i < len(result.Items); i++ {
		prev, cur := result.Items[i-1], result.Items[i]
		if prev.Base().Severity.Rank() < cur.Base().Severity.Rank() {
			t.Fatalf("items out of order at %d: %s before %s",
				i, prev.Base().Severity, cur.Base().Severity)
		}
		if prev.Base().Severity.Rank() == cur.Base().Severity.Rank() &&
			prev.SecondaryKey() < cur.SecondaryKey() {
			t.Fatalf("secondary key out of order at %d", i)
		}
	}
}

func TestFetchTrendsCategoryFilter(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	f := newTestFacade(t, srv.URL)
	result, err := f.FetchTrends(context.Background(), "basketball_nba", models.CategoryBetting, aggregator.RefreshCached)
	if err != nil {
		t.Fatalf("FetchTrends: %v", err)
	}

	if len(result.Items) != 2 {
		t.Fatalf("got %d betting items, want 2", len(result.Items))
	}
	for _, item := range result.Items {
		if item.Base().Category != models.CategoryBetting {
			t.Errorf("category filter leaked a %s record", item.Base().Category)
		}
	}
}

func TestFetchTrendsUnknownScope(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	f := newTestFacade(t, srv.URL)
	if _, err := f.FetchTrends(context.Background(), "cricket_ipl", "", aggregator.RefreshCached); err == nil {
		t.Fatal("unknown scope should be the caller's error")
	}
}

func TestFetchTrendsPartialFailure(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	reg := registry.NewEmpty()
	reg.Register(&stubModule{key: "basketball_nba", path: "basketball/nba"})
	reg.Register(&stubModule{key: "ice_hockey_nhl", path: "hockey/nhl"}) // not served: 404s

	f := aggregator.New(reg, espn.NewWithBaseURL(srv.URL), nil)
	result, err := f.FetchTrends(context.Background(), registry.ScopeAll, "", aggregator.RefreshCached)
	if err != nil {
		t.Fatalf("FetchTrends: %v", err)
	}

	if !result.Meta.Partial {
		t.Error("one sport down should mark the result partial")
	}
	if result.Meta.Error != "" {
		t.Errorf("partial failure should not set the error field, got %q", result.Meta.Error)
	}
	if len(result.Items) == 0 {
		t.Error("healthy sport's records should survive the other sport's outage")
	}
}

func TestFetchTrendsTotalFailure(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	reg := registry.NewEmpty()
	reg.Register(&stubModule{key: "ice_hockey_nhl", path: "hockey/nhl"})

	f := aggregator.New(reg, espn.NewWithBaseURL(srv.URL), nil)
	result, err := f.FetchTrends(context.Background(), registry.ScopeAll, "", aggregator.RefreshCached)
	if err != nil {
		t.Fatalf("FetchTrends: %v", err)
	}

	if result.Meta.Error == "" {
		t.Error("every source down should surface in meta")
	}
	if len(result.Items) != 0 {
		t.Errorf("total failure returned %d items", len(result.Items))
	}
}

func TestFetchPredictions(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	f := newTestFacade(t, srv.URL)
	result, err := f.FetchPredictions(context.Background(), "basketball_nba", 0)
	if err != nil {
		t.Fatalf("FetchPredictions: %v", err)
	}

	if len(result.Items) != 2 {
		t.Fatalf("got %d predictions, want 2 undecided games", len(result.Items))
	}

	for _, p := range result.Items {
		if p.Consensus.FavoredTeam != models.FavoredHome && p.Consensus.FavoredTeam != models.FavoredAway {
			t.Errorf("game %s: consensus favors nobody", p.GameID)
		}
		if len(p.Predictions) < 2 {
			t.Errorf("game %s: want at least model and market entries, got %d", p.GameID, len(p.Predictions))
		}
	}

	for i := 1; i < len(result.Items); i++ {
		if result.Items[i-1].Consensus.Confidence < result.Items[i].Consensus.Confidence {
			t.Fatal("predictions not sorted by confidence")
		}
	}
}

func TestFetchPredictionsConfidenceFloor(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	f := newTestFacade(t, srv.URL)
	result, err := f.FetchPredictions(context.Background(), "basketball_nba", 101)
	if err != nil {
		t.Fatalf("FetchPredictions: %v", err)
	}
	if len(result.Items) != 0 {
		t.Fatalf("impossible confidence floor kept %d predictions", len(result.Items))
	}
}

func TestFetchInjuriesMergesFeeds(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	f := newTestFacade(t, srv.URL)
	result, err := f.FetchInjuries(context.Background(), "basketball_nba", false)
	if err != nil {
		t.Fatalf("FetchInjuries: %v", err)
	}

	if len(result.Items) != 3 {
		t.Fatalf("got %d injuries, want 3 distinct players", len(result.Items))
	}

	byID := make(map[string]models.InjuryTrend)
	for _, inj := range result.Items {
		byID[inj.PlayerID] = inj
	}

	star, ok := byID["a3"]
	if !ok {
		t.Fatal("team report injury missing")
	}
	if star.Source != "team-report" {
		t.Errorf("duplicate should resolve to the trusted feed, got %q", star.Source)
	}
	if star.InjuryStatus != models.InjuryOut {
		t.Errorf("trusted feed's status should win, got %s", star.InjuryStatus)
	}
	if star.GameImpact == nil {
		t.Fatal("a ruled-out player should carry a game impact")
	}
	if star.GameImpact.Opponent != "BOS" {
		t.Errorf("opponent: got %q, want BOS", star.GameImpact.Opponent)
	}

	if _, ok := byID["a2"]; !ok {
		t.Error("game summary injury missing")
	}
	if bench, ok := byID["a4"]; !ok {
		t.Error("roster injury missing")
	} else if bench.Source != "roster" {
		t.Errorf("roster-only player tagged %q", bench.Source)
	}
}

func TestFetchInjuriesHighImpactOnly(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	f := newTestFacade(t, srv.URL)
	result, err := f.FetchInjuries(context.Background(), "basketball_nba", true)
	if err != nil {
		t.Fatalf("FetchInjuries: %v", err)
	}

	if len(result.Items) == 0 {
		t.Fatal("the ruled-out star should clear the high-impact bar")
	}
	for _, inj := range result.Items {
		if inj.Severity.Rank() < models.SeverityHigh.Rank() {
			t.Errorf("%s (%s) leaked through the high-impact filter", inj.PlayerName, inj.Severity)
		}
	}
}

func TestFetchNews(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	f := newTestFacade(t, srv.URL)
	result, err := f.FetchNews(context.Background(), "basketball_nba", 0)
	if err != nil {
		t.Fatalf("FetchNews: %v", err)
	}

	if len(result.Items) != 2 {
		t.Fatalf("got %d headlines, want 2", len(result.Items))
	}
	if result.Items[0].ID != "news-n2" {
		t.Errorf("newest headline should lead, got %s", result.Items[0].ID)
	}
	if result.Items[1].Link != "https://example.com/n1" {
		t.Errorf("article link lost: %q", result.Items[1].Link)
	}
}

func TestFetchNewsLimit(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	f := newTestFacade(t, srv.URL)
	result, err := f.FetchNews(context.Background(), "basketball_nba", 1)
	if err != nil {
		t.Fatalf("FetchNews: %v", err)
	}
	if len(result.Items) != 1 {
		t.Fatalf("limit 1 returned %d items", len(result.Items))
	}
}

func TestPlayerStreakDetection(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	f := newTestFacade(t, srv.URL)
	result, err := f.FetchTrends(context.Background(), "basketball_nba", models.CategoryPlayer, aggregator.RefreshCached)
	if err != nil {
		t.Fatalf("FetchTrends: %v", err)
	}

	var breaker *models.PlayerTrend
	for _, item := range result.Items {
		pt, ok := item.(*models.PlayerTrend)
		if !ok {
			t.Fatalf("player category returned a %T", item)
		}
		if pt.PlayerID == "a1" {
			breaker = pt
		}
		if pt.PlayerID == "a2" {
			t.Error("a player tracking their season average is not a streak")
		}
	}

	if breaker == nil {
		t.Fatal("the 40-point outlier never surfaced")
	}
	if breaker.Streak != models.StreakOutlier {
		t.Errorf("a +60%% night is an outlier, got %s", breaker.Streak)
	}
	if len(breaker.Props) == 0 {
		t.Error("streaking player should carry prop suggestions")
	}
	for _, prop := range breaker.Props {
		if prop.Confidence < 0 || prop.Confidence > 100 {
			t.Errorf("prop confidence out of range: %f", prop.Confidence)
		}
	}
}

func TestTrendsResultViews(t *testing.T) {
	mk := func(cat models.Category, sev models.Severity) models.TrendRecord {
		return &models.Trend{Category: cat, Severity: sev}
	}

	result := &aggregator.TrendsResult{Items: []models.TrendRecord{
		mk(models.CategoryBetting, models.SeverityCritical),
		mk(models.CategoryBetting, models.SeverityLow),
		mk(models.CategoryInjury, models.SeverityHigh),
		mk(models.CategoryTeam, models.SeverityMedium),
	}}

	if got := len(result.ByCategory(models.CategoryBetting)); got != 2 {
		t.Errorf("ByCategory(betting) = %d, want 2", got)
	}
	if got := result.CountByCategory()[models.CategoryInjury]; got != 1 {
		t.Errorf("CountByCategory()[injury] = %d, want 1", got)
	}
	if got := len(result.HighSeverity()); got != 2 {
		t.Errorf("HighSeverity() = %d, want 2", got)
	}
}
