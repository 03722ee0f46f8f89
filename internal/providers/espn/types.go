package espn

// Narrow, explicitly-optional views of the ESPN site API payloads.
// Every field may be absent or empty upstream; consumers must treat
// zero values as "not reported" rather than trusting any field.

// Scoreboard is the response of the per-sport scoreboard endpoint
type Scoreboard struct {
	Events []Event `json:"events"`
}

// Event is one game on the scoreboard
type Event struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Name         string        `json:"name"`
	Status       *EventStatus  `json:"status"`
	Competitions []Competition `json:"competitions"`
}

// Competition carries the competitors and odds for an event
type Competition struct {
	Competitors []Competitor `json:"competitors"`
	Odds        []EventOdds  `json:"odds"`
}

// FirstCompetition returns the event's primary competition, nil when absent
func (e *Event) FirstCompetition() *Competition {
	if len(e.Competitions) == 0 {
		return nil
	}
	return &e.Competitions[0]
}

// CompetitorBySide returns the home or away competitor, nil when absent
func (c *Competition) CompetitorBySide(side string) *Competitor {
	for i := range c.Competitors {
		if c.Competitors[i].HomeAway == side {
			return &c.Competitors[i]
		}
	}
	return nil
}

// FirstOdds returns the first posted line for the competition, nil when absent
func (c *Competition) FirstOdds() *EventOdds {
	if len(c.Odds) == 0 {
		return nil
	}
	return &c.Odds[0]
}

// EventStatus wraps the nested status type object
type EventStatus struct {
	Type *StatusType `json:"type"`
}

// StatusType describes where the game is in its lifecycle
type StatusType struct {
	State     string `json:"state"` // "pre", "in", "post"
	Completed bool   `json:"completed"`
	Detail    string `json:"detail,omitempty"`
}

// Competitor is one side of a competition
type Competitor struct {
	ID       string       `json:"id"`
	HomeAway string       `json:"homeAway"`
	Score    string       `json:"score"`
	Team     *Team        `json:"team"`
	Records  []TeamRecord `json:"records"`
}

// TotalRecord returns the competitor's overall record summary ("10-2"),
// empty string when no total record is present
func (c *Competitor) TotalRecord() string {
	for _, r := range c.Records {
		if r.Type == "total" || r.Name == "overall" {
			return r.Summary
		}
	}
	if len(c.Records) > 0 {
		return c.Records[0].Summary
	}
	return ""
}

// Team identifies a team within any endpoint
type Team struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation"`
}

// TeamRecord is a record summary attached to a competitor
type TeamRecord struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Summary string `json:"summary"` // "10-2"
}

// EventOdds is a posted line on the scoreboard
type EventOdds struct {
	Details      string    `json:"details"`
	OverUnder    float64   `json:"overUnder"`
	Spread       float64   `json:"spread"`
	HomeTeamOdds *SideOdds `json:"homeTeamOdds"`
	AwayTeamOdds *SideOdds `json:"awayTeamOdds"`
}

// SideOdds carries one side's moneyline
type SideOdds struct {
	MoneyLine int  `json:"moneyLine"`
	Favorite  bool `json:"favorite"`
}

// GameSummary is the per-game detail endpoint response
type GameSummary struct {
	Boxscore *Boxscore       `json:"boxscore"`
	Injuries []TeamInjuryRef `json:"injuries"`
}

// Boxscore holds per-team player statistic tables
type Boxscore struct {
	Players []TeamPlayers `json:"players"`
}

// TeamPlayers is one team's statistic table in a box score
type TeamPlayers struct {
	Team       *Team       `json:"team"`
	Statistics []StatTable `json:"statistics"`
}

// StatTable is a labeled grid of athlete stat lines. Basketball feeds
// column labels under "names"; football and others group tables under
// "name" ("passing", "rushing") with labels under "labels".
type StatTable struct {
	Name     string        `json:"name"`
	Names    []string      `json:"names"`
	Labels   []string      `json:"labels"`
	Athletes []AthleteLine `json:"athletes"`
}

// Columns returns whichever column label set the feed used
func (t *StatTable) Columns() []string {
	if len(t.Names) > 0 {
		return t.Names
	}
	return t.Labels
}

// AthleteLine is one athlete's row in a stat table
type AthleteLine struct {
	Athlete *Athlete `json:"athlete"`
	Stats   []string `json:"stats"`
}

// Athlete identifies a player
type Athlete struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	Position    *Position `json:"position"`
}

// PositionAbbr returns the athlete's position abbreviation, empty when unknown
func (a *Athlete) PositionAbbr() string {
	if a == nil || a.Position == nil {
		return ""
	}
	return a.Position.Abbreviation
}

// Position is an athlete's position reference
type Position struct {
	Abbreviation string `json:"abbreviation"`
}

// TeamInjuryRef is a team's injury block inside a game summary
type TeamInjuryRef struct {
	Team     *Team         `json:"team"`
	Injuries []InjuryEntry `json:"injuries"`
}

// InjuryFeed is the per-team injuries endpoint response
type InjuryFeed struct {
	Injuries []InjuryEntry `json:"injuries"`
}

// InjuryEntry is one reported injury
type InjuryEntry struct {
	Status  string         `json:"status"` // "Out", "Questionable", ...
	Athlete *Athlete       `json:"athlete"`
	Details *InjuryDetails `json:"details"`
}

// InjuryDetails is the optional free-text description block
type InjuryDetails struct {
	Type   string `json:"type"`   // "Ankle"
	Detail string `json:"detail"` // longer description
}

// RosterFeed is the per-team roster endpoint response
type RosterFeed struct {
	Athletes []RosterGroup `json:"athletes"`
}

// RosterGroup is a positional grouping of roster entries
type RosterGroup struct {
	Position string        `json:"position"`
	Items    []RosterEntry `json:"items"`
}

// RosterEntry is one rostered player, possibly carrying injury notes
type RosterEntry struct {
	ID          string        `json:"id"`
	DisplayName string        `json:"displayName"`
	Position    *Position     `json:"position"`
	Injuries    []InjuryEntry `json:"injuries"`
}

// AthleteStatsFeed is the per-athlete season statistics response
type AthleteStatsFeed struct {
	Categories []StatCategory `json:"categories"`
}

// StatCategory is one named group of season stats
type StatCategory struct {
	Name  string      `json:"name"`
	Stats []NamedStat `json:"stats"`
}

// NamedStat is a single season statistic
type NamedStat struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// StatMap flattens the feed into metric name -> value
func (f *AthleteStatsFeed) StatMap() map[string]float64 {
	out := make(map[string]float64)
	if f == nil {
		return out
	}
	for _, cat := range f.Categories {
		for _, s := range cat.Stats {
			out[s.Name] = s.Value
		}
	}
	return out
}

// NewsFeed is the league news endpoint response
type NewsFeed struct {
	Articles []Article `json:"articles"`
}

// Article is one headline in the news feed
type Article struct {
	DataSourceIdentifier string        `json:"dataSourceIdentifier"`
	Headline             string        `json:"headline"`
	Description          string        `json:"description"`
	Published            string        `json:"published"`
	Links                *ArticleLinks `json:"links"`
}

// ArticleLinks holds the web link for an article
type ArticleLinks struct {
	Web *WebLink `json:"web"`
}

// WebLink is an href wrapper
type WebLink struct {
	Href string `json:"href"`
}

// WebHref returns the article's web URL, empty when absent
func (a *Article) WebHref() string {
	if a.Links == nil || a.Links.Web == nil {
		return ""
	}
	return a.Links.Web.Href
}
