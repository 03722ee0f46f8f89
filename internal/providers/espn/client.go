package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	BaseURL = "https://site.api.espn.com/apis/site/v2/sports"

	// Every upstream call is best-effort; a slow source is treated as
	// a failed source rather than stalling the whole aggregation cycle.
	requestTimeout = 10 * time.Second
)

// Client handles ESPN API requests
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// New creates a new ESPN API client
func New() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL:   BaseURL,
		userAgent: "Mozilla/5.0 (compatible; VantageBot/1.0)",
	}
}

// NewWithBaseURL creates a client pointed at an alternate base URL (tests)
func NewWithBaseURL(baseURL string) *Client {
	c := New()
	c.baseURL = baseURL
	return c
}

// FetchScoreboard fetches today's games for a sport
func (c *Client) FetchScoreboard(ctx context.Context, sportPath string) (*Scoreboard, error) {
	url := fmt.Sprintf("%s/%s/scoreboard", c.baseURL, sportPath)

	var sb Scoreboard
	if err := c.fetch(ctx, url, &sb); err != nil {
		return nil, err
	}
	return &sb, nil
}

// FetchGameSummary fetches detailed game summary with box scores
func (c *Client) FetchGameSummary(ctx context.Context, sportPath string, gameID string) (*GameSummary, error) {
	url := fmt.Sprintf("%s/%s/summary?event=%s", c.baseURL, sportPath, gameID)

	var summary GameSummary
	if err := c.fetch(ctx, url, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// FetchTeamInjuries fetches the injury report for a team
func (c *Client) FetchTeamInjuries(ctx context.Context, sportPath string, teamID string) (*InjuryFeed, error) {
	url := fmt.Sprintf("%s/%s/teams/%s/injuries", c.baseURL, sportPath, teamID)

	var feed InjuryFeed
	if err := c.fetch(ctx, url, &feed); err != nil {
		return nil, err
	}
	return &feed, nil
}

// FetchTeamRoster fetches a team's roster, including per-player injury notes
func (c *Client) FetchTeamRoster(ctx context.Context, sportPath string, teamID string) (*RosterFeed, error) {
	url := fmt.Sprintf("%s/%s/teams/%s/roster", c.baseURL, sportPath, teamID)

	var feed RosterFeed
	if err := c.fetch(ctx, url, &feed); err != nil {
		return nil, err
	}
	return &feed, nil
}

// FetchAthleteStats fetches an athlete's season statistics
func (c *Client) FetchAthleteStats(ctx context.Context, sportPath string, athleteID string) (*AthleteStatsFeed, error) {
	url := fmt.Sprintf("%s/%s/athletes/%s/statistics", c.baseURL, sportPath, athleteID)

	var feed AthleteStatsFeed
	if err := c.fetch(ctx, url, &feed); err != nil {
		return nil, err
	}
	return &feed, nil
}

// FetchNews fetches the latest league headlines
func (c *Client) FetchNews(ctx context.Context, sportPath string, limit int) (*NewsFeed, error) {
	url := fmt.Sprintf("%s/%s/news", c.baseURL, sportPath)
	if limit > 0 {
		url = fmt.Sprintf("%s?limit=%d", url, limit)
	}

	var feed NewsFeed
	if err := c.fetch(ctx, url, &feed); err != nil {
		return nil, err
	}
	return &feed, nil
}

// fetch makes an HTTP GET request and decodes the JSON response into target
func (c *Client) fetch(ctx context.Context, url string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("ESPN API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
