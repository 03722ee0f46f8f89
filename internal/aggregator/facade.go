// Package aggregator orchestrates the per-sport analytics pipelines and
// assembles the combined, sorted result sets served to the presentation
// layer. One facade instance owns the resource caches; there is no
// module-level state.
package aggregator

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/XavierBriggs/vantage/internal/cache"
	"github.com/XavierBriggs/vantage/internal/predictor"
	"github.com/XavierBriggs/vantage/internal/providers/espn"
	"github.com/XavierBriggs/vantage/internal/registry"
	"github.com/XavierBriggs/vantage/pkg/contracts"
	"github.com/XavierBriggs/vantage/pkg/models"
)

// RefreshMode selects between serving cached generations and forcing
// a fresh upstream fetch
type RefreshMode string

const (
	RefreshCached RefreshMode = "cached"
	RefreshForce  RefreshMode = "force"
)

// Pipeline tuning. Caps bound the number of upstream calls one
// aggregation cycle may issue.
const (
	scoreboardTTL    = 30 * time.Second
	maxBoxScores     = 3
	maxInjuryTeams   = 8
	maxAthleteEnrich = 6
	syntheticCount   = 5
)

// Meta is the result metadata attached to every operation response
type Meta struct {
	LastUpdated time.Time `json:"last_updated"`
	Partial     bool      `json:"partial"`
	Error       string    `json:"error,omitempty"`
}

// TrendsResult is the combined, sorted multi-category trend list
type TrendsResult struct {
	Items []models.TrendRecord `json:"items"`
	Meta  Meta                 `json:"meta"`
}

// ByCategory filters the held list without re-fetching
func (r *TrendsResult) ByCategory(cat models.Category) []models.TrendRecord {
	var out []models.TrendRecord
	for _, item := range r.Items {
		if item.Base().Category == cat {
			out = append(out, item)
		}
	}
	return out
}

// CountByCategory tallies the held list without re-fetching
func (r *TrendsResult) CountByCategory() map[models.Category]int {
	counts := make(map[models.Category]int)
	for _, item := range r.Items {
		counts[item.Base().Category]++
	}
	return counts
}

// HighSeverity returns the critical and high subset of the held list
func (r *TrendsResult) HighSeverity() []models.TrendRecord {
	var out []models.TrendRecord
	for _, item := range r.Items {
		if item.Base().Severity.Rank() >= models.SeverityHigh.Rank() {
			out = append(out, item)
		}
	}
	return out
}

// PredictionsResult carries game predictions plus metadata
type PredictionsResult struct {
	Items []models.GamePrediction `json:"items"`
	Meta  Meta                    `json:"meta"`
}

// InjuriesResult carries merged injury trends plus metadata
type InjuriesResult struct {
	Items []models.InjuryTrend `json:"items"`
	Meta  Meta                 `json:"meta"`
}

// NewsResult carries league headlines plus metadata
type NewsResult struct {
	Items []models.NewsItem `json:"items"`
	Meta  Meta              `json:"meta"`
}

// Facade fans out to the sub-pipelines per sport and category, tolerates
// individual failures, and serves sorted generations with per-resource
// freshness windows
type Facade struct {
	registry  *registry.Registry
	provider  *espn.Client
	predictor *predictor.Predictor
	snapshots *cache.SnapshotWriter // nil-safe, optional Redis mirror

	games    *cache.TTL[[]models.Game]
	betting  *cache.TTL[[]*models.BettingTrend]
	players  *cache.TTL[[]*models.PlayerTrend]
	teams    *cache.TTL[[]*models.TeamTrend]
	injuries *cache.TTL[[]models.InjuryTrend]
	news     *cache.TTL[[]models.NewsItem]

	now func() time.Time
}

// New creates a facade with fresh cache instances. snapshots may be nil.
func New(reg *registry.Registry, provider *espn.Client, snapshots *cache.SnapshotWriter) *Facade {
	return &Facade{
		registry:  reg,
		provider:  provider,
		predictor: predictor.New(),
		snapshots: snapshots,
		games:     cache.NewTTL[[]models.Game](),
		betting:   cache.NewTTL[[]*models.BettingTrend](),
		players:   cache.NewTTL[[]*models.PlayerTrend](),
		teams:     cache.NewTTL[[]*models.TeamTrend](),
		injuries:  cache.NewTTL[[]models.InjuryTrend](),
		news:      cache.NewTTL[[]models.NewsItem](),
		now:       time.Now,
	}
}

// allCategories is the category fan-out when no filter is given
var allCategories = []models.Category{
	models.CategoryBetting,
	models.CategoryPlayer,
	models.CategoryTeam,
	models.CategoryInjury,
}

// FetchTrends assembles the combined trend list for a sport scope and
// optional category filter. An unknown scope is the only caller error;
// upstream failures degrade to a partial (or empty) result instead.
func (f *Facade) FetchTrends(ctx context.Context, scope string, category models.Category, refresh RefreshMode) (*TrendsResult, error) {
	modules, err := f.registry.ResolveScope(scope)
	if err != nil {
		return nil, err
	}

	categories := allCategories
	if category != "" {
		categories = []models.Category{category}
	}

	var tasks []pipelineTask
	for _, module := range modules {
		module := module
		for _, cat := range categories {
			cat := cat
			tasks = append(tasks, pipelineTask{
				name: module.GetSportKey() + "/" + string(cat),
				run: func(ctx context.Context) ([]models.TrendRecord, error) {
					return f.categoryPipeline(ctx, module, cat, refresh)
				},
			})
		}
	}

	items, errs := f.gather(ctx, tasks)
	sortTrends(items)

	result := &TrendsResult{
		Items: items,
		Meta:  f.buildMeta(len(tasks), errs),
	}

	f.writeSnapshot(ctx, "trends", scope, result, cache.SnapshotTrendsTTL)
	return result, nil
}

// FetchPredictions computes consensus predictions for today's games,
// keeping only those at or above minConfidence
func (f *Facade) FetchPredictions(ctx context.Context, scope string, minConfidence float64) (*PredictionsResult, error) {
	modules, err := f.registry.ResolveScope(scope)
	if err != nil {
		return nil, err
	}

	var (
		mu    sync.Mutex
		items []models.GamePrediction
		errs  []error
		wg    sync.WaitGroup
	)

	for _, module := range modules {
		wg.Add(1)
		go func(module contracts.SportModule) {
			defer wg.Done()

			preds, err := f.predictionsForSport(ctx, module)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("[%s] predictions pipeline failed: %v", module.GetSportKey(), err)
				errs = append(errs, err)
				return
			}
			items = append(items, preds...)
		}(module)
	}
	wg.Wait()

	filtered := items[:0]
	for _, p := range items {
		if p.Consensus.Confidence >= minConfidence {
			filtered = append(filtered, p)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Consensus.Confidence > filtered[j].Consensus.Confidence
	})

	result := &PredictionsResult{
		Items: filtered,
		Meta:  f.buildMeta(len(modules), errs),
	}

	f.writeSnapshot(ctx, "predictions", scope, result, cache.SnapshotPredictionsTTL)
	return result, nil
}

// FetchInjuries returns the merged injury list, optionally restricted to
// high-impact (critical or high severity) records
func (f *Facade) FetchInjuries(ctx context.Context, scope string, highImpactOnly bool) (*InjuriesResult, error) {
	modules, err := f.registry.ResolveScope(scope)
	if err != nil {
		return nil, err
	}

	var (
		mu    sync.Mutex
		items []models.InjuryTrend
		errs  []error
		wg    sync.WaitGroup
	)

	for _, module := range modules {
		wg.Add(1)
		go func(module contracts.SportModule) {
			defer wg.Done()

			injuries, err := f.injuriesForSport(ctx, module, RefreshCached)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("[%s] injuries pipeline failed: %v", module.GetSportKey(), err)
				errs = append(errs, err)
				return
			}
			items = append(items, injuries...)
		}(module)
	}
	wg.Wait()

	if highImpactOnly {
		kept := items[:0]
		for _, inj := range items {
			if inj.Severity.Rank() >= models.SeverityHigh.Rank() {
				kept = append(kept, inj)
			}
		}
		items = kept
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Severity.Rank() != items[j].Severity.Rank() {
			return items[i].Severity.Rank() > items[j].Severity.Rank()
		}
		return items[i].Impact.ImpactScore > items[j].Impact.ImpactScore
	})

	result := &InjuriesResult{
		Items: items,
		Meta:  f.buildMeta(len(modules), errs),
	}

	f.writeSnapshot(ctx, "injuries", scope, result, cache.SnapshotInjuriesTTL)
	return result, nil
}

// FetchNews returns the latest headlines across the scope, newest first,
// capped at limit
func (f *Facade) FetchNews(ctx context.Context, scope string, limit int) (*NewsResult, error) {
	modules, err := f.registry.ResolveScope(scope)
	if err != nil {
		return nil, err
	}

	var (
		mu    sync.Mutex
		items []models.NewsItem
		errs  []error
		wg    sync.WaitGroup
	)

	for _, module := range modules {
		wg.Add(1)
		go func(module contracts.SportModule) {
			defer wg.Done()

			news, err := f.newsForSport(ctx, module)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("[%s] news pipeline failed: %v", module.GetSportKey(), err)
				errs = append(errs, err)
				return
			}
			items = append(items, news...)
		}(module)
	}
	wg.Wait()

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Published.After(items[j].Published)
	})

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	result := &NewsResult{
		Items: items,
		Meta:  f.buildMeta(len(modules), errs),
	}

	f.writeSnapshot(ctx, "news", scope, result, cache.SnapshotNewsTTL)
	return result, nil
}

// categoryPipeline dispatches one sport+category cell of the fan-out
func (f *Facade) categoryPipeline(ctx context.Context, module contracts.SportModule, cat models.Category, refresh RefreshMode) ([]models.TrendRecord, error) {
	switch cat {
	case models.CategoryBetting:
		trends, err := f.bettingForSport(ctx, module, refresh)
		return asRecords(trends), err
	case models.CategoryPlayer:
		trends, err := f.playersForSport(ctx, module, refresh)
		return asRecords(trends), err
	case models.CategoryTeam:
		trends, err := f.teamsForSport(ctx, module, refresh)
		return asRecords(trends), err
	case models.CategoryInjury:
		injuries, err := f.injuriesForSport(ctx, module, refresh)
		if err != nil {
			return nil, err
		}
		out := make([]models.TrendRecord, 0, len(injuries))
		for i := range injuries {
			out = append(out, &injuries[i])
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown category: %s", cat)
	}
}

func asRecords[T models.TrendRecord](items []T) []models.TrendRecord {
	out := make([]models.TrendRecord, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}

// pipelineTask is one unit of the trends fan-out
type pipelineTask struct {
	name string
	run  func(ctx context.Context) ([]models.TrendRecord, error)
}

// gather runs all tasks concurrently and joins them tolerantly: a
// failing task contributes nothing and is logged, the rest proceed.
// Output order follows task order so cycles are deterministic.
func (f *Facade) gather(ctx context.Context, tasks []pipelineTask) ([]models.TrendRecord, []error) {
	slots := make([][]models.TrendRecord, len(tasks))
	errSlots := make([]error, len(tasks))

	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func(i int, task pipelineTask) {
			defer wg.Done()

			items, err := task.run(ctx)
			if err != nil {
				log.Printf("[%s] pipeline failed: %v", task.name, err)
				errSlots[i] = err
				return
			}
			slots[i] = items
		}(i, task)
	}
	wg.Wait()

	var items []models.TrendRecord
	var errs []error
	for i := range tasks {
		if errSlots[i] != nil {
			errs = append(errs, errSlots[i])
			continue
		}
		items = append(items, slots[i]...)
	}

	return items, errs
}

// buildMeta derives result metadata from the fan-out outcome. The error
// field is only populated on total failure; partial failures just mark
// the result partial.
func (f *Facade) buildMeta(taskCount int, errs []error) Meta {
	meta := Meta{LastUpdated: f.now()}

	switch {
	case taskCount == 0 || len(errs) == 0:
	case len(errs) == taskCount:
		meta.Error = "all upstream sources failed"
	default:
		meta.Partial = true
	}

	return meta
}

// sortTrends applies the documented ordering: severity descending, then
// the category-specific secondary key descending. The sort is stable so
// equal records keep their pipeline order.
func sortTrends(items []models.TrendRecord) {
	sort.SliceStable(items, func(i, j int) bool {
		si, sj := items[i].Base().Severity.Rank(), items[j].Base().Severity.Rank()
		if si != sj {
			return si > sj
		}
		return items[i].SecondaryKey() > items[j].SecondaryKey()
	})
}

func (f *Facade) writeSnapshot(ctx context.Context, resource, scope string, payload interface{}, ttl time.Duration) {
	if scope == "" {
		scope = registry.ScopeAll
	}
	if err := f.snapshots.WriteSnapshot(ctx, resource, scope, payload, ttl); err != nil {
		log.Printf("[%s] snapshot write failed: %v", resource, err)
	}
}

// GamesForSport exposes today's slate for one sport, serving the shared
// scoreboard cache. Callers use it for refresh-cadence decisions.
func (f *Facade) GamesForSport(ctx context.Context, sportKey string) ([]models.Game, error) {
	module, err := f.registry.GetModule(sportKey)
	if err != nil {
		return nil, err
	}
	return f.fetchGames(ctx, module, RefreshCached)
}

// fetchGames returns today's games for a sport, deduplicating scoreboard
// hits across the category pipelines within one cycle
func (f *Facade) fetchGames(ctx context.Context, module contracts.SportModule, refresh RefreshMode) ([]models.Game, error) {
	key := "games:" + module.GetSportKey()

	if refresh != RefreshForce {
		if games, ok := f.games.Get(key); ok {
			return games, nil
		}
	}

	scoreboard, err := f.provider.FetchScoreboard(ctx, module.GetESPNSportPath())
	if err != nil {
		return nil, fmt.Errorf("fetching scoreboard: %w", err)
	}

	now := f.now()
	games := make([]models.Game, 0, len(scoreboard.Events))
	for i := range scoreboard.Events {
		game := parseGame(module, &scoreboard.Events[i], now)
		if game == nil {
			continue
		}
		games = append(games, *game)
	}

	f.games.Set(key, games, scoreboardTTL)
	return games, nil
}
