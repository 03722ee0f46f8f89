package aggregator

import (
	"context"
	"fmt"
	"time"

	"github.com/XavierBriggs/vantage/internal/cache"
	"github.com/XavierBriggs/vantage/pkg/contracts"
	"github.com/XavierBriggs/vantage/pkg/models"
)

// newsFetchLimit is how many headlines one upstream call asks for;
// callers trim further after the cross-sport merge
const newsFetchLimit = 10

// newsForSport maps the provider's league headline feed onto news items
func (f *Facade) newsForSport(ctx context.Context, module contracts.SportModule) ([]models.NewsItem, error) {
	sportKey := module.GetSportKey()
	key := "news:" + sportKey

	if items, ok := f.news.Get(key); ok {
		return items, nil
	}

	feed, err := f.provider.FetchNews(ctx, module.GetESPNSportPath(), newsFetchLimit)
	if err != nil {
		return nil, fmt.Errorf("fetching news: %w", err)
	}

	now := f.now()
	items := make([]models.NewsItem, 0, len(feed.Articles))
	for i, article := range feed.Articles {
		if article.Headline == "" {
			continue
		}

		id := article.DataSourceIdentifier
		if id == "" {
			id = fmt.Sprintf("%s-%d", sportKey, i)
		}

		published := now
		if t, err := time.Parse(time.RFC3339, article.Published); err == nil {
			published = t
		}

		items = append(items, models.NewsItem{
			ID:          "news-" + id,
			SportKey:    sportKey,
			Headline:    article.Headline,
			Description: article.Description,
			Link:        article.WebHref(),
			Published:   published,
		})
	}

	f.news.Set(key, items, cache.NewsTTL)
	return items, nil
}
