package news

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
)

type snapiPage struct {
	Next    *string        `json:"next"`
	Results []snapiArticle `json:"results"`
}

type snapiArticle struct {
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	NewsSite    string `json:"news_site"`
	ImageURL    string `json:"image_url"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
}

// industryArticles pages through the Spaceflight News API. A failed first
// page fails the source; a failed later page keeps what was collected.
func (a *Aggregator) industryArticles(ctx context.Context, earliest time.Time) ([]Article, error) {
	source := a.sources.Industry

	// Query on the hour so repeated requests share cache entries; exact
	// cutoff is applied below.
	params := url.Values{}
	params.Set("published_at_gte", earliest.UTC().Truncate(time.Hour).Format(time.RFC3339))
	params.Set("limit", strconv.Itoa(source.PageSize))

	var page snapiPage
	if err := a.fetcher.GetJSON(ctx, source.URL, params, &page); err != nil {
		return nil, fmt.Errorf("failed to fetch industry news: %w", err)
	}

	results := page.Results
	for pages := 1; page.Next != nil && *page.Next != ""; pages++ {
		if pages >= source.MaxPages {
			slog.Debug("Industry news page cap reached", "pages", pages)
			break
		}

		next := *page.Next
		page = snapiPage{}
		if err := a.fetcher.GetJSON(ctx, next, nil, &page); err != nil {
			slog.Warn("Industry news page failed", "url", next, "error", err)
			break
		}
		results = append(results, page.Results...)
	}

	articles := make([]Article, 0, len(results))
	for _, item := range results {
		if item.Title == "" || item.URL == "" || item.PublishedAt == "" {
			slog.Debug("Skipping incomplete industry article", "url", item.URL)
			continue
		}

		published, err := dateparse.ParseIn(item.PublishedAt, time.UTC)
		if err != nil {
			slog.Debug("Skipping industry article with bad date", "url", item.URL, "error", err)
			continue
		}
		if published.Before(earliest) {
			continue
		}

		articles = append(articles, Article{
			Title:     item.Title,
			Content:   item.Summary,
			Author:    item.NewsSite,
			Image:     item.ImageURL,
			URL:       item.URL,
			Timestamp: epochSeconds(published),
			Category:  source.Category,
		})
	}

	return articles, nil
}

func epochSeconds(t time.Time) float64 {
	return float64(t.UnixMilli()) / 1000
}
