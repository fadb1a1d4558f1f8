package news

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"time"
)

// scienceArticles reads every science feed in order. An item GUID is taken
// once per run; the first feed carrying it wins.
func (a *Aggregator) scienceArticles(ctx context.Context, earliest time.Time) ([]Article, error) {
	source := a.sources.Science

	var items []Item
	failed := 0
	for _, feed := range source.Feeds {
		body, err := a.fetcher.Get(ctx, feed.URL, nil)
		if err != nil {
			failed++
			slog.Warn("Science feed request failed", "feed", feed.Name, "error", err)
			continue
		}

		parsed, err := a.parser.Run(body)
		if err != nil {
			failed++
			slog.Warn("Science feed parsing failed", "feed", feed.Name, "error", err)
			continue
		}
		items = append(items, parsed...)
	}

	if failed == len(source.Feeds) {
		return nil, fmt.Errorf("failed to fetch any of %d science feeds", failed)
	}

	seen := make(map[string]struct{}, len(items))
	articles := make([]Article, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.GUID]; ok {
			continue
		}
		if reason := rejectedBy(source.Filters, item); reason != "" {
			slog.Debug("Science item filtered", "guid", item.GUID, "reason", reason)
			continue
		}
		if item.PublishedAt.IsZero() || item.PublishedAt.Before(earliest) {
			continue
		}
		seen[item.GUID] = struct{}{}

		category := ""
		if len(item.Categories) > 0 {
			category = item.Categories[0]
		}

		articles = append(articles, Article{
			Title:     item.Title,
			Content:   item.Description,
			Author:    source.Author,
			Image:     item.ThumbnailURL,
			URL:       cmp.Or(item.Link, item.GUID),
			Timestamp: epochSeconds(item.PublishedAt),
			Category:  category,
		})
	}

	return articles, nil
}
