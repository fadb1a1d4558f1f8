package news

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
)

// Aggregator merges industry and science news into one newest-first list.
type Aggregator struct {
	fetcher Fetcher
	sources *Sources
	parser  *Parser
}

func NewAggregator(fetcher Fetcher, sources *Sources) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		sources: sources,
		parser:  NewParser(),
	}
}

func (a *Aggregator) Industry(ctx context.Context, q Query) ([]Article, error) {
	articles, err := a.industryArticles(ctx, q.Earliest)
	if err != nil {
		slog.Warn("Industry news unavailable", "error", err)
		return []Article{}, fmt.Errorf("%w: %v", ErrSourcesUnavailable, err)
	}
	return newestFirst(articles, q.Limit), nil
}

func (a *Aggregator) Science(ctx context.Context, q Query) ([]Article, error) {
	articles, err := a.scienceArticles(ctx, q.Earliest)
	if err != nil {
		slog.Warn("Science news unavailable", "error", err)
		return []Article{}, fmt.Errorf("%w: %v", ErrSourcesUnavailable, err)
	}
	return newestFirst(articles, q.Limit), nil
}

// All fails only when both sources fail.
func (a *Aggregator) All(ctx context.Context, q Query) ([]Article, error) {
	industry, industryErr := a.industryArticles(ctx, q.Earliest)
	if industryErr != nil {
		slog.Warn("Industry news unavailable", "error", industryErr)
	}

	science, scienceErr := a.scienceArticles(ctx, q.Earliest)
	if scienceErr != nil {
		slog.Warn("Science news unavailable", "error", scienceErr)
	}

	if industryErr != nil && scienceErr != nil {
		return []Article{}, fmt.Errorf("%w: %v; %v", ErrSourcesUnavailable, industryErr, scienceErr)
	}

	return newestFirst(append(industry, science...), q.Limit), nil
}

func newestFirst(articles []Article, limit int) []Article {
	if articles == nil {
		return []Article{}
	}
	slices.SortStableFunc(articles, func(a, b Article) int {
		return cmp.Compare(b.Timestamp, a.Timestamp)
	})
	if limit >= 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	return articles
}
