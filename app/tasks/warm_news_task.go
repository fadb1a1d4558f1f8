package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/space-prime/app/news"
)

// WarmNewsTask requests the default news window so user requests are served
// from the response cache.
type WarmNewsTask struct {
	Task
	warmer NewsWarmer
	window time.Duration
}

func NewWarmNewsTask(warmer NewsWarmer, window time.Duration) *WarmNewsTask {
	return &WarmNewsTask{
		Task:   NewTask(TaskTypeWarmNews, "news"),
		warmer: warmer,
		window: window,
	}
}

func (t *WarmNewsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	articles, err := t.warmer.All(ctx, news.Query{
		Earliest: time.Now().UTC().Add(-t.window),
		Limit:    -1,
	})
	if err != nil {
		return fmt.Errorf("failed to warm news: %w", err)
	}

	slog.Info("Task completed",
		"type", string(t.Type),
		"articles", len(articles),
		"duration", t.GetDuration())

	return nil
}
