package tasks

import (
	"context"

	"github.com/lysyi3m/space-prime/app/news"
)

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to run cache maintenance in the background.
//
//	scheduler := NewScheduler(store, aggregator, opts)
//	scheduler.Start()
//	defer scheduler.Stop()
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// CachePruner is implemented by database.ResponseRepositoryImpl and cache.RedisCache
type CachePruner interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// NewsWarmer is implemented by *news.Aggregator
type NewsWarmer interface {
	All(ctx context.Context, q news.Query) ([]news.Article, error)
}
