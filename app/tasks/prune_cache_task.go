package tasks

import (
	"context"
	"fmt"
	"log/slog"
)

type PruneCacheTask struct {
	Task
	pruner CachePruner
}

func NewPruneCacheTask(pruner CachePruner) *PruneCacheTask {
	return &PruneCacheTask{
		Task:   NewTask(TaskTypePruneCache, "responses"),
		pruner: pruner,
	}
}

func (t *PruneCacheTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	purged, err := t.pruner.PurgeExpired(ctx)
	if err != nil {
		return fmt.Errorf("failed to purge expired responses: %w", err)
	}

	slog.Debug("Task completed",
		"type", string(t.Type),
		"purged", purged,
		"duration", t.GetDuration())

	return nil
}
