package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"tubemetrics/internal/models"
	"tubemetrics/internal/youtube"
	"tubemetrics/pkg/tasks"

	"github.com/hibiken/asynq"
)

type StatsFetcher interface {
	FetchChannelStats(ctx context.Context, channelID string) (*youtube.ChannelStats, error)
}

type SnapshotStore interface {
	AppendSnapshot(ctx context.Context, snap models.StatSnapshot) (*models.StatSnapshot, error)
}

type TaskHandler struct {
	fetcher StatsFetcher
	store   SnapshotStore
}

func NewTaskHandler(fetcher StatsFetcher, store SnapshotStore) *TaskHandler {
	return &TaskHandler{fetcher: fetcher, store: store}
}

// HandleCollectStatsTask runs one fetch-then-store cycle.
func (h *TaskHandler) HandleCollectStatsTask(ctx context.Context, t *asynq.Task) error {
	var p tasks.CollectStatsTaskPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %v: %w", err, asynq.SkipRetry)
	}
	log.Printf("Collecting stats for channel: %s", p.ChannelID)

	stats, err := h.fetcher.FetchChannelStats(ctx, p.ChannelID)
	if errors.Is(err, youtube.ErrChannelNotFound) {
		return fmt.Errorf("channel %s: %w", p.ChannelID, asynq.SkipRetry)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch stats: %w", err)
	}

	snap, err := h.store.AppendSnapshot(ctx, models.StatSnapshot{
		SubscriberCount: stats.SubscriberCount,
		ViewCount:       stats.ViewCount,
		VideoCount:      stats.VideoCount,
	})
	if err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	log.Printf("Stored snapshot %d for channel %s (subscribers=%d views=%d videos=%d)",
		snap.ID, p.ChannelID, snap.SubscriberCount, snap.ViewCount, snap.VideoCount)
	return nil
}
