package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeCollectStats = "stats:collect"

type CollectStatsTaskPayload struct {
	ChannelID string
}

// NewCollectStatsTask builds a task that fetches and stores one snapshot of
// channelID. A failed collection is not retried; the next scheduled run
// takes its place.
func NewCollectStatsTask(channelID string) (*asynq.Task, error) {
	payload, err := json.Marshal(CollectStatsTaskPayload{ChannelID: channelID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCollectStats, payload, asynq.MaxRetry(0)), nil
}
