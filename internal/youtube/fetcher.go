// Package youtube fetches channel statistics from the YouTube Data API v3.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

const fetchTimeout = 15 * time.Second

var (
	ErrChannelNotFound     = errors.New("channel not found")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// ChannelStats is the normalized statistics of one channel.
type ChannelStats struct {
	SubscriberCount int64
	ViewCount       int64
	VideoCount      int64
}

// Fetcher calls channels.list with part=statistics.
type Fetcher struct {
	service *yt.Service
}

// NewFetcher builds a Fetcher authenticated with apiKey. Extra options are
// appended, which lets tests point the client at a local endpoint.
func NewFetcher(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Fetcher, error) {
	if apiKey == "" {
		return nil, errors.New("youtube api key is empty")
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &Fetcher{service: service}, nil
}

// FetchChannelStats returns the current statistics of channelID.
func (f *Fetcher) FetchChannelStats(ctx context.Context, channelID string) (*ChannelStats, error) {
	if channelID == "" {
		return nil, ErrChannelNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	resp, err := f.service.Channels.List([]string{"statistics"}).Id(channelID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	if len(resp.Items) == 0 || resp.Items[0].Statistics == nil {
		return nil, ErrChannelNotFound
	}

	stats := resp.Items[0].Statistics
	return &ChannelStats{
		SubscriberCount: toInt64(stats.SubscriberCount),
		ViewCount:       toInt64(stats.ViewCount),
		VideoCount:      toInt64(stats.VideoCount),
	}, nil
}

func toInt64(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}
