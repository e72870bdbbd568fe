package models

import "time"

// StatSnapshot is one point-in-time record of channel statistics.
// Rows are append-only.
type StatSnapshot struct {
	ID              int64     `db:"id" json:"id"`
	CreatedAt       time.Time `db:"created_at" json:"timestamp"`
	SubscriberCount int64     `db:"subscriber_count" json:"subscriber_count"`
	ViewCount       int64     `db:"view_count" json:"view_count"`
	VideoCount      int64     `db:"video_count" json:"video_count"`
	UserID          *string   `db:"user_id" json:"user_id,omitempty"`
}
