package db

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"tubemetrics/internal/models"
)

const maxHistoryLimit = 500

const snapshotColumns = "id, created_at, subscriber_count, view_count, video_count, user_id"

// AppendSnapshot inserts a new snapshot and returns it with its assigned id
// and timestamp.
func (s *Store) AppendSnapshot(ctx context.Context, snap models.StatSnapshot) (*models.StatSnapshot, error) {
	query := `
		INSERT INTO stat_snapshots (created_at, subscriber_count, view_count, video_count, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + snapshotColumns

	stored := &models.StatSnapshot{}
	err := s.db.GetContext(ctx, stored, query, s.now(), snap.SubscriberCount, snap.ViewCount, snap.VideoCount, snap.UserID)
	if err != nil {
		log.Printf("Error appending stat snapshot: %v", err)
		return nil, err
	}
	return stored, nil
}

// LatestSnapshot returns the most recent snapshot, or nil when none exist.
func (s *Store) LatestSnapshot(ctx context.Context) (*models.StatSnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM stat_snapshots
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	snap := &models.StatSnapshot{}
	err := s.db.GetContext(ctx, snap, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Printf("Error getting latest stat snapshot: %v", err)
		return nil, err
	}
	return snap, nil
}

// ListSnapshots returns up to limit snapshots, newest first.
func (s *Store) ListSnapshots(ctx context.Context, limit int) ([]models.StatSnapshot, error) {
	if limit <= 0 {
		limit = 1
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	query := `
		SELECT ` + snapshotColumns + `
		FROM stat_snapshots
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	snapshots := []models.StatSnapshot{}
	if err := s.db.SelectContext(ctx, &snapshots, query, limit); err != nil {
		log.Printf("Error listing stat snapshots: %v", err)
		return nil, err
	}
	return snapshots, nil
}
