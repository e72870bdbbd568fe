package db

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"
	"tubemetrics/internal/models"

	"github.com/jmoiron/sqlx"
)

const profileColumns = `id, user_id, role, primary_goal, niche, posting_cadence,
		audience_description, completed, created_at, updated_at`

// UpsertOnboardingProfile creates the user's profile or overwrites its
// mutable fields. created reports whether a new row was inserted.
func (s *Store) UpsertOnboardingProfile(ctx context.Context, p models.OnboardingProfile) (profile *models.OnboardingProfile, created bool, err error) {
	err = withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		var existingID int64
		err := tx.GetContext(ctx, &existingID,
			"SELECT id FROM onboarding_profiles WHERE user_id = $1 FOR UPDATE", p.UserID)
		switch {
		case err == nil:
			profile, err = updateProfile(ctx, tx, existingID, p, s.now())
			return err
		case errors.Is(err, sql.ErrNoRows):
			profile, err = insertProfile(ctx, tx, p, s.now())
			created = err == nil
			return err
		default:
			return err
		}
	})
	if err != nil {
		log.Printf("Error upserting onboarding profile for user %s: %v", p.UserID, err)
		return nil, false, err
	}
	return profile, created, nil
}

func updateProfile(ctx context.Context, tx *sqlx.Tx, id int64, p models.OnboardingProfile, now time.Time) (*models.OnboardingProfile, error) {
	query := `
		UPDATE onboarding_profiles
		SET role = $1, primary_goal = $2, niche = $3, posting_cadence = $4,
			audience_description = $5, completed = $6, updated_at = $7
		WHERE id = $8
		RETURNING ` + profileColumns

	profile := &models.OnboardingProfile{}
	err := tx.GetContext(ctx, profile, query,
		p.Role, p.PrimaryGoal, p.Niche, p.PostingCadence, p.AudienceDescription, p.Completed, now, id)
	return profile, err
}

// insertProfile falls back to an update when a concurrent submission created
// the row between the lookup and the insert.
func insertProfile(ctx context.Context, tx *sqlx.Tx, p models.OnboardingProfile, now time.Time) (*models.OnboardingProfile, error) {
	query := `
		INSERT INTO onboarding_profiles (user_id, role, primary_goal, niche, posting_cadence,
			audience_description, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			role = EXCLUDED.role,
			primary_goal = EXCLUDED.primary_goal,
			niche = EXCLUDED.niche,
			posting_cadence = EXCLUDED.posting_cadence,
			audience_description = EXCLUDED.audience_description,
			completed = EXCLUDED.completed,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + profileColumns

	profile := &models.OnboardingProfile{}
	err := tx.GetContext(ctx, profile, query,
		p.UserID, p.Role, p.PrimaryGoal, p.Niche, p.PostingCadence, p.AudienceDescription, p.Completed, now)
	return profile, err
}

// GetOnboardingProfile returns the profile owned by userID, or ErrNotFound.
func (s *Store) GetOnboardingProfile(ctx context.Context, userID string) (*models.OnboardingProfile, error) {
	profile := &models.OnboardingProfile{}
	err := s.db.GetContext(ctx, profile,
		"SELECT "+profileColumns+" FROM onboarding_profiles WHERE user_id = $1", userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("Error getting onboarding profile for user %s: %v", userID, err)
		return nil, err
	}
	return profile, nil
}
