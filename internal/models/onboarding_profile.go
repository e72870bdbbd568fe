package models

import "time"

// OnboardingProfile holds a user's onboarding questionnaire. There is at most
// one profile per user.
type OnboardingProfile struct {
	ID                  int64     `db:"id" json:"id"`
	UserID              string    `db:"user_id" json:"user_id"`
	Role                string    `db:"role" json:"role"`
	PrimaryGoal         string    `db:"primary_goal" json:"primary_goal"`
	Niche               string    `db:"niche" json:"niche"`
	PostingCadence      string    `db:"posting_cadence" json:"posting_cadence"`
	AudienceDescription string    `db:"audience_description" json:"audience_description"`
	Completed           bool      `db:"completed" json:"completed"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}
