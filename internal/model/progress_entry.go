package model

import (
	"time"
)

// ProgressEntry is an append-only record of a goal progress change.
type ProgressEntry struct {
	ID               string    `db:"id" json:"id"`
	GoalID           string    `db:"goal_id" json:"goalId"`
	UserID           string    `db:"user_id" json:"userId"`
	PreviousProgress int       `db:"previous_progress" json:"previousProgress"`
	NewProgress      int       `db:"new_progress" json:"newProgress"`
	Notes            string    `db:"notes" json:"notes"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}
