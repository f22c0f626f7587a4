package model

import (
	"time"
)

// FitnessEntry is a once-per-day record of activity metrics for a user.
type FitnessEntry struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"userId"`
	Steps         int       `db:"steps" json:"steps"`
	Distance      float64   `db:"distance" json:"distance"`
	Calories      int       `db:"calories" json:"calories"`
	ActiveMinutes int       `db:"active_minutes" json:"activeMinutes"`
	HeartRate     *int      `db:"heart_rate" json:"heartRate"`
	Weight        *float64  `db:"weight" json:"weight"`
	Notes         string    `db:"notes" json:"notes"`
	Date          time.Time `db:"date" json:"date"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}
