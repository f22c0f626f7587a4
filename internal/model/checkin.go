package model

import (
	"time"
)

const (
	MoodGreat      = "great"
	MoodGood       = "good"
	MoodOkay       = "okay"
	MoodStruggling = "struggling"
)

func ValidMood(mood string) bool {
	switch mood {
	case MoodGreat, MoodGood, MoodOkay, MoodStruggling:
		return true
	}
	return false
}

// DailyCheckin is a once-per-day mood entry for a user.
type DailyCheckin struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Mood      string    `db:"mood" json:"mood"`
	Notes     string    `db:"notes" json:"notes"`
	Date      time.Time `db:"date" json:"date"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
