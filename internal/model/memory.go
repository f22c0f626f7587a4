package model

import (
	"time"
)

// PhotoMemory is a captioned progress photo. StoragePath locates the object
// in the file store; PhotoURL is the serveable URL.
type PhotoMemory struct {
	ID              string     `db:"id" json:"id"`
	UserID          string     `db:"user_id" json:"userId"`
	GoalID          *string    `db:"goal_id" json:"goalId"`
	ProgressEntryID *string    `db:"progress_entry_id" json:"progressEntryId"`
	PhotoURL        string     `db:"photo_url" json:"photoUrl"`
	StoragePath     string     `db:"storage_path" json:"-"`
	Caption         string     `db:"caption" json:"caption"`
	Tags            StringList `db:"tags" json:"tags"`
	CreatedAt       time.Time  `db:"created_at" json:"createdAt"`
}
