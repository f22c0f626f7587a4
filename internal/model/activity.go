package model

import (
	"time"
)

const (
	ActivityGoalCreated        = "goal_created"
	ActivityProgressUpdated    = "progress_updated"
	ActivityMilestoneCompleted = "milestone_completed"
	ActivityDailyCheckin       = "daily_checkin"
)

// Activity is an immutable event row describing a state change. Rows are
// appended by write paths and never mutated or deleted.
type Activity struct {
	ID          string    `db:"id" json:"id"`
	Type        string    `db:"type" json:"type"`
	UserID      string    `db:"user_id" json:"userId"`
	GoalID      *string   `db:"goal_id" json:"goalId"`
	MilestoneID *string   `db:"milestone_id" json:"milestoneId"`
	Data        JSONMap   `db:"data" json:"data"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// ActivityWithUser is the feed wire shape: an activity enriched with the
// acting user's profile.
type ActivityWithUser struct {
	Activity
	User *User `json:"user"`
}
