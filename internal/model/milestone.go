package model

import (
	"time"
)

type Milestone struct {
	ID          string     `db:"id" json:"id"`
	GoalID      string     `db:"goal_id" json:"goalId"`
	Title       string     `db:"title" json:"title"`
	IsCompleted bool       `db:"is_completed" json:"isCompleted"`
	OrderIndex  int        `db:"order_index" json:"order"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	CompletedAt *time.Time `db:"completed_at" json:"completedAt"`
}
