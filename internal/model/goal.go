package model

import (
	"time"
)

const (
	GoalCategoryPersonal = "personal"
	GoalCategoryHealth   = "health"
	GoalCategoryCareer   = "career"
	GoalCategoryLearning = "learning"
	GoalCategoryFinance  = "finance"
)

type Goal struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"userId"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	Category    string     `db:"category" json:"category"`
	TargetDate  *time.Time `db:"target_date" json:"targetDate"`
	Progress    int        `db:"progress" json:"progress"`
	IsCompleted bool       `db:"is_completed" json:"isCompleted"`
	IsTeamGoal  bool       `db:"is_team_goal" json:"isTeamGoal"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

// GoalDetail is the list/detail wire shape: a goal with its milestones and
// collaborators embedded.
type GoalDetail struct {
	Goal
	Milestones    []*Milestone        `json:"milestones"`
	Collaborators []*GoalCollaborator `json:"collaborators"`
}
