package model

import (
	"time"
)

const (
	CollaboratorRoleOwner        = "owner"
	CollaboratorRoleCollaborator = "collaborator"
)

type GoalCollaborator struct {
	ID        string    `db:"id" json:"id"`
	GoalID    string    `db:"goal_id" json:"goalId"`
	UserID    string    `db:"user_id" json:"userId"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
