package repository

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/stridehq/stride/internal/model"
)

var (
	ErrCollaboratorNotFound = errors.New("collaborator not found")
)

type CollaboratorRepository interface {
	ByGoal(goalID string) ([]*model.GoalCollaborator, error)
	Add(collaborator *model.GoalCollaborator) error
	Remove(goalID, userID string) error
}

type collaboratorRepository struct {
	db *sqlx.DB
}

func NewCollaboratorRepository(db *sqlx.DB) CollaboratorRepository {
	return &collaboratorRepository{db: db}
}

func (r *collaboratorRepository) ByGoal(goalID string) ([]*model.GoalCollaborator, error) {
	var collaborators []*model.GoalCollaborator
	query := `SELECT * FROM goal_collaborators WHERE goal_id = $1 ORDER BY created_at ASC`

	err := r.db.Select(&collaborators, query, goalID)
	if err != nil {
		return nil, err
	}

	return collaborators, nil
}

func (r *collaboratorRepository) Add(collaborator *model.GoalCollaborator) error {
	query := `INSERT INTO goal_collaborators (id, goal_id, user_id, role, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query,
		collaborator.ID,
		collaborator.GoalID,
		collaborator.UserID,
		collaborator.Role,
		collaborator.CreatedAt,
	)

	return err
}

func (r *collaboratorRepository) Remove(goalID, userID string) error {
	query := `DELETE FROM goal_collaborators WHERE goal_id = $1 AND user_id = $2`
	result, err := r.db.Exec(query, goalID, userID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCollaboratorNotFound
	}

	return nil
}
