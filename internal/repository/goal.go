package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stridehq/stride/internal/model"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Create(goal *model.Goal) error
	ByID(goalID string) (*model.Goal, error)
	ByUser(userID string) ([]*model.Goal, error)
	TeamGoals(userID string) ([]*model.Goal, error)
	Update(goal *model.Goal) error
	Delete(goalID string) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(goal *model.Goal) error {
	query := `INSERT INTO goals (id, user_id, title, description, category, target_date, progress, is_completed, is_team_goal, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.Category,
		goal.TargetDate,
		goal.Progress,
		goal.IsCompleted,
		goal.IsTeamGoal,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

func (r *goalRepository) ByID(goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1`

	err := r.db.Get(goal, query, goalID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}

	return goal, err
}

func (r *goalRepository) ByUser(userID string) ([]*model.Goal, error) {
	var goals []*model.Goal
	query := `SELECT * FROM goals WHERE user_id = $1 ORDER BY updated_at DESC`

	err := r.db.Select(&goals, query, userID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

// TeamGoals returns team goals the user owns plus team goals the user
// collaborates on. DISTINCT keeps a goal from appearing twice when the user
// is both owner and listed collaborator.
func (r *goalRepository) TeamGoals(userID string) ([]*model.Goal, error) {
	var goals []*model.Goal
	query := `SELECT DISTINCT g.*
	          FROM goals g
	          LEFT JOIN goal_collaborators c ON c.goal_id = g.id
	          WHERE g.is_team_goal = true AND (g.user_id = $1 OR c.user_id = $1)
	          ORDER BY g.updated_at DESC`

	err := r.db.Select(&goals, query, userID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) Update(goal *model.Goal) error {
	query := `UPDATE goals
	          SET title = $1, description = $2, category = $3, target_date = $4,
	              progress = $5, is_completed = $6, is_team_goal = $7, updated_at = $8
	          WHERE id = $9`

	result, err := r.db.Exec(query,
		goal.Title,
		goal.Description,
		goal.Category,
		goal.TargetDate,
		goal.Progress,
		goal.IsCompleted,
		goal.IsTeamGoal,
		time.Now(),
		goal.ID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

// Delete removes the goal. Milestones, collaborators and progress entries go
// with it via ON DELETE CASCADE; photo memories keep their row with the goal
// reference nulled.
func (r *goalRepository) Delete(goalID string) error {
	query := `DELETE FROM goals WHERE id = $1`
	result, err := r.db.Exec(query, goalID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}
