package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/stridehq/stride/internal/model"
)

var (
	ErrMilestoneNotFound = errors.New("milestone not found")
)

type MilestoneRepository interface {
	Create(milestone *model.Milestone) error
	ByID(milestoneID string) (*model.Milestone, error)
	ByGoal(goalID string) ([]*model.Milestone, error)
	Update(milestone *model.Milestone) error
	Delete(milestoneID string) error
}

type milestoneRepository struct {
	db *sqlx.DB
}

func NewMilestoneRepository(db *sqlx.DB) MilestoneRepository {
	return &milestoneRepository{db: db}
}

func (r *milestoneRepository) Create(milestone *model.Milestone) error {
	query := `INSERT INTO milestones (id, goal_id, title, is_completed, order_index, created_at, completed_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		milestone.ID,
		milestone.GoalID,
		milestone.Title,
		milestone.IsCompleted,
		milestone.OrderIndex,
		milestone.CreatedAt,
		milestone.CompletedAt,
	)

	return err
}

func (r *milestoneRepository) ByID(milestoneID string) (*model.Milestone, error) {
	milestone := &model.Milestone{}
	query := `SELECT * FROM milestones WHERE id = $1`

	err := r.db.Get(milestone, query, milestoneID)
	if err == sql.ErrNoRows {
		return nil, ErrMilestoneNotFound
	}

	return milestone, err
}

func (r *milestoneRepository) ByGoal(goalID string) ([]*model.Milestone, error) {
	var milestones []*model.Milestone
	query := `SELECT * FROM milestones WHERE goal_id = $1 ORDER BY order_index ASC`

	err := r.db.Select(&milestones, query, goalID)
	if err != nil {
		return nil, err
	}

	return milestones, nil
}

func (r *milestoneRepository) Update(milestone *model.Milestone) error {
	query := `UPDATE milestones
	          SET title = $1, is_completed = $2, order_index = $3, completed_at = $4
	          WHERE id = $5`

	result, err := r.db.Exec(query,
		milestone.Title,
		milestone.IsCompleted,
		milestone.OrderIndex,
		milestone.CompletedAt,
		milestone.ID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrMilestoneNotFound
	}

	return nil
}

func (r *milestoneRepository) Delete(milestoneID string) error {
	query := `DELETE FROM milestones WHERE id = $1`
	result, err := r.db.Exec(query, milestoneID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrMilestoneNotFound
	}

	return nil
}
