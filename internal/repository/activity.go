package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/stridehq/stride/internal/model"
)

// ActivityRepository is append-only: activities are immutable history.
type ActivityRepository interface {
	Create(activity *model.Activity) error
	// Recent returns the newest activities where the acting user is userID or
	// the activity's goal is one of goalIDs.
	Recent(userID string, goalIDs []string, limit int) ([]*model.Activity, error)
}

type activityRepository struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(activity *model.Activity) error {
	query := `INSERT INTO activities (id, type, user_id, goal_id, milestone_id, data, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		activity.ID,
		activity.Type,
		activity.UserID,
		activity.GoalID,
		activity.MilestoneID,
		activity.Data,
		activity.CreatedAt,
	)

	return err
}

func (r *activityRepository) Recent(userID string, goalIDs []string, limit int) ([]*model.Activity, error) {
	var activities []*model.Activity

	if len(goalIDs) == 0 {
		query := `SELECT * FROM activities WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
		err := r.db.Select(&activities, query, userID, limit)
		if err != nil {
			return nil, err
		}
		return activities, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM activities
	          WHERE user_id = ? OR goal_id IN (?)
	          ORDER BY created_at DESC LIMIT ?`, userID, goalIDs, limit)
	if err != nil {
		return nil, err
	}

	err = r.db.Select(&activities, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	return activities, nil
}
