package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/stridehq/stride/internal/model"
)

// ProgressEntryRepository is append-only: entries are history and are never
// updated or deleted individually.
type ProgressEntryRepository interface {
	Create(entry *model.ProgressEntry) error
	ByGoal(goalID string) ([]*model.ProgressEntry, error)
}

type progressEntryRepository struct {
	db *sqlx.DB
}

func NewProgressEntryRepository(db *sqlx.DB) ProgressEntryRepository {
	return &progressEntryRepository{db: db}
}

func (r *progressEntryRepository) Create(entry *model.ProgressEntry) error {
	query := `INSERT INTO progress_entries (id, goal_id, user_id, previous_progress, new_progress, notes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		entry.ID,
		entry.GoalID,
		entry.UserID,
		entry.PreviousProgress,
		entry.NewProgress,
		entry.Notes,
		entry.CreatedAt,
	)

	return err
}

func (r *progressEntryRepository) ByGoal(goalID string) ([]*model.ProgressEntry, error) {
	var entries []*model.ProgressEntry
	query := `SELECT * FROM progress_entries WHERE goal_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&entries, query, goalID)
	if err != nil {
		return nil, err
	}

	return entries, nil
}
