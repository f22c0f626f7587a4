package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stridehq/stride/internal/model"
)

var (
	ErrFitnessNotFound = errors.New("fitness entry not found")
)

type FitnessRepository interface {
	Create(entry *model.FitnessEntry) error
	ByID(entryID string) (*model.FitnessEntry, error)
	// Since returns the user's entries with date >= since, newest first.
	Since(userID string, since time.Time) ([]*model.FitnessEntry, error)
	// InWindow returns the user's entry whose date falls in [start, end).
	InWindow(userID string, start, end time.Time) (*model.FitnessEntry, error)
	Update(entry *model.FitnessEntry) error
}

type fitnessRepository struct {
	db *sqlx.DB
}

func NewFitnessRepository(db *sqlx.DB) FitnessRepository {
	return &fitnessRepository{db: db}
}

func (r *fitnessRepository) Create(entry *model.FitnessEntry) error {
	query := `INSERT INTO fitness_entries (id, user_id, steps, distance, calories, active_minutes, heart_rate, weight, notes, date, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(query,
		entry.ID,
		entry.UserID,
		entry.Steps,
		entry.Distance,
		entry.Calories,
		entry.ActiveMinutes,
		entry.HeartRate,
		entry.Weight,
		entry.Notes,
		entry.Date,
		entry.CreatedAt,
	)

	return err
}

func (r *fitnessRepository) ByID(entryID string) (*model.FitnessEntry, error) {
	entry := &model.FitnessEntry{}
	query := `SELECT * FROM fitness_entries WHERE id = $1`

	err := r.db.Get(entry, query, entryID)
	if err == sql.ErrNoRows {
		return nil, ErrFitnessNotFound
	}

	return entry, err
}

func (r *fitnessRepository) Since(userID string, since time.Time) ([]*model.FitnessEntry, error) {
	var entries []*model.FitnessEntry
	query := `SELECT * FROM fitness_entries WHERE user_id = $1 AND date >= $2 ORDER BY date DESC`

	err := r.db.Select(&entries, query, userID, since)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *fitnessRepository) InWindow(userID string, start, end time.Time) (*model.FitnessEntry, error) {
	entry := &model.FitnessEntry{}
	query := `SELECT * FROM fitness_entries
	          WHERE user_id = $1 AND date >= $2 AND date < $3
	          ORDER BY created_at ASC LIMIT 1`

	err := r.db.Get(entry, query, userID, start, end)
	if err == sql.ErrNoRows {
		return nil, ErrFitnessNotFound
	}

	return entry, err
}

func (r *fitnessRepository) Update(entry *model.FitnessEntry) error {
	query := `UPDATE fitness_entries
	          SET steps = $1, distance = $2, calories = $3, active_minutes = $4,
	              heart_rate = $5, weight = $6, notes = $7
	          WHERE id = $8`

	result, err := r.db.Exec(query,
		entry.Steps,
		entry.Distance,
		entry.Calories,
		entry.ActiveMinutes,
		entry.HeartRate,
		entry.Weight,
		entry.Notes,
		entry.ID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrFitnessNotFound
	}

	return nil
}
