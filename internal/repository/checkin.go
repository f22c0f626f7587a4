package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stridehq/stride/internal/model"
)

var (
	ErrCheckinNotFound = errors.New("checkin not found")
)

type CheckinRepository interface {
	Create(checkin *model.DailyCheckin) error
	// InWindow returns the user's check-in whose date falls in [start, end).
	InWindow(userID string, start, end time.Time) (*model.DailyCheckin, error)
}

type checkinRepository struct {
	db *sqlx.DB
}

func NewCheckinRepository(db *sqlx.DB) CheckinRepository {
	return &checkinRepository{db: db}
}

func (r *checkinRepository) Create(checkin *model.DailyCheckin) error {
	query := `INSERT INTO daily_checkins (id, user_id, mood, notes, date, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		checkin.ID,
		checkin.UserID,
		checkin.Mood,
		checkin.Notes,
		checkin.Date,
		checkin.CreatedAt,
	)

	return err
}

func (r *checkinRepository) InWindow(userID string, start, end time.Time) (*model.DailyCheckin, error) {
	checkin := &model.DailyCheckin{}
	query := `SELECT * FROM daily_checkins
	          WHERE user_id = $1 AND date >= $2 AND date < $3
	          ORDER BY created_at ASC LIMIT 1`

	err := r.db.Get(checkin, query, userID, start, end)
	if err == sql.ErrNoRows {
		return nil, ErrCheckinNotFound
	}

	return checkin, err
}
