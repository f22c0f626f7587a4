package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stridehq/stride/internal/model"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

type UserRepository interface {
	ByID(userID string) (*model.User, error)
	Upsert(user *model.User) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) ByID(userID string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.Get(user, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) Upsert(user *model.User) error {
	query := `INSERT INTO users (id, email, first_name, last_name, profile_image_url, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          ON CONFLICT (id) DO UPDATE SET
	              email = excluded.email,
	              first_name = excluded.first_name,
	              last_name = excluded.last_name,
	              profile_image_url = excluded.profile_image_url,
	              updated_at = excluded.updated_at`

	_, err := r.db.Exec(query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.ProfileImageURL,
		user.CreatedAt,
		time.Now(),
	)

	return err
}
