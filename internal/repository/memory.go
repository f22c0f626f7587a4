package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/stridehq/stride/internal/model"
)

var (
	ErrMemoryNotFound = errors.New("photo memory not found")
)

type MemoryRepository interface {
	Create(memory *model.PhotoMemory) error
	ByID(memoryID string) (*model.PhotoMemory, error)
	// ByUser lists the user's memories newest first, optionally filtered to
	// one goal.
	ByUser(userID string, goalID *string) ([]*model.PhotoMemory, error)
	Delete(memoryID string) error
}

type memoryRepository struct {
	db *sqlx.DB
}

func NewMemoryRepository(db *sqlx.DB) MemoryRepository {
	return &memoryRepository{db: db}
}

func (r *memoryRepository) Create(memory *model.PhotoMemory) error {
	query := `INSERT INTO photo_memories (id, user_id, goal_id, progress_entry_id, photo_url, storage_path, caption, tags, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		memory.ID,
		memory.UserID,
		memory.GoalID,
		memory.ProgressEntryID,
		memory.PhotoURL,
		memory.StoragePath,
		memory.Caption,
		memory.Tags,
		memory.CreatedAt,
	)

	return err
}

func (r *memoryRepository) ByID(memoryID string) (*model.PhotoMemory, error) {
	memory := &model.PhotoMemory{}
	query := `SELECT * FROM photo_memories WHERE id = $1`

	err := r.db.Get(memory, query, memoryID)
	if err == sql.ErrNoRows {
		return nil, ErrMemoryNotFound
	}

	return memory, err
}

func (r *memoryRepository) ByUser(userID string, goalID *string) ([]*model.PhotoMemory, error) {
	var memories []*model.PhotoMemory

	if goalID != nil {
		query := `SELECT * FROM photo_memories WHERE user_id = $1 AND goal_id = $2 ORDER BY created_at DESC`
		err := r.db.Select(&memories, query, userID, *goalID)
		if err != nil {
			return nil, err
		}
		return memories, nil
	}

	query := `SELECT * FROM photo_memories WHERE user_id = $1 ORDER BY created_at DESC`
	err := r.db.Select(&memories, query, userID)
	if err != nil {
		return nil, err
	}

	return memories, nil
}

func (r *memoryRepository) Delete(memoryID string) error {
	query := `DELETE FROM photo_memories WHERE id = $1`
	result, err := r.db.Exec(query, memoryID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrMemoryNotFound
	}

	return nil
}
