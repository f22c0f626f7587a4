package service

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/stridehq/stride/internal/apperr"
	"github.com/stridehq/stride/internal/model"
	"github.com/stridehq/stride/internal/repository"
	"github.com/stridehq/stride/internal/storage"
	"github.com/stridehq/stride/internal/validation"
)

// MemoryService owns photo memories: the object in file storage plus its row.
type MemoryService struct {
	memoryRepo repository.MemoryRepository
	storage    storage.Storage // nil when object storage is not configured
}

func NewMemoryService(memoryRepo repository.MemoryRepository, fileStorage storage.Storage) *MemoryService {
	return &MemoryService{
		memoryRepo: memoryRepo,
		storage:    fileStorage,
	}
}

func (s *MemoryService) List(userID string, goalID *string) ([]*model.PhotoMemory, error) {
	memories, err := s.memoryRepo.ByUser(userID, goalID)
	if err != nil {
		return nil, err
	}
	if memories == nil {
		memories = []*model.PhotoMemory{}
	}
	return memories, nil
}

// Upload validates the photo, stores the object and creates the row.
// Validation happens before any byte reaches storage.
func (s *MemoryService) Upload(userID string, goalID *string, caption string, tags []string, file multipart.File, header *multipart.FileHeader) (*model.PhotoMemory, error) {
	if s.storage == nil {
		return nil, apperr.Invalid("photo uploads are not configured")
	}

	err := validation.ValidateFile(header, validation.ImageConstraints)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInvalid, err.Error(), err)
	}

	ext := filepath.Ext(header.Filename)
	storagePath := fmt.Sprintf("memories/%s/%s%s", userID, uuid.New().String(), ext)

	err = s.storage.Save(storagePath, file)
	if err != nil {
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}

	memory := &model.PhotoMemory{
		ID:          uuid.New().String(),
		UserID:      userID,
		GoalID:      goalID,
		PhotoURL:    s.storage.URL(storagePath),
		StoragePath: storagePath,
		Caption:     caption,
		Tags:        tags,
		CreatedAt:   time.Now(),
	}

	err = s.memoryRepo.Create(memory)
	if err != nil {
		// DB insert failed, clean up the uploaded object
		delErr := s.storage.Delete(storagePath)
		if delErr != nil {
			slog.Error("failed to delete photo during cleanup", "error", delErr, "path", storagePath)
		}
		return nil, fmt.Errorf("failed to create photo memory: %w", err)
	}

	return memory, nil
}

// Delete removes the row and best-effort deletes the stored object.
func (s *MemoryService) Delete(userID, memoryID string) error {
	memory, err := s.memoryRepo.ByID(memoryID)
	if err == repository.ErrMemoryNotFound {
		return apperr.NotFound("photo memory not found")
	}
	if err != nil {
		return err
	}

	if memory.UserID != userID {
		return apperr.NotFound("photo memory not found")
	}

	err = s.memoryRepo.Delete(memoryID)
	if err == repository.ErrMemoryNotFound {
		return apperr.NotFound("photo memory not found")
	}
	if err != nil {
		return err
	}

	if s.storage != nil && memory.StoragePath != "" {
		delErr := s.storage.Delete(memory.StoragePath)
		if delErr != nil {
			slog.Warn("failed to delete photo from storage", "error", delErr, "path", memory.StoragePath)
		}
	}

	return nil
}
