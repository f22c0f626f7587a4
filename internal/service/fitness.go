package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stridehq/stride/internal/apperr"
	"github.com/stridehq/stride/internal/model"
	"github.com/stridehq/stride/internal/repository"
)

const DefaultFitnessDays = 7

// FitnessService owns the once-daily fitness metrics.
type FitnessService struct {
	fitnessRepo repository.FitnessRepository
	now         func() time.Time
}

func NewFitnessService(fitnessRepo repository.FitnessRepository) *FitnessService {
	return &FitnessService{
		fitnessRepo: fitnessRepo,
		now:         time.Now,
	}
}

// Today returns the user's fitness entry for the current calendar day, or
// nil if none exists yet.
func (s *FitnessService) Today(userID string) (*model.FitnessEntry, error) {
	start, end := dayWindow(s.now())
	entry, err := s.fitnessRepo.InWindow(userID, start, end)
	if err == repository.ErrFitnessNotFound {
		return nil, nil
	}
	return entry, err
}

// Weekly returns the user's entries for the trailing days, newest first.
func (s *FitnessService) Weekly(userID string, days int) ([]*model.FitnessEntry, error) {
	if days <= 0 {
		days = DefaultFitnessDays
	}
	since := s.now().Add(-time.Duration(days) * 24 * time.Hour)
	entries, err := s.fitnessRepo.Since(userID, since)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*model.FitnessEntry{}
	}
	return entries, nil
}

type CreateFitnessInput struct {
	Steps         int      `json:"steps"`
	Distance      float64  `json:"distance"`
	Calories      int      `json:"calories"`
	ActiveMinutes int      `json:"activeMinutes"`
	HeartRate     *int     `json:"heartRate"`
	Weight        *float64 `json:"weight"`
	Notes         string   `json:"notes"`
}

// Create records today's fitness entry. A second entry on the same calendar
// day is rejected; callers update the existing row instead.
func (s *FitnessService) Create(userID string, input CreateFitnessInput) (*model.FitnessEntry, error) {
	err := validateFitness(input.Steps, input.Distance, input.Calories, input.ActiveMinutes)
	if err != nil {
		return nil, err
	}

	existing, err := s.Today(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("fitness entry already exists for today")
	}

	now := s.now()
	entry := &model.FitnessEntry{
		ID:            uuid.New().String(),
		UserID:        userID,
		Steps:         input.Steps,
		Distance:      input.Distance,
		Calories:      input.Calories,
		ActiveMinutes: input.ActiveMinutes,
		HeartRate:     input.HeartRate,
		Weight:        input.Weight,
		Notes:         input.Notes,
		Date:          now,
		CreatedAt:     now,
	}

	err = s.fitnessRepo.Create(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to create fitness entry: %w", err)
	}

	return entry, nil
}

type UpdateFitnessInput struct {
	Steps         *int     `json:"steps"`
	Distance      *float64 `json:"distance"`
	Calories      *int     `json:"calories"`
	ActiveMinutes *int     `json:"activeMinutes"`
	HeartRate     *int     `json:"heartRate"`
	Weight        *float64 `json:"weight"`
	Notes         *string  `json:"notes"`
}

// Update applies a partial update to an existing entry.
func (s *FitnessService) Update(entryID string, input UpdateFitnessInput) (*model.FitnessEntry, error) {
	entry, err := s.fitnessRepo.ByID(entryID)
	if err == repository.ErrFitnessNotFound {
		return nil, apperr.NotFound("fitness entry not found")
	}
	if err != nil {
		return nil, err
	}

	if input.Steps != nil {
		entry.Steps = *input.Steps
	}
	if input.Distance != nil {
		entry.Distance = *input.Distance
	}
	if input.Calories != nil {
		entry.Calories = *input.Calories
	}
	if input.ActiveMinutes != nil {
		entry.ActiveMinutes = *input.ActiveMinutes
	}
	if input.HeartRate != nil {
		entry.HeartRate = input.HeartRate
	}
	if input.Weight != nil {
		entry.Weight = input.Weight
	}
	if input.Notes != nil {
		entry.Notes = *input.Notes
	}

	err = validateFitness(entry.Steps, entry.Distance, entry.Calories, entry.ActiveMinutes)
	if err != nil {
		return nil, err
	}

	err = s.fitnessRepo.Update(entry)
	if err == repository.ErrFitnessNotFound {
		return nil, apperr.NotFound("fitness entry not found")
	}
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func validateFitness(steps int, distance float64, calories, activeMinutes int) error {
	if steps < 0 {
		return apperr.Invalid("steps cannot be negative")
	}
	if distance < 0 {
		return apperr.Invalid("distance cannot be negative")
	}
	if calories < 0 {
		return apperr.Invalid("calories cannot be negative")
	}
	if activeMinutes < 0 {
		return apperr.Invalid("activeMinutes cannot be negative")
	}
	return nil
}
