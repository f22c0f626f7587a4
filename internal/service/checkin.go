package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stridehq/stride/internal/apperr"
	"github.com/stridehq/stride/internal/model"
	"github.com/stridehq/stride/internal/repository"
)

// CheckinService owns the once-daily mood check-in.
type CheckinService struct {
	checkinRepo repository.CheckinRepository
	activities  *ActivityService
	now         func() time.Time
}

func NewCheckinService(checkinRepo repository.CheckinRepository, activities *ActivityService) *CheckinService {
	return &CheckinService{
		checkinRepo: checkinRepo,
		activities:  activities,
		now:         time.Now,
	}
}

// dayWindow returns [local midnight, local midnight + 24h) for t.
func dayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24 * time.Hour)
}

// Today returns the user's check-in for the current calendar day, or nil if
// none exists yet.
func (s *CheckinService) Today(userID string) (*model.DailyCheckin, error) {
	start, end := dayWindow(s.now())
	checkin, err := s.checkinRepo.InWindow(userID, start, end)
	if err == repository.ErrCheckinNotFound {
		return nil, nil
	}
	return checkin, err
}

// Create records today's check-in. A second check-in on the same calendar
// day is rejected.
func (s *CheckinService) Create(userID, mood, notes string) (*model.DailyCheckin, error) {
	if !model.ValidMood(mood) {
		return nil, apperr.Invalid("mood must be one of great, good, okay, struggling")
	}

	existing, err := s.Today(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("already checked in today")
	}

	now := s.now()
	checkin := &model.DailyCheckin{
		ID:        uuid.New().String(),
		UserID:    userID,
		Mood:      mood,
		Notes:     notes,
		Date:      now,
		CreatedAt: now,
	}

	err = s.checkinRepo.Create(checkin)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkin: %w", err)
	}

	s.activities.Record(model.ActivityDailyCheckin, userID, nil, nil, model.JSONMap{
		"mood": checkin.Mood,
	})

	return checkin, nil
}
