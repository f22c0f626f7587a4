package service

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/stridehq/stride/internal/model"
	"github.com/stridehq/stride/internal/repository"
)

const DefaultActivityLimit = 10

// ActivityService records activity rows for write paths and serves the feed.
type ActivityService struct {
	activityRepo repository.ActivityRepository
	goalRepo     repository.GoalRepository
	userRepo     repository.UserRepository
}

func NewActivityService(
	activityRepo repository.ActivityRepository,
	goalRepo repository.GoalRepository,
	userRepo repository.UserRepository,
) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		goalRepo:     goalRepo,
		userRepo:     userRepo,
	}
}

// Record appends one immutable activity row. Recording is best-effort: a
// failure is logged and swallowed so it never fails the primary write.
func (s *ActivityService) Record(activityType, userID string, goalID, milestoneID *string, data model.JSONMap) {
	activity := &model.Activity{
		ID:          uuid.New().String(),
		Type:        activityType,
		UserID:      userID,
		GoalID:      goalID,
		MilestoneID: milestoneID,
		Data:        data,
		CreatedAt:   time.Now(),
	}

	err := s.activityRepo.Create(activity)
	if err != nil {
		slog.Error("failed to record activity", "error", err, "type", activityType, "user_id", userID)
	}
}

// Recent returns the newest activities visible to the user: their own plus
// those on their team goals, each enriched with the acting user's profile.
func (s *ActivityService) Recent(userID string, limit int) ([]*model.ActivityWithUser, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}

	teamGoals, err := s.goalRepo.TeamGoals(userID)
	if err != nil {
		return nil, err
	}

	goalIDs := make([]string, 0, len(teamGoals))
	for _, goal := range teamGoals {
		goalIDs = append(goalIDs, goal.ID)
	}

	activities, err := s.activityRepo.Recent(userID, goalIDs, limit)
	if err != nil {
		return nil, err
	}

	// Enrich with acting-user profiles; the demo has few distinct actors so
	// a tiny cache avoids repeated lookups.
	users := make(map[string]*model.User)
	feed := make([]*model.ActivityWithUser, 0, len(activities))
	for _, activity := range activities {
		user, ok := users[activity.UserID]
		if !ok {
			user, err = s.userRepo.ByID(activity.UserID)
			if err != nil && err != repository.ErrUserNotFound {
				return nil, err
			}
			users[activity.UserID] = user
		}
		feed = append(feed, &model.ActivityWithUser{Activity: *activity, User: user})
	}

	return feed, nil
}
