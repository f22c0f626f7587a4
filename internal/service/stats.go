package service

import (
	"math"
	"time"

	"github.com/stridehq/stride/internal/repository"
)

// UserStats is the dashboard summary.
type UserStats struct {
	ActiveGoals   int `json:"activeGoals"`
	CompletedWeek int `json:"completedWeek"`
	TeamGoals     int `json:"teamGoals"`
	AvgProgress   int `json:"avgProgress"`
	TotalSteps    int `json:"totalSteps"`
}

// StatsService computes the dashboard numbers by full scan on every call;
// nothing is cached or maintained incrementally.
type StatsService struct {
	goalRepo    repository.GoalRepository
	fitnessRepo repository.FitnessRepository
	now         func() time.Time
}

func NewStatsService(goalRepo repository.GoalRepository, fitnessRepo repository.FitnessRepository) *StatsService {
	return &StatsService{
		goalRepo:    goalRepo,
		fitnessRepo: fitnessRepo,
		now:         time.Now,
	}
}

func (s *StatsService) Stats(userID string) (*UserStats, error) {
	goals, err := s.goalRepo.ByUser(userID)
	if err != nil {
		return nil, err
	}

	teamGoals, err := s.goalRepo.TeamGoals(userID)
	if err != nil {
		return nil, err
	}

	weekAgo := s.now().Add(-7 * 24 * time.Hour)

	stats := &UserStats{
		TeamGoals: len(teamGoals),
	}

	totalProgress := 0
	for _, goal := range goals {
		if !goal.IsCompleted {
			stats.ActiveGoals++
		}
		if goal.IsCompleted && !goal.UpdatedAt.Before(weekAgo) {
			stats.CompletedWeek++
		}
		totalProgress += goal.Progress
	}
	if len(goals) > 0 {
		stats.AvgProgress = int(math.Round(float64(totalProgress) / float64(len(goals))))
	}

	fitness, err := s.fitnessRepo.Since(userID, weekAgo)
	if err != nil {
		return nil, err
	}
	for _, entry := range fitness {
		stats.TotalSteps += entry.Steps
	}

	return stats, nil
}
