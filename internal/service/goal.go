package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stridehq/stride/internal/apperr"
	"github.com/stridehq/stride/internal/model"
	"github.com/stridehq/stride/internal/repository"
)

// GoalService owns goals and their satellites: milestones, collaborators and
// progress entries.
type GoalService struct {
	goalRepo      repository.GoalRepository
	milestoneRepo repository.MilestoneRepository
	collabRepo    repository.CollaboratorRepository
	progressRepo  repository.ProgressEntryRepository
	activities    *ActivityService
}

func NewGoalService(
	goalRepo repository.GoalRepository,
	milestoneRepo repository.MilestoneRepository,
	collabRepo repository.CollaboratorRepository,
	progressRepo repository.ProgressEntryRepository,
	activities *ActivityService,
) *GoalService {
	return &GoalService{
		goalRepo:      goalRepo,
		milestoneRepo: milestoneRepo,
		collabRepo:    collabRepo,
		progressRepo:  progressRepo,
		activities:    activities,
	}
}

type CreateGoalInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	TargetDate  *time.Time `json:"targetDate"`
	IsTeamGoal  bool       `json:"isTeamGoal"`
	Milestones  []string   `json:"milestones"`
}

func (s *GoalService) Create(userID string, input CreateGoalInput) (*model.GoalDetail, error) {
	if input.Title == "" {
		return nil, apperr.Invalid("title is required")
	}
	if input.Category == "" {
		input.Category = model.GoalCategoryPersonal
	}

	now := time.Now()
	goal := &model.Goal{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		TargetDate:  input.TargetDate,
		IsTeamGoal:  input.IsTeamGoal,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.goalRepo.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	// Optional milestone titles, created with ascending order index
	milestones := make([]*model.Milestone, 0, len(input.Milestones))
	for i, title := range input.Milestones {
		if title == "" {
			continue
		}
		milestone := &model.Milestone{
			ID:         uuid.New().String(),
			GoalID:     goal.ID,
			Title:      title,
			OrderIndex: i,
			CreatedAt:  time.Now(),
		}
		err = s.milestoneRepo.Create(milestone)
		if err != nil {
			return nil, fmt.Errorf("failed to create milestone: %w", err)
		}
		milestones = append(milestones, milestone)
	}

	s.activities.Record(model.ActivityGoalCreated, userID, &goal.ID, nil, model.JSONMap{
		"goalTitle": goal.Title,
	})

	return &model.GoalDetail{
		Goal:          *goal,
		Milestones:    milestones,
		Collaborators: []*model.GoalCollaborator{},
	}, nil
}

func (s *GoalService) ByID(goalID string) (*model.Goal, error) {
	goal, err := s.goalRepo.ByID(goalID)
	if err == repository.ErrGoalNotFound {
		return nil, apperr.NotFound("goal not found")
	}
	return goal, err
}

// Goals returns the user's goals with milestones and collaborators embedded.
func (s *GoalService) Goals(userID string) ([]*model.GoalDetail, error) {
	goals, err := s.goalRepo.ByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.withDetails(goals)
}

// TeamGoals returns goals where the user is owner-of-team-goal or
// collaborator, each at most once.
func (s *GoalService) TeamGoals(userID string) ([]*model.GoalDetail, error) {
	goals, err := s.goalRepo.TeamGoals(userID)
	if err != nil {
		return nil, err
	}
	return s.withDetails(goals)
}

func (s *GoalService) withDetails(goals []*model.Goal) ([]*model.GoalDetail, error) {
	details := make([]*model.GoalDetail, 0, len(goals))
	for _, goal := range goals {
		milestones, err := s.milestoneRepo.ByGoal(goal.ID)
		if err != nil {
			return nil, err
		}
		if milestones == nil {
			milestones = []*model.Milestone{}
		}
		collaborators, err := s.collabRepo.ByGoal(goal.ID)
		if err != nil {
			return nil, err
		}
		if collaborators == nil {
			collaborators = []*model.GoalCollaborator{}
		}
		details = append(details, &model.GoalDetail{
			Goal:          *goal,
			Milestones:    milestones,
			Collaborators: collaborators,
		})
	}
	return details, nil
}

type UpdateGoalInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	TargetDate  *time.Time `json:"targetDate"`
	Progress    *int       `json:"progress"`
	IsCompleted *bool      `json:"isCompleted"`
	IsTeamGoal  *bool      `json:"isTeamGoal"`
}

// Update applies a partial update. A progress change records a
// progress_updated activity.
func (s *GoalService) Update(userID, goalID string, input UpdateGoalInput) (*model.Goal, error) {
	goal, err := s.ByID(goalID)
	if err != nil {
		return nil, err
	}

	progressChanged := false

	if input.Title != nil {
		if *input.Title == "" {
			return nil, apperr.Invalid("title cannot be empty")
		}
		goal.Title = *input.Title
	}
	if input.Description != nil {
		goal.Description = *input.Description
	}
	if input.Category != nil {
		goal.Category = *input.Category
	}
	if input.TargetDate != nil {
		goal.TargetDate = input.TargetDate
	}
	if input.Progress != nil {
		if *input.Progress < 0 || *input.Progress > 100 {
			return nil, apperr.Invalid("progress must be between 0 and 100")
		}
		progressChanged = goal.Progress != *input.Progress
		goal.Progress = *input.Progress
	}
	if input.IsCompleted != nil {
		goal.IsCompleted = *input.IsCompleted
	}
	if input.IsTeamGoal != nil {
		goal.IsTeamGoal = *input.IsTeamGoal
	}

	goal.UpdatedAt = time.Now()
	err = s.goalRepo.Update(goal)
	if err == repository.ErrGoalNotFound {
		return nil, apperr.NotFound("goal not found")
	}
	if err != nil {
		return nil, err
	}

	if progressChanged {
		s.activities.Record(model.ActivityProgressUpdated, userID, &goal.ID, nil, model.JSONMap{
			"goalTitle":   goal.Title,
			"newProgress": goal.Progress,
		})
	}

	return goal, nil
}

func (s *GoalService) Delete(goalID string) error {
	err := s.goalRepo.Delete(goalID)
	if err == repository.ErrGoalNotFound {
		return apperr.NotFound("goal not found")
	}
	return err
}

type UpdateMilestoneInput struct {
	Title       *string `json:"title"`
	IsCompleted *bool   `json:"isCompleted"`
	OrderIndex  *int    `json:"order"`
}

// UpdateMilestone applies a partial update. A transition to completed stamps
// the completion time and records a milestone_completed activity; only a
// genuine incomplete-to-complete transition does, so re-saving an already
// completed milestone stays silent.
func (s *GoalService) UpdateMilestone(userID, milestoneID string, input UpdateMilestoneInput) (*model.Milestone, error) {
	milestone, err := s.milestoneRepo.ByID(milestoneID)
	if err == repository.ErrMilestoneNotFound {
		return nil, apperr.NotFound("milestone not found")
	}
	if err != nil {
		return nil, err
	}

	completedNow := false

	if input.Title != nil {
		if *input.Title == "" {
			return nil, apperr.Invalid("title cannot be empty")
		}
		milestone.Title = *input.Title
	}
	if input.OrderIndex != nil {
		milestone.OrderIndex = *input.OrderIndex
	}
	if input.IsCompleted != nil && *input.IsCompleted != milestone.IsCompleted {
		milestone.IsCompleted = *input.IsCompleted
		if *input.IsCompleted {
			now := time.Now()
			milestone.CompletedAt = &now
			completedNow = true
		} else {
			milestone.CompletedAt = nil
		}
	}

	err = s.milestoneRepo.Update(milestone)
	if err == repository.ErrMilestoneNotFound {
		return nil, apperr.NotFound("milestone not found")
	}
	if err != nil {
		return nil, err
	}

	if completedNow {
		data := model.JSONMap{"milestoneTitle": milestone.Title}
		goal, goalErr := s.goalRepo.ByID(milestone.GoalID)
		if goalErr == nil {
			data["goalTitle"] = goal.Title
		}
		s.activities.Record(model.ActivityMilestoneCompleted, userID, &milestone.GoalID, &milestone.ID, data)
	}

	return milestone, nil
}

func (s *GoalService) DeleteMilestone(milestoneID string) error {
	err := s.milestoneRepo.Delete(milestoneID)
	if err == repository.ErrMilestoneNotFound {
		return apperr.NotFound("milestone not found")
	}
	return err
}

// UpdateProgress appends a progress entry and sets the goal's progress in
// one operation, recording a single progress_updated activity.
func (s *GoalService) UpdateProgress(userID, goalID string, newProgress int, notes string) (*model.ProgressEntry, error) {
	if newProgress < 0 || newProgress > 100 {
		return nil, apperr.Invalid("progress must be between 0 and 100")
	}

	goal, err := s.ByID(goalID)
	if err != nil {
		return nil, err
	}

	entry := &model.ProgressEntry{
		ID:               uuid.New().String(),
		GoalID:           goal.ID,
		UserID:           userID,
		PreviousProgress: goal.Progress,
		NewProgress:      newProgress,
		Notes:            notes,
		CreatedAt:        time.Now(),
	}

	err = s.progressRepo.Create(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to create progress entry: %w", err)
	}

	goal.Progress = newProgress
	goal.UpdatedAt = time.Now()
	err = s.goalRepo.Update(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to update goal progress: %w", err)
	}

	s.activities.Record(model.ActivityProgressUpdated, userID, &goal.ID, nil, model.JSONMap{
		"goalTitle":   goal.Title,
		"newProgress": newProgress,
	})

	return entry, nil
}

func (s *GoalService) ProgressEntries(goalID string) ([]*model.ProgressEntry, error) {
	return s.progressRepo.ByGoal(goalID)
}

// AddCollaborator links a user to a goal with the given role.
func (s *GoalService) AddCollaborator(goalID, userID, role string) (*model.GoalCollaborator, error) {
	if role == "" {
		role = model.CollaboratorRoleCollaborator
	}
	if role != model.CollaboratorRoleOwner && role != model.CollaboratorRoleCollaborator {
		return nil, apperr.Invalid("role must be owner or collaborator")
	}
	if userID == "" {
		return nil, apperr.Invalid("userId is required")
	}

	_, err := s.ByID(goalID)
	if err != nil {
		return nil, err
	}

	collaborator := &model.GoalCollaborator{
		ID:        uuid.New().String(),
		GoalID:    goalID,
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now(),
	}

	err = s.collabRepo.Add(collaborator)
	if err != nil {
		return nil, fmt.Errorf("failed to add collaborator: %w", err)
	}

	return collaborator, nil
}

func (s *GoalService) RemoveCollaborator(goalID, userID string) error {
	err := s.collabRepo.Remove(goalID, userID)
	if err == repository.ErrCollaboratorNotFound {
		return apperr.NotFound("collaborator not found")
	}
	return err
}
