// Package inmem is a map-backed implementation of the repository interfaces.
// It backs tests and the DB_DRIVER=memory demo mode; a single RWMutex guards
// the whole store, which is fine for a single-process demo.
package inmem

import (
	"sort"
	"sync"
	"time"

	"github.com/stridehq/stride/internal/model"
	"github.com/stridehq/stride/internal/repository"
)

type Store struct {
	mu            sync.RWMutex
	users         map[string]*model.User
	goals         map[string]*model.Goal
	milestones    map[string]*model.Milestone
	collaborators map[string]*model.GoalCollaborator
	progress      []*model.ProgressEntry
	checkins      []*model.DailyCheckin
	activities    []*model.Activity
	memories      map[string]*model.PhotoMemory
	fitness       map[string]*model.FitnessEntry
}

func New() *Store {
	return &Store{
		users:         make(map[string]*model.User),
		goals:         make(map[string]*model.Goal),
		milestones:    make(map[string]*model.Milestone),
		collaborators: make(map[string]*model.GoalCollaborator),
		memories:      make(map[string]*model.PhotoMemory),
		fitness:       make(map[string]*model.FitnessEntry),
	}
}

func (s *Store) Users() repository.UserRepository {
	return &userRepo{s}
}

func (s *Store) Goals() repository.GoalRepository {
	return &goalRepo{s}
}

func (s *Store) Milestones() repository.MilestoneRepository {
	return &milestoneRepo{s}
}

func (s *Store) Collaborators() repository.CollaboratorRepository {
	return &collaboratorRepo{s}
}

func (s *Store) ProgressEntries() repository.ProgressEntryRepository {
	return &progressRepo{s}
}

func (s *Store) Checkins() repository.CheckinRepository {
	return &checkinRepo{s}
}

func (s *Store) Activities() repository.ActivityRepository {
	return &activityRepo{s}
}

func (s *Store) Memories() repository.MemoryRepository {
	return &memoryRepo{s}
}

func (s *Store) Fitness() repository.FitnessRepository {
	return &fitnessRepo{s}
}

// Users

type userRepo struct{ s *Store }

func (r *userRepo) ByID(userID string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (r *userRepo) Upsert(user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u := *user
	u.UpdatedAt = time.Now()
	if existing, ok := r.s.users[u.ID]; ok {
		u.CreatedAt = existing.CreatedAt
	}
	r.s.users[u.ID] = &u
	return nil
}

// Goals

type goalRepo struct{ s *Store }

func (r *goalRepo) Create(goal *model.Goal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	g := *goal
	r.s.goals[g.ID] = &g
	return nil
}

func (r *goalRepo) ByID(goalID string) (*model.Goal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	goal, ok := r.s.goals[goalID]
	if !ok {
		return nil, repository.ErrGoalNotFound
	}
	g := *goal
	return &g, nil
}

func (r *goalRepo) ByUser(userID string) ([]*model.Goal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var goals []*model.Goal
	for _, goal := range r.s.goals {
		if goal.UserID == userID {
			g := *goal
			goals = append(goals, &g)
		}
	}
	sortGoalsByUpdated(goals)
	return goals, nil
}

func (r *goalRepo) TeamGoals(userID string) ([]*model.Goal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	collaborating := make(map[string]bool)
	for _, c := range r.s.collaborators {
		if c.UserID == userID {
			collaborating[c.GoalID] = true
		}
	}

	var goals []*model.Goal
	for _, goal := range r.s.goals {
		if !goal.IsTeamGoal {
			continue
		}
		if goal.UserID == userID || collaborating[goal.ID] {
			g := *goal
			goals = append(goals, &g)
		}
	}
	sortGoalsByUpdated(goals)
	return goals, nil
}

func (r *goalRepo) Update(goal *model.Goal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.goals[goal.ID]; !ok {
		return repository.ErrGoalNotFound
	}
	g := *goal
	g.UpdatedAt = time.Now()
	r.s.goals[g.ID] = &g
	return nil
}

// Delete cascades to the goal's milestones, collaborators and progress
// entries, and detaches photo memories, matching the relational schema.
func (r *goalRepo) Delete(goalID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.goals[goalID]; !ok {
		return repository.ErrGoalNotFound
	}
	delete(r.s.goals, goalID)

	for id, m := range r.s.milestones {
		if m.GoalID == goalID {
			delete(r.s.milestones, id)
		}
	}
	for id, c := range r.s.collaborators {
		if c.GoalID == goalID {
			delete(r.s.collaborators, id)
		}
	}
	kept := r.s.progress[:0]
	for _, e := range r.s.progress {
		if e.GoalID != goalID {
			kept = append(kept, e)
		}
	}
	r.s.progress = kept
	for _, m := range r.s.memories {
		if m.GoalID != nil && *m.GoalID == goalID {
			m.GoalID = nil
		}
	}
	for _, a := range r.s.activities {
		if a.GoalID != nil && *a.GoalID == goalID {
			a.GoalID = nil
		}
	}
	return nil
}

func sortGoalsByUpdated(goals []*model.Goal) {
	sort.SliceStable(goals, func(i, j int) bool {
		return goals[i].UpdatedAt.After(goals[j].UpdatedAt)
	})
}

// Milestones

type milestoneRepo struct{ s *Store }

func (r *milestoneRepo) Create(milestone *model.Milestone) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m := *milestone
	r.s.milestones[m.ID] = &m
	return nil
}

func (r *milestoneRepo) ByID(milestoneID string) (*model.Milestone, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	milestone, ok := r.s.milestones[milestoneID]
	if !ok {
		return nil, repository.ErrMilestoneNotFound
	}
	m := *milestone
	return &m, nil
}

func (r *milestoneRepo) ByGoal(goalID string) ([]*model.Milestone, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var milestones []*model.Milestone
	for _, milestone := range r.s.milestones {
		if milestone.GoalID == goalID {
			m := *milestone
			milestones = append(milestones, &m)
		}
	}
	sort.SliceStable(milestones, func(i, j int) bool {
		return milestones[i].OrderIndex < milestones[j].OrderIndex
	})
	return milestones, nil
}

func (r *milestoneRepo) Update(milestone *model.Milestone) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.milestones[milestone.ID]; !ok {
		return repository.ErrMilestoneNotFound
	}
	m := *milestone
	r.s.milestones[m.ID] = &m
	return nil
}

func (r *milestoneRepo) Delete(milestoneID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.milestones[milestoneID]; !ok {
		return repository.ErrMilestoneNotFound
	}
	delete(r.s.milestones, milestoneID)
	return nil
}

// Collaborators

type collaboratorRepo struct{ s *Store }

func (r *collaboratorRepo) ByGoal(goalID string) ([]*model.GoalCollaborator, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var collaborators []*model.GoalCollaborator
	for _, collaborator := range r.s.collaborators {
		if collaborator.GoalID == goalID {
			c := *collaborator
			collaborators = append(collaborators, &c)
		}
	}
	sort.SliceStable(collaborators, func(i, j int) bool {
		return collaborators[i].CreatedAt.Before(collaborators[j].CreatedAt)
	})
	return collaborators, nil
}

func (r *collaboratorRepo) Add(collaborator *model.GoalCollaborator) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c := *collaborator
	r.s.collaborators[c.ID] = &c
	return nil
}

func (r *collaboratorRepo) Remove(goalID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, c := range r.s.collaborators {
		if c.GoalID == goalID && c.UserID == userID {
			delete(r.s.collaborators, id)
			return nil
		}
	}
	return repository.ErrCollaboratorNotFound
}

// Progress entries

type progressRepo struct{ s *Store }

func (r *progressRepo) Create(entry *model.ProgressEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e := *entry
	r.s.progress = append(r.s.progress, &e)
	return nil
}

func (r *progressRepo) ByGoal(goalID string) ([]*model.ProgressEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var entries []*model.ProgressEntry
	// walk backwards so entries come out newest first
	for i := len(r.s.progress) - 1; i >= 0; i-- {
		if r.s.progress[i].GoalID == goalID {
			e := *r.s.progress[i]
			entries = append(entries, &e)
		}
	}
	return entries, nil
}

// Check-ins

type checkinRepo struct{ s *Store }

func (r *checkinRepo) Create(checkin *model.DailyCheckin) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c := *checkin
	r.s.checkins = append(r.s.checkins, &c)
	return nil
}

func (r *checkinRepo) InWindow(userID string, start, end time.Time) (*model.DailyCheckin, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, checkin := range r.s.checkins {
		if checkin.UserID != userID {
			continue
		}
		if !checkin.Date.Before(start) && checkin.Date.Before(end) {
			c := *checkin
			return &c, nil
		}
	}
	return nil, repository.ErrCheckinNotFound
}

// Activities

type activityRepo struct{ s *Store }

func (r *activityRepo) Create(activity *model.Activity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a := *activity
	r.s.activities = append(r.s.activities, &a)
	return nil
}

func (r *activityRepo) Recent(userID string, goalIDs []string, limit int) ([]*model.Activity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	goals := make(map[string]bool, len(goalIDs))
	for _, id := range goalIDs {
		goals[id] = true
	}

	var activities []*model.Activity
	// walk backwards so activities come out newest first
	for i := len(r.s.activities) - 1; i >= 0 && len(activities) < limit; i-- {
		activity := r.s.activities[i]
		if activity.UserID == userID || (activity.GoalID != nil && goals[*activity.GoalID]) {
			a := *activity
			activities = append(activities, &a)
		}
	}
	return activities, nil
}

// Photo memories

type memoryRepo struct{ s *Store }

func (r *memoryRepo) Create(memory *model.PhotoMemory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m := *memory
	r.s.memories[m.ID] = &m
	return nil
}

func (r *memoryRepo) ByID(memoryID string) (*model.PhotoMemory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	memory, ok := r.s.memories[memoryID]
	if !ok {
		return nil, repository.ErrMemoryNotFound
	}
	m := *memory
	return &m, nil
}

func (r *memoryRepo) ByUser(userID string, goalID *string) ([]*model.PhotoMemory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var memories []*model.PhotoMemory
	for _, memory := range r.s.memories {
		if memory.UserID != userID {
			continue
		}
		if goalID != nil && (memory.GoalID == nil || *memory.GoalID != *goalID) {
			continue
		}
		m := *memory
		memories = append(memories, &m)
	}
	sort.SliceStable(memories, func(i, j int) bool {
		return memories[i].CreatedAt.After(memories[j].CreatedAt)
	})
	return memories, nil
}

func (r *memoryRepo) Delete(memoryID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.memories[memoryID]; !ok {
		return repository.ErrMemoryNotFound
	}
	delete(r.s.memories, memoryID)
	return nil
}

// Fitness

type fitnessRepo struct{ s *Store }

func (r *fitnessRepo) Create(entry *model.FitnessEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e := *entry
	r.s.fitness[e.ID] = &e
	return nil
}

func (r *fitnessRepo) ByID(entryID string) (*model.FitnessEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	entry, ok := r.s.fitness[entryID]
	if !ok {
		return nil, repository.ErrFitnessNotFound
	}
	e := *entry
	return &e, nil
}

func (r *fitnessRepo) Since(userID string, since time.Time) ([]*model.FitnessEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var entries []*model.FitnessEntry
	for _, entry := range r.s.fitness {
		if entry.UserID == userID && !entry.Date.Before(since) {
			e := *entry
			entries = append(entries, &e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries, nil
}

func (r *fitnessRepo) InWindow(userID string, start, end time.Time) (*model.FitnessEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, entry := range r.s.fitness {
		if entry.UserID != userID {
			continue
		}
		if !entry.Date.Before(start) && entry.Date.Before(end) {
			e := *entry
			return &e, nil
		}
	}
	return nil, repository.ErrFitnessNotFound
}

func (r *fitnessRepo) Update(entry *model.FitnessEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.fitness[entry.ID]; !ok {
		return repository.ErrFitnessNotFound
	}
	e := *entry
	r.s.fitness[e.ID] = &e
	return nil
}
