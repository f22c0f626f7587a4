package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stridehq/stride/internal/apperr"
	"github.com/stridehq/stride/internal/model"
	"github.com/stridehq/stride/internal/repository/inmem"
)

type testEnv struct {
	store      *inmem.Store
	goals      *GoalService
	checkins   *CheckinService
	activities *ActivityService
	stats      *StatsService
	fitness    *FitnessService
	auth       *AuthService
}

func newTestEnv() *testEnv {
	store := inmem.New()
	activities := NewActivityService(store.Activities(), store.Goals(), store.Users())
	return &testEnv{
		store:      store,
		goals:      NewGoalService(store.Goals(), store.Milestones(), store.Collaborators(), store.ProgressEntries(), activities),
		checkins:   NewCheckinService(store.Checkins(), activities),
		activities: activities,
		stats:      NewStatsService(store.Goals(), store.Fitness()),
		fitness:    NewFitnessService(store.Fitness()),
		auth:       NewAuthService(store.Users(), "test-secret", 0, false, "demo-user", "demo@example.com"),
	}
}

func (e *testEnv) feed(t *testing.T, userID string) []*model.ActivityWithUser {
	t.Helper()
	feed, err := e.activities.Recent(userID, 50)
	require.NoError(t, err)
	return feed
}

func TestCreateGoalWithMilestones(t *testing.T) {
	env := newTestEnv()

	detail, err := env.goals.Create("user-1", CreateGoalInput{
		Title:      "Run a marathon",
		Category:   model.GoalCategoryHealth,
		Milestones: []string{"Run 5k", "Run 10k", "Run a half"},
	})
	require.NoError(t, err)
	require.Len(t, detail.Milestones, 3)

	assert.Equal(t, "user-1", detail.UserID)
	assert.Equal(t, model.GoalCategoryHealth, detail.Category)
	assert.Equal(t, 0, detail.Progress)
	assert.False(t, detail.IsCompleted)
	for i, milestone := range detail.Milestones {
		assert.Equal(t, i, milestone.OrderIndex)
		assert.Equal(t, detail.ID, milestone.GoalID)
		assert.False(t, milestone.IsCompleted)
	}

	feed := env.feed(t, "user-1")
	require.Len(t, feed, 1)
	assert.Equal(t, model.ActivityGoalCreated, feed[0].Type)
	assert.Equal(t, "Run a marathon", feed[0].Data["goalTitle"])
}

func TestCreateGoalRequiresTitle(t *testing.T) {
	env := newTestEnv()

	_, err := env.goals.Create("user-1", CreateGoalInput{})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestCreateGoalDefaultsToPersonalCategory(t *testing.T) {
	env := newTestEnv()

	detail, err := env.goals.Create("user-1", CreateGoalInput{Title: "Read more"})
	require.NoError(t, err)
	assert.Equal(t, model.GoalCategoryPersonal, detail.Category)
	assert.Empty(t, detail.Milestones)
	assert.Empty(t, detail.Collaborators)
}

func TestUpdateGoalRejectsOutOfRangeProgress(t *testing.T) {
	env := newTestEnv()

	detail, err := env.goals.Create("user-1", CreateGoalInput{Title: "Save money"})
	require.NoError(t, err)

	for _, progress := range []int{-1, 101} {
		p := progress
		_, err = env.goals.Update("user-1", detail.ID, UpdateGoalInput{Progress: &p})
		require.Error(t, err)
		assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
	}

	goal, err := env.goals.ByID(detail.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, goal.Progress)
}

func TestUpdateGoalNotFound(t *testing.T) {
	env := newTestEnv()

	title := "New title"
	_, err := env.goals.Update("user-1", "missing", UpdateGoalInput{Title: &title})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpdateProgressAppendsEntryAndRecordsOneActivity(t *testing.T) {
	env := newTestEnv()

	detail, err := env.goals.Create("user-1", CreateGoalInput{Title: "Run 5k"})
	require.NoError(t, err)

	entry, err := env.goals.UpdateProgress("user-1", detail.ID, 40, "felt good")
	require.NoError(t, err)
	assert.Equal(t, 0, entry.PreviousProgress)
	assert.Equal(t, 40, entry.NewProgress)
	assert.Equal(t, "felt good", entry.Notes)

	goal, err := env.goals.ByID(detail.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, goal.Progress)

	entries, err := env.goals.ProgressEntries(detail.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	// a second report chains off the first
	entry, err = env.goals.UpdateProgress("user-1", detail.ID, 65, "")
	require.NoError(t, err)
	assert.Equal(t, 40, entry.PreviousProgress)
	assert.Equal(t, 65, entry.NewProgress)

	entries, err = env.goals.ProgressEntries(detail.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// newest first
	assert.Equal(t, 65, entries[0].NewProgress)
	assert.Equal(t, 40, entries[1].NewProgress)

	updated := 0
	for _, activity := range env.feed(t, "user-1") {
		if activity.Type == model.ActivityProgressUpdated {
			updated++
		}
	}
	assert.Equal(t, 2, updated)
}

func TestUpdateProgressRejectsOutOfRange(t *testing.T) {
	env := newTestEnv()

	detail, err := env.goals.Create("user-1", CreateGoalInput{Title: "Run 5k"})
	require.NoError(t, err)

	_, err = env.goals.UpdateProgress("user-1", detail.ID, 150, "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))

	entries, err := env.goals.ProgressEntries(detail.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMilestoneCompletionRecordsActivityPerTransition(t *testing.T) {
	env := newTestEnv()

	detail, err := env.goals.Create("user-1", CreateGoalInput{
		Title:      "Learn Go",
		Milestones: []string{"Finish the tour"},
	})
	require.NoError(t, err)
	milestoneID := detail.Milestones[0].ID

	completed := true
	milestone, err := env.goals.UpdateMilestone("user-1", milestoneID, UpdateMilestoneInput{IsCompleted: &completed})
	require.NoError(t, err)
	assert.True(t, milestone.IsCompleted)
	require.NotNil(t, milestone.CompletedAt)

	// completing an already completed milestone stays silent
	_, err = env.goals.UpdateMilestone("user-1", milestoneID, UpdateMilestoneInput{IsCompleted: &completed})
	require.NoError(t, err)

	uncompleted := false
	milestone, err = env.goals.UpdateMilestone("user-1", milestoneID, UpdateMilestoneInput{IsCompleted: &uncompleted})
	require.NoError(t, err)
	assert.False(t, milestone.IsCompleted)
	assert.Nil(t, milestone.CompletedAt)

	// a fresh transition records again
	_, err = env.goals.UpdateMilestone("user-1", milestoneID, UpdateMilestoneInput{IsCompleted: &completed})
	require.NoError(t, err)

	recorded := 0
	for _, activity := range env.feed(t, "user-1") {
		if activity.Type == model.ActivityMilestoneCompleted {
			recorded++
			assert.Equal(t, "Finish the tour", activity.Data["milestoneTitle"])
			assert.Equal(t, "Learn Go", activity.Data["goalTitle"])
		}
	}
	assert.Equal(t, 2, recorded)
}

func TestTeamGoalsListsEachGoalOnce(t *testing.T) {
	env := newTestEnv()

	owned, err := env.goals.Create("user-1", CreateGoalInput{Title: "Ship the release", IsTeamGoal: true})
	require.NoError(t, err)

	// user-1 is owner and collaborator on the same team goal
	_, err = env.goals.AddCollaborator(owned.ID, "user-1", model.CollaboratorRoleOwner)
	require.NoError(t, err)

	other, err := env.goals.Create("user-2", CreateGoalInput{Title: "Plan the offsite", IsTeamGoal: true})
	require.NoError(t, err)
	_, err = env.goals.AddCollaborator(other.ID, "user-1", "")
	require.NoError(t, err)

	// personal goals and other people's team goals stay out
	_, err = env.goals.Create("user-1", CreateGoalInput{Title: "Meditate daily"})
	require.NoError(t, err)
	_, err = env.goals.Create("user-3", CreateGoalInput{Title: "Unrelated", IsTeamGoal: true})
	require.NoError(t, err)

	teamGoals, err := env.goals.TeamGoals("user-1")
	require.NoError(t, err)
	require.Len(t, teamGoals, 2)

	seen := make(map[string]int)
	for _, goal := range teamGoals {
		seen[goal.ID]++
	}
	assert.Equal(t, 1, seen[owned.ID])
	assert.Equal(t, 1, seen[other.ID])
}

func TestDeleteGoalCascades(t *testing.T) {
	env := newTestEnv()

	detail, err := env.goals.Create("user-1", CreateGoalInput{
		Title:      "Declutter",
		Milestones: []string{"Garage", "Attic"},
	})
	require.NoError(t, err)
	_, err = env.goals.UpdateProgress("user-1", detail.ID, 25, "")
	require.NoError(t, err)
	_, err = env.goals.AddCollaborator(detail.ID, "user-2", "")
	require.NoError(t, err)

	err = env.goals.Delete(detail.ID)
	require.NoError(t, err)

	_, err = env.goals.ByID(detail.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = env.goals.UpdateMilestone("user-1", detail.Milestones[0].ID, UpdateMilestoneInput{})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	entries, err := env.goals.ProgressEntries(detail.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// activity history survives, detached from the goal
	feed := env.feed(t, "user-1")
	require.NotEmpty(t, feed)
	for _, activity := range feed {
		assert.Nil(t, activity.GoalID)
	}

	err = env.goals.Delete(detail.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestAddCollaboratorValidatesRole(t *testing.T) {
	env := newTestEnv()

	detail, err := env.goals.Create("user-1", CreateGoalInput{Title: "Team thing", IsTeamGoal: true})
	require.NoError(t, err)

	_, err = env.goals.AddCollaborator(detail.ID, "user-2", "admin")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))

	_, err = env.goals.AddCollaborator(detail.ID, "", "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))

	collaborator, err := env.goals.AddCollaborator(detail.ID, "user-2", "")
	require.NoError(t, err)
	assert.Equal(t, model.CollaboratorRoleCollaborator, collaborator.Role)

	err = env.goals.RemoveCollaborator(detail.ID, "user-2")
	require.NoError(t, err)
	err = env.goals.RemoveCollaborator(detail.ID, "user-2")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestAddCollaboratorUnknownGoal(t *testing.T) {
	env := newTestEnv()

	_, err := env.goals.AddCollaborator("missing", "user-2", "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
