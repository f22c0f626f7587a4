package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stridehq/stride/internal/apperr"
)

func TestFitnessOneEntryPerDay(t *testing.T) {
	env := newTestEnv()
	day := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	env.fitness.now = func() time.Time { return day }

	today, err := env.fitness.Today("user-1")
	require.NoError(t, err)
	assert.Nil(t, today)

	entry, err := env.fitness.Create("user-1", CreateFitnessInput{Steps: 8000, Distance: 5.2, Calories: 320, ActiveMinutes: 45})
	require.NoError(t, err)

	_, err = env.fitness.Create("user-1", CreateFitnessInput{Steps: 100})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	today, err = env.fitness.Today("user-1")
	require.NoError(t, err)
	require.NotNil(t, today)
	assert.Equal(t, entry.ID, today.ID)

	env.fitness.now = func() time.Time { return day.Add(24 * time.Hour) }
	_, err = env.fitness.Create("user-1", CreateFitnessInput{Steps: 6000})
	require.NoError(t, err)
}

func TestFitnessRejectsNegativeMetrics(t *testing.T) {
	env := newTestEnv()

	_, err := env.fitness.Create("user-1", CreateFitnessInput{Steps: -1})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))

	_, err = env.fitness.Create("user-1", CreateFitnessInput{Distance: -0.5})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestFitnessPartialUpdate(t *testing.T) {
	env := newTestEnv()

	entry, err := env.fitness.Create("user-1", CreateFitnessInput{Steps: 8000, Calories: 320})
	require.NoError(t, err)

	steps := 9500
	heartRate := 62
	updated, err := env.fitness.Update(entry.ID, UpdateFitnessInput{Steps: &steps, HeartRate: &heartRate})
	require.NoError(t, err)
	assert.Equal(t, 9500, updated.Steps)
	assert.Equal(t, 320, updated.Calories)
	require.NotNil(t, updated.HeartRate)
	assert.Equal(t, 62, *updated.HeartRate)

	bad := -10
	_, err = env.fitness.Update(entry.ID, UpdateFitnessInput{Steps: &bad})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))

	_, err = env.fitness.Update("missing", UpdateFitnessInput{Steps: &steps})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestFitnessWeeklyWindow(t *testing.T) {
	env := newTestEnv()
	day := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)

	// three entries on consecutive days, then one well outside the window
	for i := 0; i < 3; i++ {
		offset := time.Duration(i) * 24 * time.Hour
		env.fitness.now = func() time.Time { return day.Add(offset) }
		_, err := env.fitness.Create("user-1", CreateFitnessInput{Steps: 1000 * (i + 1)})
		require.NoError(t, err)
	}

	env.fitness.now = func() time.Time { return day.Add(2*24*time.Hour + time.Hour) }
	entries, err := env.fitness.Weekly("user-1", 7)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	// newest first
	assert.Equal(t, 3000, entries[0].Steps)
	assert.Equal(t, 1000, entries[2].Steps)

	entries, err = env.fitness.Weekly("user-1", 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 3000, entries[0].Steps)
}
