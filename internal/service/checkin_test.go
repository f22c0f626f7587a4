package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stridehq/stride/internal/apperr"
	"github.com/stridehq/stride/internal/model"
)

func TestCheckinOncePerDay(t *testing.T) {
	env := newTestEnv()
	day := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	env.checkins.now = func() time.Time { return day }

	today, err := env.checkins.Today("user-1")
	require.NoError(t, err)
	assert.Nil(t, today)

	checkin, err := env.checkins.Create("user-1", model.MoodGood, "slept well")
	require.NoError(t, err)
	assert.Equal(t, model.MoodGood, checkin.Mood)

	// later the same day
	env.checkins.now = func() time.Time { return day.Add(10 * time.Hour) }
	_, err = env.checkins.Create("user-1", model.MoodGreat, "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	today, err = env.checkins.Today("user-1")
	require.NoError(t, err)
	require.NotNil(t, today)
	assert.Equal(t, checkin.ID, today.ID)

	// a new calendar day opens a new window
	env.checkins.now = func() time.Time { return day.Add(24 * time.Hour) }
	_, err = env.checkins.Create("user-1", model.MoodOkay, "")
	require.NoError(t, err)
}

func TestCheckinRejectsUnknownMood(t *testing.T) {
	env := newTestEnv()

	_, err := env.checkins.Create("user-1", "ecstatic", "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestCheckinIsPerUser(t *testing.T) {
	env := newTestEnv()

	_, err := env.checkins.Create("user-1", model.MoodOkay, "")
	require.NoError(t, err)

	_, err = env.checkins.Create("user-2", model.MoodStruggling, "rough week")
	require.NoError(t, err)

	today, err := env.checkins.Today("user-2")
	require.NoError(t, err)
	require.NotNil(t, today)
	assert.Equal(t, model.MoodStruggling, today.Mood)
}

func TestCheckinRecordsActivity(t *testing.T) {
	env := newTestEnv()

	_, err := env.checkins.Create("user-1", model.MoodGreat, "")
	require.NoError(t, err)

	feed := env.feed(t, "user-1")
	require.Len(t, feed, 1)
	assert.Equal(t, model.ActivityDailyCheckin, feed[0].Type)
	assert.Equal(t, model.MoodGreat, feed[0].Data["mood"])
}
