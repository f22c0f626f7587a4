package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindInvalid, KindOf(Invalid("bad input")))
	assert.Equal(t, KindUnauthorized, KindOf(Unauthorized("no session")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing")))
	assert.Equal(t, KindConflict, KindOf(Conflict("dupe")))
	assert.Equal(t, KindInternal, KindOf(errors.New("driver exploded")))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("loading goal: %w", NotFound("goal not found"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "goal not found", MessageOf(err))
}

func TestMessageOfHidesInternals(t *testing.T) {
	err := errors.New("pq: connection refused to 10.0.0.3")
	assert.Equal(t, "internal server error", MessageOf(err))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("token expired")
	err := Wrap(KindUnauthorized, "invalid session", cause)

	assert.Equal(t, KindUnauthorized, KindOf(err))
	assert.Equal(t, "invalid session", MessageOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "token expired")
}
