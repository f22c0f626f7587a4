package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stridehq/stride/internal/apperr"
	"github.com/stridehq/stride/internal/repository/inmem"
)

func newTestAuth(secret string, expiry time.Duration) *AuthService {
	store := inmem.New()
	return NewAuthService(store.Users(), secret, expiry, false, "demo-user", "demo@example.com")
}

func TestLoginCreatesDemoUser(t *testing.T) {
	auth := newTestAuth("secret", time.Hour)

	user, token, err := auth.Login()
	require.NoError(t, err)
	assert.Equal(t, "demo-user", user.ID)
	assert.Equal(t, "demo@example.com", user.Email)
	assert.Equal(t, "Demo User", user.DisplayName())
	assert.NotEmpty(t, token)

	// logging in again resolves to the same identity
	again, _, err := auth.Login()
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
}

func TestTokenRoundTrip(t *testing.T) {
	auth := newTestAuth("secret", time.Hour)

	user, token, err := auth.Login()
	require.NoError(t, err)

	resolved, err := auth.UserFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	auth := newTestAuth("secret", time.Hour)
	_, token, err := auth.Login()
	require.NoError(t, err)

	other := newTestAuth("different-secret", time.Hour)
	_, err = other.UserFromToken(token)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestTokenRejectsGarbage(t *testing.T) {
	auth := newTestAuth("secret", time.Hour)

	_, err := auth.UserFromToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestTokenRejectsExpired(t *testing.T) {
	auth := newTestAuth("secret", -time.Hour)
	_, token, err := auth.Login()
	require.NoError(t, err)

	_, err = auth.UserFromToken(token)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}
