package jwt

import (
	"testing"
	"time"
	"yamdb/proj/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	user := &models.User{ID: 7, Username: "alice", Role: models.RoleModerator}
	token, err := NewToken(user, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, models.RoleModerator, claims.Role)
}

func TestParseTokenRejects(t *testing.T) {
	user := &models.User{ID: 7, Username: "alice", Role: models.RoleUser}
	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewToken(user, "secret", time.Hour)
		require.NoError(t, err)
		_, err = ParseToken(token, "other")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
	t.Run("expired", func(t *testing.T) {
		token, err := NewToken(user, "secret", -time.Minute)
		require.NoError(t, err)
		_, err = ParseToken(token, "secret")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
	t.Run("garbage", func(t *testing.T) {
		_, err := ParseToken("not.a.token", "secret")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
