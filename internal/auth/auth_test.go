package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/WatchBeam/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"choreboard/internal/domain"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("admin123", 4)
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "admin123"))
	assert.False(t, CheckPassword(hash, "admin124"))

	_, err = HashPassword("short", 4)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = HashPassword(strings.Repeat("p", 73), 4)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTokenIssuer(t *testing.T) {
	mockClock := clock.NewMockClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	issuer, err := NewTokenIssuer("test-secret", time.Hour, mockClock)
	require.NoError(t, err)

	user := &domain.User{ID: 42, ApartmentNumber: "12"}
	token, err := issuer.Issue(user)
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		claims, err := issuer.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), claims.UserID)
		assert.Equal(t, "12", claims.ApartmentNumber)
		assert.Equal(t, "42", claims.Subject)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewTokenIssuer("other-secret", time.Hour, mockClock)
		require.NoError(t, err)

		_, err = other.Parse(token)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Parse("not.a.token")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("expired", func(t *testing.T) {
		mockClock.AddTime(time.Hour)
		_, err := issuer.Parse(token)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Contains(t, err.Error(), "expired")
	})
}

func TestNewTokenIssuer_RequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour, nil)
	assert.Error(t, err)

	issuer, err := NewTokenIssuer("s", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenExpiry, issuer.expiry)
}
