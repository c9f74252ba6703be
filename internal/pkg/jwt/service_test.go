package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACService_RoundTrip(t *testing.T) {
	svc := NewHMACService("secret", time.Hour, 24*time.Hour)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	tok, exp, err := svc.GenerateSessionToken(Session{
		UserID:  7,
		Email:   "admin@example.com",
		Backend: map[string]string{"laravel_session": "abc"},
	})
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), exp)

	c, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(7), c.UserID)
	assert.Equal(t, "admin@example.com", c.Email)
	assert.Equal(t, "abc", c.Session().Backend["laravel_session"])
	assert.Equal(t, "7", c.Subject)
}

func TestHMACService_RememberUsesLongerExpiry(t *testing.T) {
	svc := NewHMACService("secret", time.Hour, 30*24*time.Hour)
	now := time.Now()
	svc.now = func() time.Time { return now }

	tok, exp, err := svc.GenerateSessionToken(Session{UserID: 1, Remember: true})
	require.NoError(t, err)
	assert.Equal(t, now.Add(30*24*time.Hour), exp)

	now = now.Add(2 * time.Hour)
	_, err = svc.ValidateToken(tok)
	assert.NoError(t, err)
}

func TestHMACService_Expired(t *testing.T) {
	svc := NewHMACService("secret", time.Hour, 24*time.Hour)
	now := time.Now()
	svc.now = func() time.Time { return now }

	tok, _, err := svc.GenerateSessionToken(Session{UserID: 1})
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = svc.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestHMACService_Invalid(t *testing.T) {
	svc := NewHMACService("secret", time.Hour, 24*time.Hour)
	other := NewHMACService("other", time.Hour, 24*time.Hour)

	tok, _, err := other.GenerateSessionToken(Session{UserID: 1})
	require.NoError(t, err)

	_, err = svc.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.ValidateToken("")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, _, err = NewHMACService("", time.Hour, time.Hour).GenerateSessionToken(Session{UserID: 1})
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
