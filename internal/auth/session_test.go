package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession() Session {
	return Session{
		UserID:      "6f1c2b1e-0000-4000-8000-000000000001",
		Email:       "founder@aurora.no",
		Name:        "Ingrid",
		Role:        "USER",
		Permissions: []string{PermViewJobs, PermCreateStartup},
	}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.Issue(testSession())
	require.NoError(t, err)

	s, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, testSession(), *s)
	assert.True(t, s.Can(PermCreateStartup))
	assert.False(t, s.Can(PermManageUsers))
}

func TestTokenManager_RejectsOtherSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Issue(testSession())
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsTamperedToken(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	token, err := m.Issue(testSession())
	require.NoError(t, err)

	other := testSession()
	other.Permissions = append(other.Permissions, PermSiteAdmin)
	forged, err := m.Issue(other)
	require.NoError(t, err)

	// Forged payload with the original signature.
	orig := strings.Split(token, ".")
	parts := strings.Split(forged, ".")
	tampered := orig[0] + "." + parts[1] + "." + orig[2]

	_, err = m.Parse(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	m := NewTokenManager("secret", time.Minute)
	issued := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issued }
	token, err := m.Issue(testSession())
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSession_NilCannot(t *testing.T) {
	var s *Session
	assert.False(t, s.Can(PermViewJobs))
}
