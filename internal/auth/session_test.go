package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	sm := NewSessionManager("test-secret", time.Hour)

	token, expires, err := sm.Issue("alice")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := sm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Technician)
}

func TestAnonymousSession(t *testing.T) {
	sm := NewSessionManager("test-secret", time.Hour)

	token, _, err := sm.Issue("")
	require.NoError(t, err)

	claims, err := sm.Parse(token)
	require.NoError(t, err)
	assert.Empty(t, claims.Technician)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	token, _, err := NewSessionManager("secret-a", time.Hour).Issue("alice")
	require.NoError(t, err)

	_, err = NewSessionManager("secret-b", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	sm := NewSessionManager("test-secret", time.Hour)
	_, err := sm.Parse("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2", 4)
	require.NoError(t, err)

	assert.NoError(t, ComparePassword(hash, "hunter2"))
	assert.Error(t, ComparePassword(hash, "hunter3"))
}
