package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/store"
)

func newAuthService(t *testing.T, employees []domain.Employee) (*AuthService, *store.Store) {
	t.Helper()
	st := newTestStore(t)
	require.NoError(t, st.SaveEmployees(employees))

	cfg := config.AuthConfig{SessionSecret: "test-secret", SessionTTLHours: 1, BcryptCost: 4}
	return NewAuthService(cfg, st, zaptest.NewLogger(t), nil), st
}

func TestLoginMigratesLegacyCredential(t *testing.T) {
	svc, st := newAuthService(t, []domain.Employee{
		{Username: "alice", LegacyAuthcode: "hunter2"},
	})

	token, _, err := svc.Login("alice", "hunter2")
	require.NoError(t, err)

	claims, err := svc.SessionManager().Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Technician)

	employees, err := st.Employees()
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Empty(t, employees[0].LegacyAuthcode)
	require.NotEmpty(t, employees[0].PasswordHash)
	assert.NoError(t, auth.ComparePassword(employees[0].PasswordHash, "hunter2"))

	// Second login goes through the hashed path.
	_, _, err = svc.Login("alice", "hunter2")
	require.NoError(t, err)
}

func TestLoginHashedCredential(t *testing.T) {
	hash, err := auth.HashPassword("hunter2", 4)
	require.NoError(t, err)

	svc, st := newAuthService(t, []domain.Employee{
		{Username: "alice", PasswordHash: hash},
	})

	t.Run("correct password", func(t *testing.T) {
		token, _, err := svc.Login("alice", "hunter2")
		require.NoError(t, err)

		claims, err := svc.SessionManager().Parse(token)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Technician)
	})

	t.Run("wrong password leaves the record untouched", func(t *testing.T) {
		_, _, err := svc.Login("alice", "hunter3")
		assert.Error(t, err)

		employees, err := st.Employees()
		require.NoError(t, err)
		assert.Equal(t, hash, employees[0].PasswordHash)
	})
}

func TestLoginFailures(t *testing.T) {
	svc, st := newAuthService(t, []domain.Employee{
		{Username: "alice", LegacyAuthcode: "hunter2"},
		{Username: "ghost"},
	})

	t.Run("unknown user", func(t *testing.T) {
		_, _, err := svc.Login("nobody", "hunter2")
		assert.EqualError(t, err, "invalid credentials")
	})

	t.Run("wrong legacy password does not migrate", func(t *testing.T) {
		_, _, err := svc.Login("alice", "hunter3")
		assert.EqualError(t, err, "invalid credentials")

		employees, err := st.Employees()
		require.NoError(t, err)
		assert.Equal(t, "hunter2", employees[0].LegacyAuthcode)
		assert.Empty(t, employees[0].PasswordHash)
	})

	t.Run("record without any credential", func(t *testing.T) {
		_, _, err := svc.Login("ghost", "anything")
		assert.EqualError(t, err, "invalid credentials")
	})

	t.Run("failure errors are indistinguishable", func(t *testing.T) {
		_, _, errUnknown := svc.Login("nobody", "x")
		_, _, errWrong := svc.Login("alice", "x")
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
	})
}
