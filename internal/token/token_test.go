package token_test

import (
	"testing"
	"time"

	"pinboard/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) *token.Manager {
	t.Helper()
	m, err := token.NewManager("test-secret", time.Hour, time.Hour)
	require.NoError(t, err)
	return m
}

func TestAuthTokenRoundTrip(t *testing.T) {
	t.Parallel()
	m := newManager(t)

	raw, err := m.IssueAuth(42)
	require.NoError(t, err)

	userID, err := m.ValidateAuth(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestActivationTokenRoundTrip(t *testing.T) {
	t.Parallel()
	m := newManager(t)

	raw, err := m.IssueActivation(42)
	require.NoError(t, err)

	userID, err := m.ValidateActivation(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestPurposesDoNotCross(t *testing.T) {
	t.Parallel()
	m := newManager(t)

	activation, err := m.IssueActivation(42)
	require.NoError(t, err)
	auth, err := m.IssueAuth(42)
	require.NoError(t, err)

	// An activation link must not double as a login token, nor the
	// reverse.
	_, err = m.ValidateAuth(activation)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
	_, err = m.ValidateActivation(auth)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestWrongSecretRejected(t *testing.T) {
	t.Parallel()
	m := newManager(t)
	other, err := token.NewManager("other-secret", time.Hour, time.Hour)
	require.NoError(t, err)

	raw, err := m.IssueAuth(42)
	require.NoError(t, err)

	_, err = other.ValidateAuth(raw)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	t.Parallel()
	m, err := token.NewManager("test-secret", -time.Minute, -time.Minute)
	require.NoError(t, err)

	raw, err := m.IssueAuth(42)
	require.NoError(t, err)

	_, err = m.ValidateAuth(raw)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestGarbageRejected(t *testing.T) {
	t.Parallel()
	m := newManager(t)

	_, err := m.ValidateAuth("not-a-token")
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestEmptySecretRejected(t *testing.T) {
	t.Parallel()
	_, err := token.NewManager("", time.Hour, time.Hour)
	assert.Error(t, err)
}
