package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "testsecrettestsecrettestsecrettestsecret"

func TestIssueVerify(t *testing.T) {
	s, err := NewSigner(testSecret)
	require.NoError(t, err)

	tok, err := s.Issue("yuki")
	require.NoError(t, err)

	user, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "yuki", user)
}

func TestShortSecret(t *testing.T) {
	_, err := NewSigner("short")
	assert.ErrorIs(t, err, ErrShortSecret)
}

func TestVerifyRejects(t *testing.T) {
	s, err := NewSigner(testSecret)
	require.NoError(t, err)
	other, err := NewSigner(testSecret + "-other")
	require.NoError(t, err)

	foreign, err := other.Issue("yuki")
	require.NoError(t, err)
	_, err = s.Verify(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	s.now = func() time.Time { return time.Now().Add(-2 * DefaultLifetime) }
	old, err := s.Issue("yuki")
	require.NoError(t, err)
	s.now = time.Now
	_, err = s.Verify(old)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
