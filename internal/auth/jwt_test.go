package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssueAndValidate(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	tok, err := svc.Issue("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	uid, err := svc.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", uid)

	// No revocation mechanism exists: a token stays valid for its whole
	// window no matter how often it is checked.
	uid, err = svc.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", uid)
}

func TestTokenExpiry(t *testing.T) {
	svc := NewTokenService("test-secret", time.Millisecond)
	tok, err := svc.Issue("user-1")
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	_, err = svc.Validate(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenForgedSecret(t *testing.T) {
	tok, err := NewTokenService("other-secret", time.Hour).Issue("user-1")
	require.NoError(t, err)

	_, err = NewTokenService("test-secret", time.Hour).Validate(tok)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestTokenMalformedAndMissing(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	_, err := svc.Validate("")
	assert.ErrorIs(t, err, ErrTokenMissing)

	_, err = svc.Validate("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}
