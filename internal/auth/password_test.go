package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		ok       bool
	}{
		{"all rules satisfied", "Str0ngPwd", true},
		{"exactly eight chars", "Aa1bcdef", true},
		{"seven chars", "Aa1bcde", false},
		{"no lowercase", "AA1BCDEF", false},
		{"no uppercase", "aa1bcdef", false},
		{"no digit", "Aabcdefg", false},
		{"symbols allowed but not required", "Aa1!bcde", true},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.password)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrWeakPassword)
			}
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Str0ngPwd")
	require.NoError(t, err)
	require.NotEqual(t, "Str0ngPwd", hash)

	assert.NoError(t, CheckPassword(hash, "Str0ngPwd"))
	assert.Error(t, CheckPassword(hash, "WrongPwd1"))
}

func TestNormalizeEmail(t *testing.T) {
	got, err := NormalizeEmail("Alice@Example.COM")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got)

	for _, bad := range []string{"", "no-at-sign", "a@", "@example.com", "Alice <alice@example.com>"} {
		_, err := NormalizeEmail(bad)
		assert.ErrorIs(t, err, ErrInvalidEmail, "input %q", bad)
	}
}
