package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIssueAndParseToken(t *testing.T) {
	token, err := IssueToken("secret", 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ParseToken("secret", token)
	require.NoError(t, err)
	require.Equal(t, int64(42), userID)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := IssueToken("secret", 42)
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("secret", "not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
