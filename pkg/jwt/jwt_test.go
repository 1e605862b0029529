package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	tok, err := GenerateToken("user_1", "secret", "starlog", time.Hour)
	require.NoError(t, err)

	sub, err := ParseToken(tok, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user_1", sub)
}

func TestParseToken_WrongSecret(t *testing.T) {
	tok, err := GenerateToken("user_1", "secret", "starlog", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(tok, "other")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	tok, err := GenerateToken("user_1", "secret", "starlog", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(tok, "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateToken_EmptySubject(t *testing.T) {
	_, err := GenerateToken("", "secret", "starlog", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySubject)
}
