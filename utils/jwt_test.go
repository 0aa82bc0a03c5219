package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("64b7f0c2a1b2c3d4e5f60718", "admin", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken("64b7f0c2a1b2c3d4e5f60718", "customer", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestHashTokenIsStable(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}
