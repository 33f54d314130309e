package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserTokenRoundtrip(t *testing.T) {
	token, err := GenerateUserToken("user-42")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.Subject)
	assert.Equal(t, "user", claims.Role)
}

func TestAdminTokenRoundtrip(t *testing.T) {
	token, err := GenerateAdminToken("admin@medizo.test")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@medizo.test", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongKey(t *testing.T) {
	original := JwtKey
	defer func() { JwtKey = original }()

	JwtKey = []byte("key-one")
	token, err := GenerateUserToken("user-42")
	require.NoError(t, err)

	JwtKey = []byte("key-two")
	_, err = ParseToken(token)
	assert.Error(t, err)
}
