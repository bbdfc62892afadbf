package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/defaultmanagement/pkg/config"
)

func testManager() *TokenManager {
	return NewTokenManager(config.JWTConfig{
		Secret:      "test-secret",
		Issuer:      "defaultmanagement",
		ExpireHours: 1,
	})
}

func TestGenerateAndParse(t *testing.T) {
	tm := testManager()

	token, expiresAt, err := tm.Generate("operator", "OPERATOR")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Username)
	assert.Equal(t, "OPERATOR", claims.Role)
	assert.Equal(t, "defaultmanagement", claims.Issuer)
}

func TestParseRejectsGarbage(t *testing.T) {
	tm := testManager()

	_, err := tm.Parse("not-a-token")
	assert.Error(t, err)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, _, err := testManager().Generate("operator", "OPERATOR")
	require.NoError(t, err)

	other := NewTokenManager(config.JWTConfig{Secret: "another-secret", Issuer: "defaultmanagement", ExpireHours: 1})
	_, err = other.Parse(token)
	assert.Error(t, err)
}
