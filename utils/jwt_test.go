package utils

import (
	"testing"

	"jenga/config"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	config.AppConfig.JWTSecret = "test-secret"
	m.Run()
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-1", "CLIENT", "Amina")
	assert.NoError(t, err)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims["sub"])
	assert.Equal(t, "CLIENT", claims["role"])
	assert.Equal(t, "Amina", claims["name"])

	sub, err := ExtractIDFromToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", sub)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestMissingSecretIsMisconfiguration(t *testing.T) {
	saved := config.AppConfig.JWTSecret
	config.AppConfig.JWTSecret = ""
	defer func() { config.AppConfig.JWTSecret = saved }()

	_, err := GenerateToken("user-1", "CLIENT", "Amina")
	assert.Equal(t, KindMisconfiguration, KindOf(err))

	_, err = ValidateToken("whatever")
	assert.Equal(t, KindMisconfiguration, KindOf(err))
}
