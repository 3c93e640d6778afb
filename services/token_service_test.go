package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ahsan-alam-500/tonycustom/services"
)

func TestGenerateTokenPair(t *testing.T) {
	svc := services.NewTokenService("test-secret")

	pair, tokenID, err := svc.GenerateTokenPair("user-1", "a@b.com", "customer")
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEmpty(t, tokenID)

	claims, err := svc.ValidateToken(pair.AccessToken, "access")
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims["sub"])
	assert.Equal(t, "a@b.com", claims["email"])
	assert.Equal(t, "customer", claims["role"])

	refreshClaims, err := svc.ValidateToken(pair.RefreshToken, "refresh")
	assert.NoError(t, err)
	assert.Equal(t, tokenID, refreshClaims["jti"])
}

func TestValidateToken_WrongType(t *testing.T) {
	svc := services.NewTokenService("test-secret")

	pair, _, err := svc.GenerateTokenPair("user-1", "a@b.com", "customer")
	assert.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken, "refresh")
	assert.Error(t, err)
	_, err = svc.ValidateToken(pair.RefreshToken, "access")
	assert.Error(t, err)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := services.NewTokenService("test-secret")
	other := services.NewTokenService("other-secret")

	pair, _, err := svc.GenerateTokenPair("user-1", "a@b.com", "customer")
	assert.NoError(t, err)

	_, err = other.ValidateToken(pair.AccessToken, "access")
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := services.NewTokenService("test-secret")

	_, err := svc.ValidateToken("not-a-token", "access")
	assert.Error(t, err)
}

func TestGenerateRandomCode(t *testing.T) {
	code := services.GenerateRandomCode(4)
	assert.Len(t, code, 4)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9')
	}

	assert.Len(t, services.GenerateRandomCode(6), 6)
}
