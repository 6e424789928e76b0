package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clinic-app-server/internal/config"
	"clinic-app-server/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:                 "test_jwt_secret",
		JWTRefreshSecret:          "test_refresh_secret",
		JWTExpirationMinutes:      15,
		JWTRefreshExpirationHours: 168,
	}
}

func testUser() *models.User {
	return &models.User{
		BaseModel: models.BaseModel{ID: "11111111-2222-3333-4444-555555555555"},
		Email:     "alice@example.com",
		Role:      models.RolePatient,
	}
}

func TestGenerateAndValidateTokens(t *testing.T) {
	cfg := testConfig()
	user := testUser()

	accessToken, refreshToken, err := GenerateTokens(user, cfg)
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	claims, err := ValidateToken(accessToken, cfg.JWTSecret)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RolePatient, claims.Role)

	refreshClaims, err := ValidateToken(refreshToken, cfg.JWTRefreshSecret)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, refreshClaims.UserID)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	cfg := testConfig()

	accessToken, _, err := GenerateTokens(testUser(), cfg)
	assert.NoError(t, err)

	_, err = ValidateToken(accessToken, "some_other_secret")
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token", testConfig().JWTSecret)
	assert.Error(t, err)
}
