package services

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/mbuckingham74/moms-recipes-sub001/config"
	"github.com/mbuckingham74/moms-recipes-sub001/models"
)

func TestAuthenticateUser(t *testing.T) {
	setupTestDB(t)
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := UpsertUser("mom", "apple-pie", models.RoleAdmin)
	assert.NoError(t, err)

	token, user, err := AuthenticateUser("mom", "apple-pie")
	assert.NoError(t, err)
	assert.Equal(t, "mom", user.Username)
	assert.Equal(t, models.RoleAdmin, user.Role)

	// the token carries the identity the middleware relies on
	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if assert.True(t, ok) {
		assert.Equal(t, "mom", claims["username"])
		assert.Equal(t, models.RoleAdmin, claims["role"])
		assert.Equal(t, float64(user.ID), claims["userID"])
	}
}

// Neither a wrong username nor a wrong password reveals which half
// failed.
func TestAuthenticateUser_UniformFailureMessage(t *testing.T) {
	setupTestDB(t)
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := UpsertUser("mom", "apple-pie", models.RoleAdmin)
	assert.NoError(t, err)

	_, _, unknownErr := AuthenticateUser("stranger", "apple-pie")
	_, _, wrongPassErr := AuthenticateUser("mom", "wrong")
	assert.Error(t, unknownErr)
	assert.Error(t, wrongPassErr)
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())
}

func TestUpsertUser_ResetsExistingAccount(t *testing.T) {
	setupTestDB(t)
	t.Setenv("JWT_SECRET", "test-secret")

	first, err := UpsertUser("mom", "old-password", models.RoleAdmin)
	assert.NoError(t, err)

	second, err := UpsertUser("mom", "new-password", models.RoleViewer)
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "same row, not a duplicate")
	assert.Equal(t, models.RoleViewer, second.Role)

	var count int64
	assert.NoError(t, config.DB.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, _, err = AuthenticateUser("mom", "old-password")
	assert.Error(t, err)
	_, _, err = AuthenticateUser("mom", "new-password")
	assert.NoError(t, err)
}
