package services

import (
	"errors"

	"github.com/mbuckingham74/moms-recipes-sub001/config"
	"github.com/mbuckingham74/moms-recipes-sub001/models"
	"github.com/mbuckingham74/moms-recipes-sub001/utils"

	"gorm.io/gorm"
)

// AuthenticateUser checks the credentials and returns a signed JWT
// plus the matching user. The error text never says which half was
// wrong.
func AuthenticateUser(username, password string) (string, *models.User, error) {
	var user models.User
	result := config.DB.Where("username = ?", username).First(&user)
	if result.Error != nil {
		return "", nil, errors.New("invalid username or password")
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return "", nil, errors.New("invalid username or password")
	}

	token, err := utils.GenerateJWT(user.ID, user.Username, user.Role)
	if err != nil {
		return "", nil, err
	}

	return token, &user, nil
}

// UpsertUser creates the account or, when the username already
// exists, resets its password and role. Used by the seed tool.
func UpsertUser(username, password, role string) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = config.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{Username: username, PasswordHash: hash, Role: role}
		if err := config.DB.Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if err != nil {
		return nil, err
	}

	user.PasswordHash = hash
	user.Role = role
	if err := config.DB.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
