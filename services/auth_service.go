package services

import (
	"errors"
	"time"

	"github.com/iheomach/vices-app-backend/config"
	"github.com/iheomach/vices-app-backend/models"
	"github.com/iheomach/vices-app-backend/utils"
)

func RegisterUser(email, password, firstName, lastName, phone string) (*models.User, error) {
	var existing models.User
	if err := config.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, errors.New("user with this email already exists")
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:       email,
		Password:    hashedPassword,
		FirstName:   firstName,
		LastName:    lastName,
		Phone:       phone,
		AccountTier: models.TierFree,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func AuthenticateUser(email, password string) (string, error) {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return "", errors.New("invalid email or password")
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("invalid email or password")
	}

	return utils.GenerateJWT(user.ID, user.Email)
}

func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, "email = ?", email).Error; err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}

// StartPasswordReset stores a short-lived 6-digit code and emails it.
func StartPasswordReset(email string) error {
	user, err := FindUserByEmail(email)
	if err != nil {
		return err
	}

	code := utils.GenerateResetCode()
	user.ResetToken = code
	user.ResetTokenExp = time.Now().Add(10 * time.Minute)
	if err := config.DB.Save(user).Error; err != nil {
		return err
	}

	return utils.SendResetEmail(user.Email, code)
}

func ConfirmPasswordReset(email, code, newPassword string) error {
	user, err := FindUserByEmail(email)
	if err != nil {
		return err
	}
	if user.ResetToken == "" || user.ResetToken != code || time.Now().After(user.ResetTokenExp) {
		return errors.New("invalid or expired reset code")
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.Password = hashed
	user.ResetToken = ""
	user.ResetTokenExp = time.Time{}
	return config.DB.Save(user).Error
}
