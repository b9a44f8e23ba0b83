package services

import (
	"errors"
	"strings"
	"time"

	"github.com/iheomach/vices-app-backend/config"
	"github.com/iheomach/vices-app-backend/models"
)

type ProfileInput struct {
	FirstName           string   `json:"first_name"`
	LastName            string   `json:"last_name"`
	Phone               string   `json:"phone"`
	City                string   `json:"city"`
	Province            string   `json:"province"`
	PostalCode          string   `json:"postal_code"`
	DateOfBirth         string   `json:"date_of_birth"` // YYYY-MM-DD
	PreferredCategories []string `json:"preferred_categories"`
	ToleranceLevel      string   `json:"tolerance_level"`
	FavoriteEffects     []string `json:"favorite_effects"`
	ConsumptionGoals    []string `json:"consumption_goals"`
	ReceiveDeals        *bool    `json:"receive_deal_notifications"`
}

func GetUserProfile(userID uint) (map[string]interface{}, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}

	dob := ""
	if user.DateOfBirth != nil {
		dob = user.DateOfBirth.Format("2006-01-02")
	}

	return map[string]interface{}{
		"id":                         user.ID,
		"email":                      user.Email,
		"first_name":                 user.FirstName,
		"last_name":                  user.LastName,
		"phone":                      user.Phone,
		"city":                       user.City,
		"province":                   user.Province,
		"postal_code":                user.PostalCode,
		"date_of_birth":              dob,
		"preferred_categories":       splitTags(user.PreferredCategories),
		"tolerance_level":            user.ToleranceLevel,
		"favorite_effects":           splitTags(user.FavoriteEffects),
		"consumption_goals":          splitTags(user.ConsumptionGoals),
		"receive_deal_notifications": user.ReceiveDealNotifications,
		"account_tier":               user.AccountTier,
		"is_verified":                user.IsVerified,
	}, nil
}

func UpdateUserProfile(userID uint, in ProfileInput) error {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return errors.New("user not found")
	}

	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if in.Phone != "" {
		user.Phone = in.Phone
	}
	if in.City != "" {
		user.City = in.City
	}
	if in.Province != "" {
		user.Province = in.Province
	}
	if in.PostalCode != "" {
		user.PostalCode = in.PostalCode
	}
	if in.DateOfBirth != "" {
		if dob, err := time.Parse("2006-01-02", in.DateOfBirth); err == nil {
			user.DateOfBirth = &dob
		}
	}
	if in.PreferredCategories != nil {
		user.PreferredCategories = strings.Join(in.PreferredCategories, ",")
	}
	if in.ToleranceLevel != "" {
		user.ToleranceLevel = in.ToleranceLevel
	}
	if in.FavoriteEffects != nil {
		user.FavoriteEffects = strings.Join(in.FavoriteEffects, ",")
	}
	if in.ConsumptionGoals != nil {
		user.ConsumptionGoals = strings.Join(in.ConsumptionGoals, ",")
	}
	if in.ReceiveDeals != nil {
		user.ReceiveDealNotifications = *in.ReceiveDeals
	}

	return config.DB.Save(&user).Error
}
