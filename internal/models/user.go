package models

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// User is a person using Spendwise. All other resources are owned by a user.
type User struct {
	DefaultModel
	Name         string `json:"name" example:"Ada Lovelace"`
	Email        string `json:"email" gorm:"uniqueIndex:user_email" example:"ada@example.com"`
	PasswordHash string `json:"-"`
}

// BeforeSave lower-cases the email address and validates the user.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	if u.Name == "" {
		return fmt.Errorf("%w: the name must not be empty", ErrValidation)
	}

	if !strings.Contains(u.Email, "@") {
		return fmt.Errorf("%w: '%s' is not a valid email address", ErrValidation, u.Email)
	}

	return nil
}
