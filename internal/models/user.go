package models

import (
	"strings"

	"gorm.io/gorm"
)

// User is a person expenses can be shared with. Authentication and
// session handling live outside this backend, so the model only carries
// what settlement views need.
type User struct {
	DefaultModel
	Email       string `gorm:"uniqueIndex"`
	DisplayName string
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.DisplayName = strings.TrimSpace(u.DisplayName)

	return nil
}
