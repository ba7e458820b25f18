package models

import "gorm.io/gorm"

const (
	RoleUser    = "user"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

type User struct {
	gorm.Model
	Name                       string `json:"name" gorm:"not null"`
	Email                      string `json:"email" gorm:"unique;not null"`
	PasswordHash               string `json:"-" gorm:"not null"`
	Role                       string `json:"role" gorm:"default:user"` // user, teacher, admin
	PreferredInterfaceLanguage string `json:"preferredInterfaceLanguage" gorm:"default:pl"`
	IndustryContext            string `json:"industryContext" gorm:"default:general"` // it, finance, office, general
	AvatarURL                  string `json:"avatarUrl,omitempty"`
}

// HasRole reports whether the user may act as role. Admins pass every check.
func HasRole(userRole, role string) bool {
	return userRole == role || userRole == RoleAdmin
}

func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}
