package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleTeamMember   UserRole = "TeamMember"
	RoleCompanyAdmin UserRole = "CompanyAdmin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleTeamMember, RoleCompanyAdmin:
		return true
	default:
		return false
	}
}

// User is unique by UsernameKey, the lower-cased username.
type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(100);not null" json:"username"`
	UsernameKey  string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"-"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole  `gorm:"type:varchar(20);not null;default:'TeamMember'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Memberships []TeamMember `gorm:"foreignKey:UserID" json:"-"`
}

// UsernameKey folds a username for case-insensitive lookup and uniqueness.
func UsernameKey(username string) string {
	return strings.ToLower(username)
}

// BeforeSave keeps UsernameKey in step with Username.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.UsernameKey = UsernameKey(u.Username)
	return nil
}
