package models

import "time"

// User & access control
type User struct {
	ID                string `gorm:"primaryKey;size:36"`
	Email             string `gorm:"unique;not null;index"`
	Name              string `gorm:"index"`
	Password          string `gorm:"not null"`                // bcrypt hash
	Role              string `gorm:"not null;default:'USER'"` // ADMIN or USER
	IsActive          bool   `gorm:"not null;default:true"`
	CanCreateTemplate bool   `gorm:"not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
