package model

import "time"

const (
	RoleLearner = "learner"
	RoleAdmin   = "admin"
)

type User struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email          string    `gorm:"not null;uniqueIndex;size:255" json:"email"`
	HashedPassword string    `gorm:"size:255" json:"-"`
	Role           string    `gorm:"not null;default:learner;size:20" json:"role"`
	Provider       string    `gorm:"size:20" json:"provider,omitempty"` // empty for password accounts, "google" for OAuth
	ProviderID     string    `gorm:"size:255" json:"-"`
	Name           string    `gorm:"size:255" json:"name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
