package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:72;not null" json:"-"`
	Role         string    `gorm:"size:16;not null;default:'viewer'" json:"role"` // "admin" | "viewer"
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)
