package models

import (
	"time"
)

type Admin struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"column:username;uniqueIndex;not null;size:50" json:"username"`
	PasswordHash string    `gorm:"column:password;not null" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at;not null" json:"createdAt"`
}

func (Admin) TableName() string {
	return "admin_users"
}

// Session is the identity carried by a signed session token.
type Session struct {
	AdminID  uint   `json:"id"`
	Username string `json:"username"`
}
