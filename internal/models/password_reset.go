package models

import "time"

// PasswordReset is a single-use, time-limited token for the reset flow.
// The stored password itself is never sent anywhere.
type PasswordReset struct {
	ID        int       `gorm:"primaryKey"`
	Token     string    `gorm:"column:token;uniqueIndex"`
	UserID    int       `gorm:"column:id_usuario"`
	ExpiresAt time.Time `gorm:"column:expira"`
	Used      bool      `gorm:"column:usado"`
	CreatedAt time.Time
}

func (PasswordReset) TableName() string { return "password_resets" }
