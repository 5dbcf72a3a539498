package models

import "time"

// User is a registered account. Tables and columns keep the historical
// Spanish names so existing data keeps working.
type User struct {
	ID           int       `gorm:"primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	Password     string    `gorm:"column:password"`
	Grade        string    `gorm:"column:grado"`
	RegisteredAt time.Time `gorm:"column:fecha_registro"`
}

func (User) TableName() string { return "usuarios" }

// Student links a User to a canonical Grade. The row is created lazily the
// first time that user saves a quiz result.
type Student struct {
	ID      int `gorm:"primaryKey"`
	UserID  int `gorm:"column:id_usuario;uniqueIndex"`
	GradeID int `gorm:"column:id_grado"`
}

func (Student) TableName() string { return "estudiantes" }
