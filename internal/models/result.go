package models

import "time"

// Result is one scored quiz attempt. Rows are append-only: the current
// performance for a subject is the row with the latest Date, older rows
// stay for history.
type Result struct {
	ID        int       `gorm:"primaryKey"`
	StudentID int       `gorm:"column:id_estudiantes"`
	SubjectID int       `gorm:"column:id_areas"`
	Date      time.Time `gorm:"column:fecha"`
	Score     int       `gorm:"column:puntaje_final"`
}

func (Result) TableName() string { return "resultados" }
