package models

import (
	"time"

	"github.com/lib/pq"
)

// Question belongs to exactly one (Subject, Grade) pair. Option keys are the
// letters a-d; CorrectOption holds the winning letter.
type Question struct {
	ID            int    `gorm:"primaryKey"`
	SubjectID     int    `gorm:"column:id_areas;index:idx_preguntas_pair"`
	GradeID       int    `gorm:"column:id_grado;index:idx_preguntas_pair"`
	Prompt        string `gorm:"column:enunciado"`
	OptionA       string `gorm:"column:opcion_a"`
	OptionB       string `gorm:"column:opcion_b"`
	OptionC       string `gorm:"column:opcion_c"`
	OptionD       string `gorm:"column:opcion_d"`
	Image         string `gorm:"column:imagen"`
	CorrectOption string `gorm:"column:respuesta_correcta"`
}

func (Question) TableName() string { return "preguntas" }

// QuizDraw is the randomized question selection for one (user, subject)
// quiz session. Paginated requests re-read the same draw so page windows
// stay stable; a fresh quiz replaces the row.
type QuizDraw struct {
	ID            int           `gorm:"primaryKey"`
	UserID        int           `gorm:"column:id_usuario;uniqueIndex:idx_draw_user_area"`
	SubjectID     int           `gorm:"column:id_areas;uniqueIndex:idx_draw_user_area"`
	QuestionOrder pq.Int64Array `gorm:"column:orden_preguntas;type:integer[]"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (QuizDraw) TableName() string { return "quiz_draws" }
