package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Preparicfes/Preparicfes-Actualizado/internal/models"
)

type ResultRepo struct {
	db *gorm.DB
}

func NewResultRepo(db *gorm.DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// SummaryRow is the latest score for one subject.
type SummaryRow struct {
	Subject string
	Score   int
}

// Save appends a new result row, creating the student link first if this is
// the user's first saved quiz. Both writes commit atomically.
func (r *ResultRepo) Save(ctx context.Context, userID, gradeID, subjectID, score int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var student models.Student
		err := tx.Where("id_usuario = ?", userID).First(&student).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			student = models.Student{UserID: userID, GradeID: gradeID}
			if err := tx.Create(&student).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		return tx.Create(&models.Result{
			StudentID: student.ID,
			SubjectID: subjectID,
			Date:      time.Now(),
			Score:     score,
		}).Error
	})
}

// Summarize returns, for each subject the user has results in, only the most
// recent score, ordered by subject name. Older rows stay untouched.
func (r *ResultRepo) Summarize(ctx context.Context, userID int) ([]SummaryRow, error) {
	var student models.Student
	err := r.db.WithContext(ctx).Where("id_usuario = ?", userID).First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rows []SummaryRow
	query := `
		WITH ultimos AS (
			SELECT id_areas, puntaje_final,
			       ROW_NUMBER() OVER (PARTITION BY id_areas ORDER BY fecha DESC) AS rn
			FROM resultados
			WHERE id_estudiantes = ?
		)
		SELECT a.nombre_materia AS subject, u.puntaje_final AS score
		FROM ultimos u
		JOIN areas a ON u.id_areas = a.id
		WHERE u.rn = 1
		ORDER BY a.nombre_materia`
	err = r.db.WithContext(ctx).Raw(query, student.ID).Scan(&rows).Error
	return rows, err
}
